package github

import (
	"context"
	"fmt"
	"net/http"

	"contextmcp/internal/data/models"
	"contextmcp/internal/fetcher"

	"go.uber.org/zap"
)

// DefaultBranch is the branch listed when the caller does not name one.
const DefaultBranch = "main"

// Tree lists the repository tree at branch recursively. truncated reports
// that GitHub cut the listing short.
func (c *Client) Tree(ctx context.Context, ref models.RepoRef, branch string) (entries []models.TreeEntry, truncated bool, err error) {
	if !ref.Resolved() {
		return nil, false, fetcher.ErrUnresolvableRepository
	}
	if branch == "" {
		branch = DefaultBranch
	}

	tree, resp, err := c.Client.Git.GetTree(ctx, ref.Owner, ref.Repo, branch, true)
	c.observe(resp)
	if err != nil {
		if resp != nil {
			switch resp.StatusCode {
			case http.StatusNotFound:
				return nil, false, fmt.Errorf("repository not found or branch %q does not exist: %w", branch, fetcher.ErrNotFound)
			case http.StatusForbidden:
				return nil, false, fmt.Errorf("GitHub API rate limit exceeded or insufficient permissions: %s", describeError(err))
			}
		}
		return nil, false, fmt.Errorf("fetch tree for %s: %s", ref, describeError(err))
	}

	entries = make([]models.TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		entries = append(entries, models.TreeEntry{
			Path: e.GetPath(),
			Type: e.GetType(),
			Size: e.GetSize(),
		})
	}
	c.logger.Info("fetched repository tree", zap.String("repo", ref.String()), zap.String("branch", branch), zap.Int("entries", len(entries)), zap.Bool("truncated", tree.GetTruncated()))
	return entries, tree.GetTruncated(), nil
}
