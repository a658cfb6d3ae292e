package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"contextmcp/internal/data/models"
	"contextmcp/internal/fetcher"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// FetchFile retrieves one file from the repository contents API. It never
// returns an error: every failure is described in the result's Error field.
func (c *Client) FetchFile(ctx context.Context, ref models.RepoRef, path string) models.FileFetchResult {
	clean := strings.TrimPrefix(strings.TrimSpace(path), "/")
	if clean == "" {
		return models.FileError(path, "invalid path")
	}
	if !ref.Resolved() {
		return models.FileError(clean, "repository owner/name is unresolved")
	}

	file, dir, resp, err := c.Client.Repositories.GetContents(ctx, ref.Owner, ref.Repo, clean, nil)
	c.observe(resp)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			c.logger.Info("repository file not found", zap.String("repo", ref.String()), zap.String("path", clean))
			return models.FileError(clean, "not found")
		}
		msg := describeError(err)
		c.logger.Warn("repository file fetch failed", zap.String("repo", ref.String()), zap.String("path", clean), zap.String("error", msg))
		return models.FileError(clean, msg)
	}

	if dir != nil {
		return models.FileError(clean, "path is a directory, not a file")
	}
	if file == nil {
		return models.FileError(clean, "empty response from GitHub contents API")
	}
	if t := file.GetType(); t != "" && t != "file" {
		return models.FileError(clean, fmt.Sprintf("path is a %s, not a file", t))
	}

	content, err := file.GetContent()
	if err != nil {
		return models.FileError(clean, fmt.Sprintf("content could not be decoded: %v", err))
	}
	if !utf8.ValidString(content) {
		return models.FileError(clean, "content is not valid UTF-8 text")
	}

	c.logger.Debug("repository file fetched", zap.String("repo", ref.String()), zap.String("path", clean), zap.Int("bytes", len(content)))
	return models.FileContent(clean, content)
}

// FetchFiles fetches every path concurrently and returns one result per path
// in input order. A failing path never cancels its siblings.
func (c *Client) FetchFiles(ctx context.Context, ref models.RepoRef, paths []string) []models.FileFetchResult {
	outcomes := fetcher.FanOut(ctx, paths, func(ctx context.Context, p string) models.Outcome[models.FileFetchResult] {
		return models.Found(c.FetchFile(ctx, ref, p))
	})
	return lo.Map(outcomes, func(o models.Outcome[models.FileFetchResult], i int) models.FileFetchResult {
		r, _ := o.Value()
		return r
	})
}
