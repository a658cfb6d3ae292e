package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"contextmcp/internal/data/models"
	"contextmcp/internal/fetcher"
	gh "contextmcp/internal/github"
	"contextmcp/internal/prompt"
	"contextmcp/internal/selection"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// GithubSelection resolves a stored selection and renders every selected
// file. A selection without files renders its metadata instead.
func (e *Engine) GithubSelection(ctx context.Context, rawID string) string {
	id, err := selection.ParseID(rawID)
	if err != nil {
		return invalidSelectionID(rawID, err)
	}

	out := e.Selections.Get(ctx, id)
	switch out.Kind() {
	case models.OutcomeNotFound:
		return selectionNotFound(id)
	case models.OutcomeError:
		return e.failure("fetching GitHub selection", out.Err())
	}
	sel, _ := out.Value()

	paths := selection.UniquePaths(sel.SelectedFiles)
	if len(paths) == 0 {
		return prompt.DescribeSelection(sel)
	}

	// An unresolvable selection aborts before any file is requested.
	ref := selection.Resolve(sel)
	if !ref.Resolved() {
		e.logger.Warn("selection repository unresolvable", zap.String("id", id), zap.String("name", sel.Name), zap.String("url", sel.URL))
		return fmt.Sprintf("Could not determine the GitHub owner and repository for selection %s (name: %s, url: %s).", id, sel.Name, sel.URL)
	}

	results := e.Repo.FetchFiles(ctx, ref, paths)
	found := lo.CountBy(results, models.FileFetchResult.OK)
	e.observeBatch("files", fetcher.BatchStats{
		Requested: len(results),
		Found:     found,
		Failed:    len(results) - found,
	})

	text, err := prompt.ComposeFiles(ref, results)
	if errors.Is(err, prompt.ErrNoArtifacts) {
		return fmt.Sprintf("None of the selected files could be retrieved from %s.\n\n%s", ref, prompt.FailureList(results))
	}
	return text
}

func (e *Engine) ListSelections(ctx context.Context) string {
	sels, err := e.Selections.List(ctx)
	if err != nil {
		return e.failure("listing GitHub selections", err)
	}
	return prompt.DescribeSelections(sels)
}

// AddRepository registers repoURL with the Selection Store and reports the
// selection id to use with the other selection tools.
func (e *Engine) AddRepository(ctx context.Context, repoURL string) string {
	if !selection.ParseRepoURL(repoURL).Resolved() {
		return fmt.Sprintf("Invalid GitHub repository URL %q.", repoURL)
	}
	sel, err := e.Selections.Add(ctx, repoURL)
	if err != nil {
		return e.failure("adding GitHub repository", err)
	}
	return fmt.Sprintf("GitHub repository %s is saved as selection %s (%d file(s) selected).\n", sel.Name, sel.ID, len(sel.SelectedFiles))
}

// UpdateSelection replaces the selected files of a selection.
func (e *Engine) UpdateSelection(ctx context.Context, rawID string, paths []string) string {
	id, err := selection.ParseID(rawID)
	if err != nil {
		return invalidSelectionID(rawID, err)
	}

	sel, err := e.Selections.UpdateFiles(ctx, id, paths)
	if errors.Is(err, fetcher.ErrNotFound) {
		return selectionNotFound(id)
	}
	if err != nil {
		return e.failure("updating GitHub selection", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Updated GitHub selection %s: %d file(s) selected.\n", id, len(sel.SelectedFiles))
	for _, p := range sel.SelectedFiles {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	return b.String()
}

// RepoTree lists the repository at repoURL. An empty branch means main.
func (e *Engine) RepoTree(ctx context.Context, repoURL, branch string) string {
	ref := selection.ParseRepoURL(repoURL)
	if !ref.Resolved() {
		return fmt.Sprintf("Invalid GitHub repository URL %q.", repoURL)
	}
	branch = strings.TrimSpace(branch)
	if branch == "" {
		branch = gh.DefaultBranch
	}

	entries, truncated, err := e.Repo.Tree(ctx, ref, branch)
	if err != nil {
		return e.failure("fetching repository tree", err)
	}
	return prompt.DescribeTree(ref, branch, entries, truncated)
}

func invalidSelectionID(raw string, err error) string {
	return fmt.Sprintf("Invalid GitHub selection ID %q: %v", raw, err)
}

func selectionNotFound(id string) string {
	return fmt.Sprintf("GitHub selection with ID %s not found.", id)
}
