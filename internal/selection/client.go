package selection

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"contextmcp/internal/data/models"
	"contextmcp/internal/fetcher"
	"contextmcp/internal/upstream"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client talks to the Selection Store (`GET /{id}`, `GET /selections`,
// `POST /add-repo`, `PUT /{id}/update-selection`).
type Client struct {
	api    *upstream.Client
	logger *zap.Logger
}

func NewClient(api *upstream.Client, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{api: api, logger: logger}
}

// ParseID validates a selection id and returns its canonical form.
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Get retrieves a selection. Malformed ids and transport failures become
// Error outcomes; a 404 becomes NotFound.
func (c *Client) Get(ctx context.Context, rawID string) models.Outcome[models.RepositorySelection] {
	id, err := ParseID(rawID)
	if err != nil {
		return models.Failed[models.RepositorySelection](fmt.Errorf("invalid selection id %q: %w", rawID, err))
	}

	var sel models.RepositorySelection
	status, err := c.api.GetJSON(ctx, id, &sel)
	c.logger.Debug("selection fetch", zap.String("id", id), zap.Int("status", status))
	out := fetcher.OutcomeFromError(sel, err)
	if out.Kind() == models.OutcomeError {
		c.logger.Warn("selection fetch failed", zap.String("id", id), zap.Error(out.Err()))
	}
	return out
}

// List returns every saved selection, newest first as served by the store.
func (c *Client) List(ctx context.Context) ([]models.RepositorySelection, error) {
	var sels []models.RepositorySelection
	if _, err := c.api.GetJSON(ctx, "selections", &sels); err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	return sels, nil
}

// UpdateFiles replaces the selected file list and returns the stored
// selection. Duplicate paths are dropped, first occurrence wins.
func (c *Client) UpdateFiles(ctx context.Context, rawID string, paths []string) (models.RepositorySelection, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return models.RepositorySelection{}, fmt.Errorf("invalid selection id %q: %w", rawID, err)
	}
	payload := struct {
		SelectedFiles []string `json:"selected_files"`
	}{SelectedFiles: UniquePaths(paths)}

	var sel models.RepositorySelection
	if _, err := c.api.SendJSON(ctx, http.MethodPut, id+"/update-selection", payload, &sel); err != nil {
		return models.RepositorySelection{}, fmt.Errorf("update selection %s: %w", id, err)
	}
	c.logger.Info("updated selection", zap.String("id", id), zap.Int("files", len(payload.SelectedFiles)))
	return sel, nil
}

// Add registers a repository URL and returns its selection. The store answers
// with the existing selection when the URL was added before.
func (c *Client) Add(ctx context.Context, repoURL string) (models.RepositorySelection, error) {
	repoURL = strings.TrimSpace(repoURL)
	if !ParseRepoURL(repoURL).Resolved() {
		return models.RepositorySelection{}, fmt.Errorf("add repository %q: %w", repoURL, fetcher.ErrUnresolvableRepository)
	}
	payload := struct {
		URL string `json:"url"`
	}{URL: repoURL}

	var sel models.RepositorySelection
	if _, err := c.api.SendJSON(ctx, http.MethodPost, "add-repo", payload, &sel); err != nil {
		return models.RepositorySelection{}, fmt.Errorf("add repository %q: %w", repoURL, err)
	}
	c.logger.Info("added repository", zap.String("id", sel.ID), zap.String("name", sel.Name))
	return sel, nil
}
