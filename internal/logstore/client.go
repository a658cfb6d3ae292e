package logstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"contextmcp/internal/data/models"
	"contextmcp/internal/fetcher"
	"contextmcp/internal/upstream"

	"go.uber.org/zap"
)

// DefaultUploadPath is the Log Store's JSON ingestion endpoint, relative to
// the store's base URL.
const DefaultUploadPath = "upload-json-logs/"

// Client talks to the Log Store (`GET /{id}`, `GET /latest`, `GET /`,
// `POST /upload-json-logs/`).
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

// Get retrieves one log by id. It never returns an error: a 404 becomes
// NotFound and every other failure becomes an Error outcome.
func (c *Client) Get(ctx context.Context, id int64) models.Outcome[models.LogRecord] {
	var rec models.LogRecord
	status, err := c.api.GetJSON(ctx, strconv.FormatInt(id, 10), &rec)
	c.logger.Debug("log fetch", zap.Int64("id", id), zap.Int("status", status))

	out := fetcher.OutcomeFromError(rec, err)
	switch out.Kind() {
	case models.OutcomeFound:
		c.logger.Info("retrieved log", zap.Int64("id", id), zap.String("filename", rec.Name))
	case models.OutcomeNotFound:
		c.logger.Info("log not found", zap.Int64("id", id))
	default:
		c.logger.Warn("log fetch failed", zap.Int64("id", id), zap.Error(out.Err()))
	}
	return out
}

// Latest returns the Log Store's "latest" collection in store order. A 404
// (the store reports an empty table that way) is an empty collection.
func (c *Client) Latest(ctx context.Context) ([]models.LogRecord, error) {
	var logs []models.LogRecord
	_, err := c.api.GetJSON(ctx, "latest", &logs)
	if errors.Is(err, fetcher.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch latest logs: %w", err)
	}
	c.logger.Info("retrieved latest logs", zap.Int("count", len(logs)))
	return logs, nil
}

// List fetches a log collection from uri (relative to the store or absolute).
// An empty uri lists every stored log.
func (c *Client) List(ctx context.Context, uri string) ([]models.LogRecord, error) {
	var logs []models.LogRecord
	_, err := c.api.GetJSON(ctx, uri, &logs)
	if errors.Is(err, fetcher.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}

// Upload submits a batch of logs to the ingestion endpoint at uri (relative
// or absolute; empty means DefaultUploadPath) and returns the store's message.
func (c *Client) Upload(ctx context.Context, uri string, logs []models.LogUpload) (string, error) {
	if len(logs) == 0 {
		return "", fmt.Errorf("upload logs: empty batch")
	}
	if uri == "" {
		uri = DefaultUploadPath
	}
	var resp struct {
		Message string `json:"message"`
	}
	if _, err := c.api.SendJSON(ctx, http.MethodPost, uri, logs, &resp); err != nil {
		return "", fmt.Errorf("upload logs: %w", err)
	}
	c.logger.Info("uploaded logs", zap.Int("count", len(logs)), zap.String("uri", c.api.URL(uri)))
	return resp.Message, nil
}
