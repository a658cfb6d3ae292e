package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"contextmcp/internal/data/models"

	"go.uber.org/zap"
)

// ReadLogFolder loads every non-hidden *.txt file directly inside dir, in
// name order. Subdirectories are not descended into.
func ReadLogFolder(dir string) ([]models.LogUpload, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("folder path is empty")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".txt") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	uploads := make([]models.LogUpload, 0, len(names))
	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		uploads = append(uploads, models.LogUpload{Filename: name, Content: string(raw)})
	}
	return uploads, nil
}

// UploadFolder submits the folder's .txt files to the Log Store at uriPost,
// then renders the collection served at uriGet. Empty URIs use the store's
// defaults.
func (e *Engine) UploadFolder(ctx context.Context, folder, uriGet, uriPost string) string {
	uploads, err := ReadLogFolder(folder)
	if err != nil {
		return e.failure("reading log folder", err)
	}
	if len(uploads) == 0 {
		return fmt.Sprintf("No .txt files found in %s.", folder)
	}

	msg, err := e.Logs.Upload(ctx, uriPost, uploads)
	if err != nil {
		return e.failure("uploading logs", err)
	}
	e.logger.Info("log folder uploaded", zap.String("folder", folder), zap.Int("files", len(uploads)), zap.String("message", msg))

	logs, err := e.Logs.List(ctx, uriGet)
	if err != nil {
		return e.failure("fetching logs", err)
	}
	return renderLogs(logs)
}
