package engine

import (
	"context"

	"contextmcp/internal/data/models"
	"contextmcp/internal/fetcher"

	"go.uber.org/zap"
)

// LogStore is the subset of the Log Store client the engine needs.
type LogStore interface {
	Get(ctx context.Context, id int64) models.Outcome[models.LogRecord]
	Latest(ctx context.Context) ([]models.LogRecord, error)
	List(ctx context.Context, uri string) ([]models.LogRecord, error)
	Upload(ctx context.Context, uri string, logs []models.LogUpload) (string, error)
}

// SelectionStore is the subset of the Selection Store client the engine
// needs. Ids passed in are already validated.
type SelectionStore interface {
	Get(ctx context.Context, id string) models.Outcome[models.RepositorySelection]
	List(ctx context.Context) ([]models.RepositorySelection, error)
	Add(ctx context.Context, repoURL string) (models.RepositorySelection, error)
	UpdateFiles(ctx context.Context, id string, paths []string) (models.RepositorySelection, error)
}

// Repository reads file contents and trees from the code host.
type Repository interface {
	FetchFiles(ctx context.Context, ref models.RepoRef, paths []string) []models.FileFetchResult
	Tree(ctx context.Context, ref models.RepoRef, branch string) ([]models.TreeEntry, bool, error)
}

// Engine turns tool invocations into prompt text. Every operation returns a
// string: failures are described in-band, never returned as errors.
type Engine struct {
	Logs       LogStore
	Selections SelectionStore
	Repo       Repository

	logger *zap.Logger
}

func NewEngine(logs LogStore, selections SelectionStore, repo Repository, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		Logs:       logs,
		Selections: selections,
		Repo:       repo,
		logger:     logger,
	}
}

// observeBatch records how a fan-out settled. A partially failed batch is
// not an error, but it must show up in diagnostics.
func (e *Engine) observeBatch(kind string, s fetcher.BatchStats) {
	fields := []zap.Field{
		zap.String("kind", kind),
		zap.Int("requested", s.Requested),
		zap.Int("resolved", s.Found),
		zap.Int("failed", s.NotFound+s.Failed),
	}
	if s.Partial() {
		e.logger.Warn("partial batch failure", fields...)
		return
	}
	e.logger.Info("batch settled", fields...)
}
