package engine

import (
	"context"
	"fmt"

	"contextmcp/internal/data/models"
	"contextmcp/internal/fetcher"
	"contextmcp/internal/prompt"
)

const (
	msgNoLogs        = "No logs found."
	msgNoLogsInBatch = "None of the requested logs were found."
)

// LatestLog renders the last element of the store's latest collection.
func (e *Engine) LatestLog(ctx context.Context) string {
	logs, err := e.Logs.Latest(ctx)
	if err != nil {
		return e.failure("fetching latest log", err)
	}
	if len(logs) == 0 {
		return msgNoLogs
	}
	return renderLogs(logs[len(logs)-1:])
}

// LogByID is MultipleLogs with a batch of one; only the empty-result message
// differs.
func (e *Engine) LogByID(ctx context.Context, id int64) string {
	out, ok := e.aggregateLogs(ctx, []int64{id})
	if !ok {
		return fmt.Sprintf("Log with ID %d not found.", id)
	}
	return out
}

func (e *Engine) MultipleLogs(ctx context.Context, ids []int64) string {
	out, ok := e.aggregateLogs(ctx, ids)
	if !ok {
		return msgNoLogsInBatch
	}
	return out
}

// aggregateLogs fetches every id concurrently, keeps the found logs in
// request order and composes them. ok is false when nothing resolved.
// Duplicate ids share one fetch within this call only.
func (e *Engine) aggregateLogs(ctx context.Context, ids []int64) (string, bool) {
	outcomes := fetcher.FanOut(ctx, ids, fetcher.Dedupe(e.Logs.Get))
	e.observeBatch("logs", fetcher.Stats(outcomes))

	out, err := prompt.ComposeLogs(fetcher.Survivors(outcomes))
	if err != nil {
		return "", false
	}
	return out, true
}

// renderLogs composes an already fetched collection.
func renderLogs(logs []models.LogRecord) string {
	out, err := prompt.ComposeLogs(logs)
	if err != nil {
		return msgNoLogs
	}
	return out
}
