package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the process logger: zap's production JSON encoder writing to
// stderr. stdout is reserved for the stdio MCP transport and for prompt
// output. verbose forces debug level.
func New(level string, verbose bool) (*zap.Logger, zap.AtomicLevel, error) {
	logLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if verbose {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{"stderr"}
	loggerConfig.ErrorOutputPaths = []string{"stderr"}
	// Per-item lines in a large batch must not be sampled away.
	loggerConfig.Sampling = nil

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	return logger, logLevel, nil
}
