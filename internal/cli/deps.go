package cli

import (
	"context"
	"fmt"

	"contextmcp/internal/config"
	"contextmcp/internal/engine"
	gh "contextmcp/internal/github"
	"contextmcp/internal/logstore"
	"contextmcp/internal/selection"
	"contextmcp/internal/upstream"

	"go.uber.org/zap"
)

// buildEngine wires the store clients and, when withRepo is set, the GitHub
// client. Commands that never touch GitHub skip token resolution.
func buildEngine(ctx context.Context, cfg *config.Config, logger *zap.Logger, withRepo bool) (*engine.Engine, error) {
	logAPI, err := upstream.NewClient(cfg.Upstream.LogURL,
		upstream.WithName("logstore"),
		upstream.WithVerbose(cfg.Runtime.Verbose, logger),
	)
	if err != nil {
		return nil, fmt.Errorf("log store client: %w", err)
	}
	selAPI, err := upstream.NewClient(cfg.Upstream.SelectionURL,
		upstream.WithName("selections"),
		upstream.WithVerbose(cfg.Runtime.Verbose, logger),
	)
	if err != nil {
		return nil, fmt.Errorf("selection store client: %w", err)
	}

	var repo engine.Repository
	if withRepo {
		client, err := newGitHubClient(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		repo = client
	}

	return engine.NewEngine(
		logstore.NewClient(logAPI, logger),
		selection.NewClient(selAPI, logger),
		repo,
		logger,
	), nil
}

func newGitHubClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gh.Client, error) {
	cred, err := gh.ResolveAuthToken(ctx, cfg.GitHub.Token, cfg.GitHub.APIURL)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve GitHub auth token: %w", err)
	}
	if cred.Present() {
		logger.Debug("github token resolved", zap.String("source", string(cred.Source)))
	}

	client, err := gh.NewClient(ctx, cred.Token,
		gh.WithBaseURL(cfg.GitHub.APIURL),
		gh.WithLogger(logger),
		gh.WithVerbose(cfg.Runtime.Verbose),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return client, nil
}
