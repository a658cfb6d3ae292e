package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// ServerName is the implementation name reported to MCP clients.
const ServerName = "contextmcp"

// Engine renders prompt text for each tool. Implementations describe their
// own failures in the returned text.
type Engine interface {
	LatestLog(ctx context.Context) string
	LogByID(ctx context.Context, id int64) string
	MultipleLogs(ctx context.Context, ids []int64) string
	GithubSelection(ctx context.Context, id string) string
	UploadFolder(ctx context.Context, folder, uriGet, uriPost string) string
	ListSelections(ctx context.Context) string
	UpdateSelection(ctx context.Context, id string, paths []string) string
	RepoTree(ctx context.Context, repoURL, branch string) string
	AddRepository(ctx context.Context, repoURL string) string
}

type logByIDInput struct {
	ID int64 `json:"id" jsonschema:"numeric log identifier"`
}

type multipleLogsInput struct {
	IDs []int64 `json:"ids" jsonschema:"numeric log identifiers, rendered in this order"`
}

type selectionInput struct {
	ID string `json:"id" jsonschema:"selection UUID"`
}

type folderInput struct {
	FolderPath string `json:"folderPath" jsonschema:"local directory holding .txt log files"`
	URIGet     string `json:"uriGet,omitempty" jsonschema:"collection URL to read logs back from"`
	URIPost    string `json:"uriPost,omitempty" jsonschema:"ingestion URL to upload logs to"`
}

type updateSelectionInput struct {
	ID            string   `json:"id" jsonschema:"selection UUID"`
	SelectedFiles []string `json:"selected_files" jsonschema:"repository file paths to select"`
}

type repoTreeInput struct {
	RepoURL string `json:"repo_url" jsonschema:"GitHub repository URL"`
	Branch  string `json:"branch,omitempty" jsonschema:"branch to list, main when empty"`
}

type addRepoInput struct {
	RepoURL string `json:"repo_url" jsonschema:"GitHub repository URL"`
}

// NewServer builds an MCP server exposing every catalog tool over e.
func NewServer(e Engine, version string, logger *zap.Logger) *sdkmcp.Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    ServerName,
		Version: version,
	}, nil)

	addTextTool(server, logger, ToolLatestLog, func(ctx context.Context, _ struct{}) string {
		return e.LatestLog(ctx)
	})
	addTextTool(server, logger, ToolLogByID, func(ctx context.Context, in logByIDInput) string {
		return e.LogByID(ctx, in.ID)
	})
	addTextTool(server, logger, ToolMultipleLogs, func(ctx context.Context, in multipleLogsInput) string {
		return e.MultipleLogs(ctx, in.IDs)
	})
	addTextTool(server, logger, ToolGithubSelection, func(ctx context.Context, in selectionInput) string {
		return e.GithubSelection(ctx, in.ID)
	})
	addTextTool(server, logger, ToolFolderLogLocal, func(ctx context.Context, in folderInput) string {
		return e.UploadFolder(ctx, in.FolderPath, in.URIGet, in.URIPost)
	})
	addTextTool(server, logger, ToolListSelections, func(ctx context.Context, _ struct{}) string {
		return e.ListSelections(ctx)
	})
	addTextTool(server, logger, ToolUpdateSelection, func(ctx context.Context, in updateSelectionInput) string {
		return e.UpdateSelection(ctx, in.ID, in.SelectedFiles)
	})
	addTextTool(server, logger, ToolGithubRepoTree, func(ctx context.Context, in repoTreeInput) string {
		return e.RepoTree(ctx, in.RepoURL, in.Branch)
	})
	addTextTool(server, logger, ToolAddGithubRepo, func(ctx context.Context, in addRepoInput) string {
		return e.AddRepository(ctx, in.RepoURL)
	})

	return server
}

// addTextTool registers a tool whose result is always a single text block.
// Domain failures are part of the text, so the handler never returns an
// error to the protocol layer.
func addTextTool[In any](server *sdkmcp.Server, logger *zap.Logger, name string, run func(ctx context.Context, in In) string) {
	info, ok := catalog[name]
	if !ok {
		panic(fmt.Sprintf("mcp: tool %q missing from catalog", name))
	}
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        name,
		Description: info.Description,
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		logger.Info("tool invoked", zap.String("tool", name))
		return &sdkmcp.CallToolResult{
			Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: run(ctx, in)}},
		}, nil, nil
	})
}

// Serve runs server until ctx is done: over stdio when httpAddr is empty,
// otherwise as a streamable HTTP endpoint on httpAddr.
func Serve(ctx context.Context, server *sdkmcp.Server, httpAddr string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if httpAddr == "" {
		logger.Info("serving MCP over stdio")
		return server.Run(ctx, &sdkmcp.StdioTransport{})
	}

	handler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, nil)
	srv := &http.Server{Addr: httpAddr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving MCP over HTTP", zap.String("addr", httpAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
