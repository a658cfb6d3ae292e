package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contextmcp/internal/config"
	"contextmcp/internal/mcp"

	"go.uber.org/zap"
)

// executeCommand runs the root command with args against fresh config state
// and returns what it wrote to stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONTEXTMCP_LOG_LEVEL", "error")

	*cfg = *config.New()
	logger = zap.NewNop()
	toolsListQuiet = false
	uploadURIGet, uploadURIPost = "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func newLogStore(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/logs/7":
			_, _ = w.Write([]byte(`{"id":7,"name":"app.log","content":"boot\nready"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/logs/latest":
			_, _ = w.Write([]byte(`[{"id":1,"filename":"old.log","content":"o"},{"id":2,"filename":"new.log","content":"n"}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/logs/upload-json-logs/":
			var batch []map[string]string
			if err := json.NewDecoder(r.Body).Decode(&batch); err != nil || len(batch) == 0 {
				http.Error(w, "bad batch", http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`{"message":"Successfully uploaded"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/logs":
			_, _ = w.Write([]byte(`[{"id":5,"filename":"a.txt","content":"first"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestVersion(t *testing.T) {
	out, err := executeCommand(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "contextmcp dev\n") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestToolsList(t *testing.T) {
	out, err := executeCommand(t, "tools", "list")
	if err != nil {
		t.Fatalf("tools list: %v", err)
	}
	for _, tool := range mcp.Tools() {
		if !strings.Contains(out, "TOOL: "+tool.Name+"\n") {
			t.Fatalf("missing %s in output:\n%s", tool.Name, out)
		}
	}

	out, err = executeCommand(t, "tools", "list", "--quiet")
	if err != nil {
		t.Fatalf("tools list --quiet: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(mcp.Tools()) || lines[0] != mcp.Tools()[0].Name {
		t.Fatalf("unexpected quiet output %q", out)
	}
}

func TestPromptCommands(t *testing.T) {
	store := newLogStore(t)
	logURL := store.URL + "/api/logs"

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "log", args: []string{"prompt", "log", "7"}, want: []string{"id: 7\nfilename: app.log\ncontent:\nboot\nready\n"}},
		{name: "missing log", args: []string{"prompt", "log", "8"}, want: []string{"Log with ID 8 not found.\n"}},
		{name: "logs", args: []string{"prompt", "logs", "8", "7"}, want: []string{"--- LOG START ---\nid: 7\n"}},
		{name: "latest", args: []string{"prompt", "latest"}, want: []string{"filename: new.log\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--log-api-url", logURL)
			out, err := executeCommand(t, args...)
			if err != nil {
				t.Fatalf("execute %v: %v", tt.args, err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Fatalf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestPromptUpload(t *testing.T) {
	store := newLogStore(t)
	dir := t.TempDir()
	if err := writeFile(dir, "a.txt", "first"); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := executeCommand(t, "prompt", "upload", dir, "--log-api-url", store.URL+"/api/logs")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.Contains(out, "id: 5\nfilename: a.txt\n") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestPromptLog_RejectsNonIntegerID(t *testing.T) {
	_, err := executeCommand(t, "prompt", "log", "seven")
	if err == nil || !strings.Contains(err.Error(), "invalid log id") {
		t.Fatalf("expected invalid id error, got %v", err)
	}
}

func TestRoot_RejectsInvalidConfig(t *testing.T) {
	_, err := executeCommand(t, "prompt", "latest", "--api-url", "not-a-url")
	if err == nil {
		t.Fatalf("expected config validation error")
	}
}

func TestPromptAddRepo(t *testing.T) {
	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/github/add-repo" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"3f2b8a4e-1c2d-4e5f-8a9b-0c1d2e3f4a5b","name":"acme/widgets","url":"https://github.com/acme/widgets"}`))
	}))
	t.Cleanup(store.Close)

	out, err := executeCommand(t, "prompt", "add-repo", "https://github.com/acme/widgets",
		"--selection-api-url", store.URL+"/api/github")
	if err != nil {
		t.Fatalf("add-repo: %v", err)
	}
	if out != "GitHub repository acme/widgets is saved as selection 3f2b8a4e-1c2d-4e5f-8a9b-0c1d2e3f4a5b (0 file(s) selected).\n" {
		t.Fatalf("unexpected output %q", out)
	}
}
