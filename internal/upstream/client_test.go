package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contextmcp/internal/fetcher"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewClient_RejectsEmptyBase(t *testing.T) {
	if _, err := NewClient("  "); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}

func TestClient_URL(t *testing.T) {
	c, err := NewClient("http://example.test/api/logs/")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	tests := []struct {
		in   string
		want string
	}{
		{"", "http://example.test/api/logs"},
		{"7", "http://example.test/api/logs/7"},
		{"/latest", "http://example.test/api/logs/latest"},
		{"https://other.test/x", "https://other.test/x"},
	}
	for _, tt := range tests {
		if got := c.URL(tt.in); got != tt.want {
			t.Errorf("URL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClient_GetJSON_StatusClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_ = json.NewEncoder(w).Encode(map[string]string{"hello": "world"})
		case "/missing":
			http.Error(w, `{"detail":"nope"}`, http.StatusNotFound)
		case "/broken":
			http.Error(w, `{"detail":"database is locked"}`, http.StatusInternalServerError)
		case "/empty-error":
			w.WriteHeader(http.StatusBadGateway)
		case "/garbage":
			_, _ = w.Write([]byte("not json"))
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		var out map[string]string
		status, err := c.GetJSON(ctx, "ok", &out)
		if err != nil {
			t.Fatalf("GetJSON: %v", err)
		}
		if status != http.StatusOK || out["hello"] != "world" {
			t.Fatalf("status=%d out=%v", status, out)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := c.GetJSON(ctx, "missing", nil)
		if !errors.Is(err, fetcher.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("upstream error keeps body", func(t *testing.T) {
		_, err := c.GetJSON(ctx, "broken", nil)
		var up *fetcher.UpstreamError
		if !errors.As(err, &up) {
			t.Fatalf("want UpstreamError, got %v", err)
		}
		if up.Status != http.StatusInternalServerError || !strings.Contains(up.Body, "database is locked") {
			t.Fatalf("unexpected error: %+v", up)
		}
	})

	t.Run("empty error body falls back to status text", func(t *testing.T) {
		_, err := c.GetJSON(ctx, "empty-error", nil)
		var up *fetcher.UpstreamError
		if !errors.As(err, &up) {
			t.Fatalf("want UpstreamError, got %v", err)
		}
		if up.Body != http.StatusText(http.StatusBadGateway) {
			t.Fatalf("Body = %q", up.Body)
		}
	})

	t.Run("decode error", func(t *testing.T) {
		var out map[string]string
		_, err := c.GetJSON(ctx, "garbage", &out)
		if err == nil || !strings.Contains(err.Error(), "decode response") {
			t.Fatalf("want decode error, got %v", err)
		}
	})
}

func TestClient_SendJSON(t *testing.T) {
	var gotMethod, gotType string
	var gotBody []map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"message":"2 logs uploaded successfully."}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	var out struct {
		Message string `json:"message"`
	}
	body := []map[string]string{{"filename": "a.txt"}, {"filename": "b.txt"}}
	if _, err := c.SendJSON(context.Background(), http.MethodPost, "upload-json-logs/", body, &out); err != nil {
		t.Fatalf("SendJSON: %v", err)
	}
	if gotMethod != http.MethodPost || gotType != "application/json" {
		t.Fatalf("method=%q content-type=%q", gotMethod, gotType)
	}
	if len(gotBody) != 2 || out.Message == "" {
		t.Fatalf("body=%v out=%+v", gotBody, out)
	}
}

func TestClient_VerboseLogsRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	}))
	t.Cleanup(server.Close)

	core, logs := observer.New(zap.DebugLevel)
	c, err := NewClient(server.URL, WithVerbose(true, zap.New(core)), WithName("logstore"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.GetJSON(context.Background(), "x", nil); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}

	if logs.FilterMessage("upstream request").Len() != 1 {
		t.Fatalf("expected one request log line, got %v", logs.All())
	}
	resp := logs.FilterMessage("upstream response").All()
	if len(resp) != 1 || resp[0].ContextMap()["upstream"] != "logstore" {
		t.Fatalf("unexpected response logs: %v", resp)
	}
}
