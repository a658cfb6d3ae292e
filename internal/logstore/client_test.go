package logstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"contextmcp/internal/data/models"
	"contextmcp/internal/fetcher"
	"contextmcp/internal/upstream"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	api, err := upstream.NewClient(server.URL + "/api/logs")
	if err != nil {
		t.Fatalf("upstream.NewClient: %v", err)
	}
	return NewClient(api, nil)
}

func TestGet(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/logs/7":
			_, _ = w.Write([]byte(`{"id":7,"name":"app.log","content":"line1\nline2"}`))
		case "/api/logs/8":
			http.Error(w, `{"detail":"Log with id 8 not found"}`, http.StatusNotFound)
		default:
			http.Error(w, "kaboom", http.StatusInternalServerError)
		}
	}))
	ctx := context.Background()

	found := c.Get(ctx, 7)
	rec, ok := found.Value()
	if !ok {
		t.Fatalf("expected found, got %v", found)
	}
	if rec.ID != 7 || rec.Name != "app.log" || rec.Content != "line1\nline2" {
		t.Fatalf("unexpected record %+v", rec)
	}

	if o := c.Get(ctx, 8); o.Kind() != models.OutcomeNotFound {
		t.Fatalf("want not found, got %v", o)
	}

	failed := c.Get(ctx, 9)
	if failed.Kind() != models.OutcomeError {
		t.Fatalf("want error, got %v", failed)
	}
	var up *fetcher.UpstreamError
	if !errors.As(failed.Err(), &up) || up.Status != http.StatusInternalServerError {
		t.Fatalf("unexpected error %v", failed.Err())
	}
}

func TestGet_CancelledCallerDoesNotAffectConcurrentRequest(t *testing.T) {
	arrived := make(chan struct{}, 2)
	release := make(chan struct{})
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived <- struct{}{}
		select {
		case <-release:
			_, _ = w.Write([]byte(`{"id":7,"name":"seven.log","content":"c"}`))
		case <-r.Context().Done():
		}
	}))

	waitArrival := func() {
		t.Helper()
		select {
		case <-arrived:
		case <-time.After(2 * time.Second):
			close(release)
			t.Fatalf("request never reached the store")
		}
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	resA := make(chan models.Outcome[models.LogRecord], 1)
	go func() { resA <- c.Get(ctxA, 7) }()
	waitArrival()

	resB := make(chan models.Outcome[models.LogRecord], 1)
	go func() { resB <- c.Get(context.Background(), 7) }()
	waitArrival()

	cancelA()
	if a := <-resA; a.Kind() != models.OutcomeError || !errors.Is(a.Err(), context.Canceled) {
		t.Fatalf("cancelled request = %v", a)
	}

	close(release)
	b := <-resB
	if rec, ok := b.Value(); !ok || rec.Name != "seven.log" {
		t.Fatalf("concurrent request = %v", b)
	}
}

func TestLatest(t *testing.T) {
	t.Run("filename key decoded", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/logs/latest" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			_, _ = w.Write([]byte(`[{"id":1,"filename":"a.log","content":"a"},{"id":2,"filename":"b.log","content":"b"}]`))
		}))
		logs, err := c.Latest(context.Background())
		if err != nil {
			t.Fatalf("Latest: %v", err)
		}
		if len(logs) != 2 || logs[1].Name != "b.log" {
			t.Fatalf("unexpected logs %+v", logs)
		}
	})

	t.Run("404 is empty", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail":"No log files found"}`, http.StatusNotFound)
		}))
		logs, err := c.Latest(context.Background())
		if err != nil || len(logs) != 0 {
			t.Fatalf("logs=%v err=%v", logs, err)
		}
	})

	t.Run("server error surfaces", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}))
		if _, err := c.Latest(context.Background()); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestUploadAndList(t *testing.T) {
	var uploaded []models.LogUpload
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/logs/upload-json-logs/":
			_ = json.NewDecoder(r.Body).Decode(&uploaded)
			_, _ = w.Write([]byte(`{"message":"1 logs uploaded successfully."}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/logs":
			_, _ = w.Write([]byte(`[{"id":1,"filename":"a.txt","content":"hello"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	ctx := context.Background()

	msg, err := c.Upload(ctx, "", []models.LogUpload{{Filename: "a.txt", Content: "hello"}})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.Contains(msg, "uploaded") {
		t.Fatalf("message = %q", msg)
	}
	if len(uploaded) != 1 || uploaded[0].Filename != "a.txt" {
		t.Fatalf("server saw %+v", uploaded)
	}

	logs, err := c.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(logs) != 1 || logs[0].Name != "a.txt" {
		t.Fatalf("logs = %+v", logs)
	}

	if _, err := c.Upload(ctx, "", nil); err == nil {
		t.Fatalf("expected error for empty batch")
	}
}
