package models

import (
	"encoding/json"
	"testing"
)

func TestLogRecord_UnmarshalJSON_NameFallback(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want LogRecord
	}{
		{
			name: "name key",
			in:   `{"id":1,"name":"a.txt","content":"x"}`,
			want: LogRecord{ID: 1, Name: "a.txt", Content: "x"},
		},
		{
			name: "filename key",
			in:   `{"id":2,"filename":"b.txt","content":"y"}`,
			want: LogRecord{ID: 2, Name: "b.txt", Content: "y"},
		},
		{
			name: "name wins",
			in:   `{"id":3,"name":"c.txt","filename":"other.txt","content":""}`,
			want: LogRecord{ID: 3, Name: "c.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got LogRecord
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFileFetchResult_OK(t *testing.T) {
	if !FileContent("a.go", "").OK() {
		t.Fatalf("empty content is still a successful fetch")
	}
	r := FileError("b.go", "not found")
	if r.OK() {
		t.Fatalf("error result reported OK")
	}
	if r.ErrorMessage() != "not found" {
		t.Fatalf("ErrorMessage() = %q", r.ErrorMessage())
	}
	if (FileFetchResult{Path: "c.go"}).ErrorMessage() != "invalid path" {
		t.Fatalf("empty result must be treated as an error")
	}
}

func TestRepoRef_Resolved(t *testing.T) {
	if (RepoRef{}).Resolved() {
		t.Fatalf("zero RepoRef must be unresolved")
	}
	if (RepoRef{Owner: "acme"}).Resolved() {
		t.Fatalf("owner-only RepoRef must be unresolved")
	}
	ref := RepoRef{Owner: "acme", Repo: "widgets"}
	if !ref.Resolved() || ref.String() != "acme/widgets" {
		t.Fatalf("unexpected ref %+v (%q)", ref, ref.String())
	}
}
