package prompt

import "strings"

const (
	// LogLines is the maximum number of lines rendered per log body.
	LogLines = 20
	// FileLines is the maximum number of lines rendered per source file.
	// Source is denser than logs, so it gets a multiple of the log budget.
	FileLines = 10 * LogLines

	// TruncationMarker is appended on its own line to cut source files.
	// Logs are cut silently.
	TruncationMarker = "... (truncated)"
)

// Truncate returns the first k newline-separated lines of content and
// whether anything was dropped. Content with k lines or fewer is returned
// unchanged.
func Truncate(content string, k int) (string, bool) {
	if k < 0 {
		k = 0
	}
	lines := strings.Split(content, "\n")
	if len(lines) <= k {
		return content, false
	}
	return strings.Join(lines[:k], "\n"), true
}

func TruncateLog(content string) string {
	out, _ := Truncate(content, LogLines)
	return out
}

func TruncateFile(content string) string {
	out, cut := Truncate(content, FileLines)
	if cut {
		return out + "\n" + TruncationMarker
	}
	return out
}
