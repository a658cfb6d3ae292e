package prompt

import (
	"errors"
	"fmt"
	"strings"

	"contextmcp/internal/data/models"
)

// ErrNoArtifacts is returned when a composer is handed an empty batch. Callers
// render their own "nothing found" message instead of a bare header.
var ErrNoArtifacts = errors.New("no artifacts to compose")

var logHeader = strings.Join([]string{
	"You are an expert data engineer.",
	"I will provide you with several logs from different files.",
	"Your task is to analyze them and identify any issues or suggest improvements based on the content.",
	"",
	"Each log has the following structure:",
	"- id: a numeric identifier for the file",
	"- filename: the name of the file",
	"- content: the actual log or data from the file",
	"",
	"You might receive multiple files at once. Please analyze **all of them** before responding.",
	"Here are the logs:\n",
}, "\n")

func fileHeader(ref models.RepoRef) string {
	return strings.Join([]string{
		"You are an expert software engineer.",
		fmt.Sprintf("I will provide you with several source files from the GitHub repository %s.", ref),
		"Your task is to analyze them and identify any issues or suggest improvements based on the content.",
		"",
		"Each file has the following structure:",
		"- path: the path of the file within the repository",
		"- content: the contents of the file",
		"",
		"You might receive multiple files at once. Please analyze **all of them** before responding.",
		"Here are the files:\n",
	}, "\n")
}

// ComposeLogs renders the log prompt: the fixed header followed by one block
// per record, in input order. A single log is a batch of one.
func ComposeLogs(logs []models.LogRecord) (string, error) {
	if len(logs) == 0 {
		return "", ErrNoArtifacts
	}

	var b strings.Builder
	b.WriteString(logHeader)
	for _, l := range logs {
		writeLogBlock(&b, l)
	}
	return b.String(), nil
}

func writeLogBlock(b *strings.Builder, l models.LogRecord) {
	b.WriteString("\n--- LOG START ---\n")
	fmt.Fprintf(b, "id: %d\n", l.ID)
	fmt.Fprintf(b, "filename: %s\n", l.Name)
	fmt.Fprintf(b, "content:\n%s\n", TruncateLog(l.Content))
	b.WriteString("--- LOG END ---\n")
}

// ComposeFiles renders the repository prompt for ref. Successful results
// become file blocks in input order; failed ones are listed after the blocks
// so the reader knows what is missing. At least one result must have content.
func ComposeFiles(ref models.RepoRef, files []models.FileFetchResult) (string, error) {
	var ok, failed []models.FileFetchResult
	for _, f := range files {
		if f.OK() {
			ok = append(ok, f)
		} else {
			failed = append(failed, f)
		}
	}
	if len(ok) == 0 {
		return "", ErrNoArtifacts
	}

	var b strings.Builder
	b.WriteString(fileHeader(ref))
	for _, f := range ok {
		b.WriteString("\n--- FILE START ---\n")
		fmt.Fprintf(&b, "path: %s\n", f.Path)
		fmt.Fprintf(&b, "content:\n%s\n", TruncateFile(*f.Content))
		b.WriteString("--- FILE END ---\n")
	}
	if len(failed) > 0 {
		b.WriteString("\n")
		b.WriteString(FailureList(failed))
	}
	return b.String(), nil
}

// FailureList renders failed fetches as a bulleted list under a fixed
// heading.
func FailureList(failed []models.FileFetchResult) string {
	var b strings.Builder
	b.WriteString("The following files could not be retrieved:\n")
	for _, f := range failed {
		fmt.Fprintf(&b, "- %s: %s\n", f.Path, f.ErrorMessage())
	}
	return b.String()
}
