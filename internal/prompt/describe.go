package prompt

import (
	"fmt"
	"strings"

	"contextmcp/internal/data/models"
)

// DescribeSelection renders the metadata of a selection that has no files
// chosen yet.
func DescribeSelection(sel models.RepositorySelection) string {
	var b strings.Builder
	b.WriteString("GitHub selection details:\n")
	fmt.Fprintf(&b, "- id: %s\n", sel.ID)
	fmt.Fprintf(&b, "- name: %s\n", sel.Name)
	fmt.Fprintf(&b, "- url: %s\n", sel.URL)
	if sel.CreatedAt != "" {
		fmt.Fprintf(&b, "- created_at: %s\n", sel.CreatedAt)
	}
	b.WriteString("\nNo files have been selected for this repository yet.\n")
	return b.String()
}

// DescribeSelections renders a listing of stored selections, one line each.
func DescribeSelections(sels []models.RepositorySelection) string {
	if len(sels) == 0 {
		return "No GitHub selections found.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d GitHub selection(s):\n", len(sels))
	for _, s := range sels {
		fmt.Fprintf(&b, "- %s: %s (%s) [%d file(s) selected]\n", s.ID, s.Name, s.URL, len(s.SelectedFiles))
	}
	return b.String()
}

// DescribeTree renders a repository tree listing. Directories carry a
// trailing slash; blobs their size in bytes.
func DescribeTree(ref models.RepoRef, branch string, entries []models.TreeEntry, truncated bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Repository tree for %s (branch %s), %d entries:\n", ref, branch, len(entries))
	for _, e := range entries {
		if e.Type == "tree" {
			fmt.Fprintf(&b, "%s/\n", e.Path)
			continue
		}
		fmt.Fprintf(&b, "%s (%d bytes)\n", e.Path, e.Size)
	}
	if truncated {
		b.WriteString(TruncationMarker + "\n")
	}
	return b.String()
}
