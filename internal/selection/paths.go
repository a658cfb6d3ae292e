package selection

import (
	"strings"

	"github.com/samber/lo"
)

// UniquePaths trims paths, drops empty entries and duplicates, and keeps the
// first-seen order. It never returns nil.
func UniquePaths(paths []string) []string {
	cleaned := lo.FilterMap(paths, func(p string, _ int) (string, bool) {
		p = strings.TrimSpace(p)
		return p, p != ""
	})
	out := lo.Uniq(cleaned)
	if out == nil {
		out = []string{}
	}
	return out
}
