package selection

import (
	"net/url"
	"strings"

	"contextmcp/internal/data/models"
)

// Resolve derives the owner/repo pair for a selection.
//
// A name of the form "owner/repo" (exactly one slash, both halves non-empty)
// wins. Otherwise the URL is parsed as a github.com repository URL. When
// neither yields a pair the zero RepoRef is returned and callers must not
// attempt any file fetch.
func Resolve(sel models.RepositorySelection) models.RepoRef {
	if ref, ok := parseName(sel.Name); ok {
		return ref
	}
	return ParseRepoURL(sel.URL)
}

func parseName(name string) (models.RepoRef, bool) {
	name = strings.TrimSpace(name)
	if strings.Count(name, "/") != 1 {
		return models.RepoRef{}, false
	}
	owner, repo, _ := strings.Cut(name, "/")
	owner = strings.TrimSpace(owner)
	repo = strings.TrimSpace(repo)
	if owner == "" || repo == "" {
		return models.RepoRef{}, false
	}
	return models.RepoRef{Owner: owner, Repo: repo}, true
}

// ParseRepoURL extracts owner/repo from a GitHub repository URL such as
// https://github.com/acme/widgets or github.com/acme/widgets.git. It returns
// the zero RepoRef for anything else.
func ParseRepoURL(raw string) models.RepoRef {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.RepoRef{}
	}
	if strings.HasPrefix(raw, "github.com/") || strings.HasPrefix(raw, "www.github.com/") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return models.RepoRef{}
	}
	host := strings.ToLower(u.Hostname())
	if host != "github.com" && host != "www.github.com" {
		return models.RepoRef{}
	}
	parts := strings.FieldsFunc(strings.Trim(u.Path, "/"), func(r rune) bool { return r == '/' })
	if len(parts) < 2 {
		return models.RepoRef{}
	}
	repo := strings.TrimSuffix(parts[1], ".git")
	if parts[0] == "" || repo == "" {
		return models.RepoRef{}
	}
	return models.RepoRef{Owner: parts[0], Repo: repo}
}
