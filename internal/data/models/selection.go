package models

// RepositorySelection associates a GitHub repository with a chosen subset of
// its file paths. SelectedFiles is nil until the user picks files.
//
// CreatedAt is kept as the store's raw text: the store emits naive
// timestamps that time.Time cannot decode.
type RepositorySelection struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	URL           string   `json:"url"`
	SelectedFiles []string `json:"selected_files"`
	CreatedAt     string   `json:"created_at,omitempty"`
}

// RepoRef identifies a repository by owner and name.
//
// The zero value is the "unresolvable" state: callers must check Resolved
// before issuing any repository request.
type RepoRef struct {
	Owner string
	Repo  string
}

func (r RepoRef) Resolved() bool {
	return r.Owner != "" && r.Repo != ""
}

func (r RepoRef) String() string {
	if !r.Resolved() {
		return ""
	}
	return r.Owner + "/" + r.Repo
}

// TreeEntry is one node of a repository tree listing.
type TreeEntry struct {
	Path string
	Type string // "blob" or "tree"
	Size int
}
