package models

// FileFetchResult is the outcome of fetching one repository file.
//
// Exactly one of Content and Error is set. A result with neither set is
// treated as an error by OK.
type FileFetchResult struct {
	Path    string
	Content *string
	Error   *string
}

func FileContent(path, content string) FileFetchResult {
	return FileFetchResult{Path: path, Content: &content}
}

func FileError(path, msg string) FileFetchResult {
	return FileFetchResult{Path: path, Error: &msg}
}

func (r FileFetchResult) OK() bool {
	return r.Content != nil && r.Error == nil
}

// ErrorMessage returns the failure reason, or "" for a successful result.
func (r FileFetchResult) ErrorMessage() string {
	if r.Error != nil {
		return *r.Error
	}
	if r.Content == nil {
		return "invalid path"
	}
	return ""
}
