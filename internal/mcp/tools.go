package mcp

import "sort"

// Tool names as exposed to MCP clients.
const (
	ToolLatestLog       = "getLatestLog"
	ToolLogByID         = "getLogById"
	ToolMultipleLogs    = "getMultipleLogs"
	ToolGithubSelection = "getGithubSelectionById"
	ToolFolderLogLocal  = "getFolderLogLocal"
	ToolListSelections  = "listGithubSelections"
	ToolUpdateSelection = "updateGithubSelection"
	ToolGithubRepoTree  = "getGithubRepoTree"
	ToolAddGithubRepo   = "addGithubRepo"
)

// ToolInfo describes one tool for listings.
type ToolInfo struct {
	Name        string
	Description string
	Inputs      []string
}

var catalog = map[string]ToolInfo{
	ToolLatestLog: {
		Description: "Get the last uploaded log file",
	},
	ToolLogByID: {
		Description: "Get a log file by its ID",
		Inputs:      []string{"id"},
	},
	ToolMultipleLogs: {
		Description: "Get multiple log files by their IDs",
		Inputs:      []string{"ids"},
	},
	ToolGithubSelection: {
		Description: "Get the selected files of a saved GitHub repository selection as a prompt",
		Inputs:      []string{"id"},
	},
	ToolFolderLogLocal: {
		Description: "Upload the .txt files of a local folder to the log store and return all stored logs as a prompt",
		Inputs:      []string{"folderPath", "uriGet?", "uriPost?"},
	},
	ToolListSelections: {
		Description: "List saved GitHub repository selections",
	},
	ToolUpdateSelection: {
		Description: "Replace the selected files of a saved GitHub repository selection",
		Inputs:      []string{"id", "selected_files"},
	},
	ToolAddGithubRepo: {
		Description: "Save a GitHub repository URL as a new selection and return its ID",
		Inputs:      []string{"repo_url"},
	},
	ToolGithubRepoTree: {
		Description: "List the files of a GitHub repository",
		Inputs:      []string{"repo_url", "branch?"},
	},
}

// Tools returns the tool catalog sorted by name.
func Tools() []ToolInfo {
	out := make([]ToolInfo, 0, len(catalog))
	for name, info := range catalog {
		info.Name = name
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
