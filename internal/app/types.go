package app

import "nexus-packages/internal/types"

type InstallRequest struct {
	Name    string
	Version string
}

type InstallResult struct {
	Name     string
	Version  string
	Kind     types.SourceKind
	LinkPath string
	Rewrite  types.RewriteReport
}

type RemoveRequest struct {
	Name string
}

type RemoveResult struct {
	Name string
}

type SearchRequest struct {
	Query string
	Limit int
}

type SearchResult struct {
	Results []types.SearchResult
}

type InstalledPackage struct {
	Name      string
	Version   string
	SizeBytes int64
}

type ListResult struct {
	Packages []InstalledPackage
}

type UpdateResult struct {
	Updated []string
	Failed  []string
}

type RunRequest struct {
	Script string
}

type RunResult struct {
	Command  string
	ExitCode int
}

type PublishRequest struct {
	Name        string
	Version     string
	Description string
	Path        string
}

type PublishResult struct {
	Name    string
	Version string
}
