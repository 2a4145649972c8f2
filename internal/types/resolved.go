package types

// ResolvedSource is the outcome of a successful resolver attempt: a
// content directory already materialized on disk plus the concrete
// version the resolver obtained ("latest" is never returned as-is).
type ResolvedSource struct {
	Kind    SourceKind
	Name    string
	Version string
	Path    string
}

// SearchResult is one package hit from either the custom or the remote
// registry. The same name may legitimately appear once per source.
type SearchResult struct {
	Name        string
	Version     string
	Description string
	Source      SourceKind
}
