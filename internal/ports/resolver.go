package ports

import (
	"context"

	"nexus-packages/internal/types"
)

// SourceResolverPort attempts to locate a package in one specific source
// and materialize it into a content directory. A miss or a transient
// failure is reported as an error carrying CodeNotFound or CodeInternal;
// either way the caller moves on to the next resolver.
type SourceResolverPort interface {
	Kind() types.SourceKind
	Resolve(ctx context.Context, name string, version string) (types.ResolvedSource, error)
}

// RegistrySearcherPort queries a registry for packages matching a query.
type RegistrySearcherPort interface {
	Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error)
}
