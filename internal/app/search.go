package app

import (
	"context"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"nexus-packages/internal/types"
)

const defaultSearchLimit = 5

// Search merges substring matches from the custom registry with
// best-effort results from the remote registry. Remote failures are
// swallowed and simply contribute zero results; a name may appear once
// per source since the sources represent different kinds.
func (s Service) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return SearchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("search query is required")
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.SearchLimit
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	registry, err := s.Store.Load()
	if err != nil {
		return SearchResult{}, err
	}
	var results []types.SearchResult
	for name, entry := range registry.Packages {
		if strings.Contains(strings.ToLower(name), strings.ToLower(query)) {
			results = append(results, types.SearchResult{
				Name:        name,
				Version:     entry.Version,
				Description: entry.Description,
				Source:      types.SourceKindCustom,
			})
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	if s.Searcher != nil {
		remote, err := s.Searcher.Search(ctx, query, limit)
		if err != nil {
			log.Debug().Err(err).Str("query", query).Msg("remote search failed")
		} else {
			results = append(results, remote...)
		}
	}
	return SearchResult{Results: results}, nil
}
