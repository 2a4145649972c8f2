package app

import (
	"context"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// Update re-installs every manifest dependency at latest. Packages are
// processed independently: one failure never prevents the others from
// updating, except a corrupt registry, which aborts the whole batch.
func (s Service) Update(ctx context.Context) (UpdateResult, error) {
	deps, err := s.Manifest.Dependencies()
	if err != nil {
		return UpdateResult{}, err
	}
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	result := UpdateResult{}
	for _, name := range names {
		if _, err := s.Install(ctx, InstallRequest{Name: name, Version: "latest"}); err != nil {
			// A corrupt registry is fatal for the whole batch; every
			// other failure only skips this package.
			if errbuilder.CodeOf(err) == errbuilder.CodeDataLoss {
				return UpdateResult{}, err
			}
			log.Warn().Err(err).Str("package", name).Msg("failed to update package")
			result.Failed = append(result.Failed, name)
			continue
		}
		result.Updated = append(result.Updated, name)
	}
	return result, nil
}
