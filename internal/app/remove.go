package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// Remove deletes the project link and drops the manifest dependency.
// The registry and the cached content directory are left alone on
// purpose: re-installation is disk-cheap. Removing a never-installed
// name is a no-op.
func (s Service) Remove(ctx context.Context, req RemoveRequest) (RemoveResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return RemoveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is required")
	}
	if err := s.Linker.Unlink(name); err != nil {
		return RemoveResult{}, err
	}
	if err := s.Manifest.RemoveDependency(name); err != nil {
		return RemoveResult{}, err
	}
	log.Info().Str("package", name).Msg("removed package")
	return RemoveResult{Name: name}, nil
}
