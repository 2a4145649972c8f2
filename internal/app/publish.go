package app

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"nexus-packages/internal/core"
	"nexus-packages/internal/types"
)

// Publish records a custom package rooted at req.Path (defaulting to
// the project directory) into the registry's custom-package mapping.
func (s Service) Publish(ctx context.Context, req PublishRequest) (PublishResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return PublishResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is required")
	}
	if err := core.ValidateVersion(req.Version); err != nil {
		return PublishResult{}, err
	}
	path := strings.TrimSpace(req.Path)
	if path == "" {
		path = s.ProjectDir
	}
	assert.NotEmpty(ctx, path, "publish path must be set")

	registry, err := s.Store.Load()
	if err != nil {
		return PublishResult{}, err
	}
	version := strings.TrimSpace(req.Version)
	registry.Packages[name] = types.CustomPackage{
		Name:        name,
		Version:     version,
		Description: strings.TrimSpace(req.Description),
		Path:        path,
		Type:        "custom",
	}
	if err := s.Store.Save(registry); err != nil {
		return PublishResult{}, err
	}
	log.Info().Str("package", name).Str("version", version).Msg("published package")
	return PublishResult{Name: name, Version: version}, nil
}
