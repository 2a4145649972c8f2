package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"nexus-packages/internal/types"
)

// Install resolves name through the fixed resolver order, materializes
// the first hit, rewrites remote sources, records remote installs in
// the registry, and links the package into the project. Re-installing
// an already-installed name always re-resolves and replaces the content
// directory and link; there is no freshness check to skip on.
func (s Service) Install(ctx context.Context, req InstallRequest) (InstallResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return InstallResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is required")
	}
	version := strings.TrimSpace(req.Version)
	if version == "" {
		version = "latest"
	}

	// Load up front: a corrupt registry aborts before any resolver runs
	// or any filesystem state changes.
	registry, err := s.Store.Load()
	if err != nil {
		return InstallResult{}, err
	}

	var resolved types.ResolvedSource
	found := false
	for _, resolver := range s.Resolvers {
		source, err := resolver.Resolve(ctx, name, version)
		if err != nil {
			// Misses and transient failures both escalate to the next
			// resolver; only total exhaustion is reported.
			log.Debug().
				Err(err).
				Str("resolver", string(resolver.Kind())).
				Str("package", name).
				Msg("resolver did not match")
			continue
		}
		resolved = source
		found = true
		break
	}
	if !found {
		return InstallResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("package %s not found", name))
	}

	var report types.RewriteReport
	if resolved.Kind == types.SourceKindNpm {
		report, err = s.Rewriter.RewritePackage(resolved.Path)
		if err != nil {
			// Lossy by contract: a failed rewrite pass warns and the
			// package still links as-is.
			log.Warn().Err(err).Str("package", name).Msg("source rewrite failed")
		}
		for _, failure := range report.Failed {
			log.Warn().
				Str("package", name).
				Str("file", failure.File).
				Str("reason", failure.Reason).
				Msg("failed to rewrite file")
		}
		registry.NpmPackages[name] = types.NpmPackage{
			Version:   resolved.Version,
			Type:      "npm",
			Installed: true,
			Path:      resolved.Path,
		}
		if err := s.Store.Save(registry); err != nil {
			return InstallResult{}, err
		}
	}

	linkPath, err := s.Linker.Link(name, resolved.Path)
	if err != nil {
		return InstallResult{}, err
	}
	if err := s.Manifest.SetDependency(name, "*"); err != nil {
		// The content directory and link stay in place; only the
		// manifest is stale. Surfaced distinctly so just the sync can
		// be retried.
		return InstallResult{}, err
	}
	log.Info().
		Str("package", name).
		Str("version", resolved.Version).
		Str("source", string(resolved.Kind)).
		Msg("installed package")
	return InstallResult{
		Name:     name,
		Version:  resolved.Version,
		Kind:     resolved.Kind,
		LinkPath: linkPath,
		Rewrite:  report,
	}, nil
}
