package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"nexus-packages/internal/ports"
	"nexus-packages/internal/shared"
	"nexus-packages/internal/types"
)

// LocalResolverAdapter resolves a name against a directory of the same
// name under the project root. Local installs are copy-only and never
// recorded in the registry.
type LocalResolverAdapter struct {
	ProjectDir  string
	PackagesDir string
}

func NewLocalResolverAdapter(projectDir string, packagesDir string) LocalResolverAdapter {
	return LocalResolverAdapter{ProjectDir: projectDir, PackagesDir: packagesDir}
}

func (a LocalResolverAdapter) Kind() types.SourceKind {
	return types.SourceKindLocal
}

func (a LocalResolverAdapter) Resolve(ctx context.Context, name string, version string) (types.ResolvedSource, error) {
	source := filepath.Join(a.ProjectDir, name)
	info, err := os.Stat(source)
	if err != nil || !info.IsDir() {
		return types.ResolvedSource{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no local directory for package %s", name))
	}
	contentDir := filepath.Join(a.PackagesDir, name)
	if err := os.RemoveAll(contentDir); err != nil {
		return types.ResolvedSource{}, resolveFailure("failed to clear content directory", err)
	}
	if err := shared.CopyDir(source, contentDir); err != nil {
		return types.ResolvedSource{}, resolveFailure("failed to copy local package", err)
	}
	concrete := shared.ManifestVersion(source)
	if concrete == "" {
		concrete = "local"
	}
	log.Debug().
		Str("package", name).
		Str("source", source).
		Msg("copied local package")
	return types.ResolvedSource{
		Kind:    types.SourceKindLocal,
		Name:    name,
		Version: concrete,
		Path:    contentDir,
	}, nil
}

var _ ports.SourceResolverPort = LocalResolverAdapter{}
