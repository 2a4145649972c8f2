package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"nexus-packages/internal/ports"
	"nexus-packages/internal/shared"
	"nexus-packages/internal/types"
)

// CustomResolverAdapter resolves names against the custom-package
// mapping of the registry store and materializes the recorded source
// tree into a versioned content directory.
type CustomResolverAdapter struct {
	Store       ports.RegistryStorePort
	PackagesDir string
}

func NewCustomResolverAdapter(store ports.RegistryStorePort, packagesDir string) CustomResolverAdapter {
	return CustomResolverAdapter{Store: store, PackagesDir: packagesDir}
}

func (a CustomResolverAdapter) Kind() types.SourceKind {
	return types.SourceKindCustom
}

func (a CustomResolverAdapter) Resolve(ctx context.Context, name string, version string) (types.ResolvedSource, error) {
	registry, err := a.Store.Load()
	if err != nil {
		return types.ResolvedSource{}, err
	}
	entry, ok := registry.Packages[name]
	if !ok {
		return types.ResolvedSource{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("package %s not found in custom registry", name))
	}
	source := strings.TrimSpace(entry.Path)
	if source == "" {
		return types.ResolvedSource{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("custom package %s has no source path", name))
	}
	if info, err := os.Stat(source); err != nil || !info.IsDir() {
		// Stale registry entry: the recorded path no longer exists.
		return types.ResolvedSource{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("custom package %s source path is gone: %s", name, source))
	}
	concrete := strings.TrimSpace(version)
	if concrete == "" || concrete == "latest" {
		concrete = entry.Version
	}
	contentDir := filepath.Join(a.PackagesDir, name+"@"+concrete)
	if err := os.RemoveAll(contentDir); err != nil {
		return types.ResolvedSource{}, resolveFailure("failed to clear content directory", err)
	}
	if err := shared.CopyDir(source, contentDir); err != nil {
		return types.ResolvedSource{}, resolveFailure("failed to copy custom package", err)
	}
	log.Debug().
		Str("package", name).
		Str("version", concrete).
		Str("source", source).
		Msg("copied custom package")
	return types.ResolvedSource{
		Kind:    types.SourceKindCustom,
		Name:    name,
		Version: concrete,
		Path:    contentDir,
	}, nil
}

var _ ports.SourceResolverPort = CustomResolverAdapter{}
