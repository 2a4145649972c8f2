package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"nexus-packages/internal/shared"
	"nexus-packages/internal/types"
)

// List enumerates the project module directory with the installed
// version (when the registry or the package's own manifest records one)
// and the on-disk size of each entry.
func (s Service) List(ctx context.Context) (ListResult, error) {
	entries, err := os.ReadDir(s.ModulesDir)
	if errors.Is(err, fs.ErrNotExist) {
		return ListResult{}, nil
	}
	if err != nil {
		return ListResult{}, err
	}
	registry, err := s.Store.Load()
	if err != nil {
		return ListResult{}, err
	}
	packages := make([]InstalledPackage, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		linkPath := filepath.Join(s.ModulesDir, name)
		size, err := shared.DirSize(linkPath)
		if err != nil {
			log.Debug().Err(err).Str("package", name).Msg("failed to measure package size")
		}
		packages = append(packages, InstalledPackage{
			Name:      name,
			Version:   s.installedVersion(registry, name, linkPath),
			SizeBytes: size,
		})
	}
	sort.Slice(packages, func(i, j int) bool {
		return packages[i].Name < packages[j].Name
	})
	return ListResult{Packages: packages}, nil
}

// installedVersion looks a version up through the registry first and
// falls back to manifest files inside the linked package.
func (s Service) installedVersion(registry types.Registry, name string, linkPath string) string {
	if entry, ok := registry.NpmPackages[name]; ok {
		return entry.Version
	}
	if entry, ok := registry.Packages[name]; ok {
		return entry.Version
	}
	return shared.ManifestVersion(linkPath)
}
