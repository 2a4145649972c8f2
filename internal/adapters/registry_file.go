package adapters

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"nexus-packages/internal/ports"
	"nexus-packages/internal/types"
)

// RegistryFileAdapter persists the package registry as registry.json
// under the nxs home directory.
type RegistryFileAdapter struct {
	Home string
}

func NewRegistryFileAdapter(home string) RegistryFileAdapter {
	return RegistryFileAdapter{Home: home}
}

func (a RegistryFileAdapter) Path() string {
	return filepath.Join(a.Home, "registry.json")
}

// Load reads the registry file, initializing and persisting an empty
// registry when the file does not exist yet. A file that exists but
// cannot be parsed is fatal: falling back to an empty registry would
// orphan the bookkeeping for every installed package.
func (a RegistryFileAdapter) Load() (types.Registry, error) {
	data, err := os.ReadFile(a.Path())
	if errors.Is(err, fs.ErrNotExist) {
		registry := types.NewRegistry()
		if err := a.Save(registry); err != nil {
			return types.Registry{}, err
		}
		return registry, nil
	}
	if err != nil {
		return types.Registry{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read registry file").
			WithCause(err)
	}
	var registry types.Registry
	if err := json.Unmarshal(data, &registry); err != nil {
		return types.Registry{}, errbuilder.New().
			WithCode(errbuilder.CodeDataLoss).
			WithMsg("registry file is corrupt").
			WithCause(err)
	}
	if registry.Packages == nil {
		registry.Packages = map[string]types.CustomPackage{}
	}
	if registry.Local == nil {
		registry.Local = map[string]types.LocalPackage{}
	}
	if registry.NpmPackages == nil {
		registry.NpmPackages = map[string]types.NpmPackage{}
	}
	return registry, nil
}

// Save rewrites the whole registry file, creating the home directory on
// first use.
func (a RegistryFileAdapter) Save(registry types.Registry) error {
	if err := os.MkdirAll(a.Home, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create nxs home directory").
			WithCause(err)
	}
	data, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode registry").
			WithCause(err)
	}
	if err := os.WriteFile(a.Path(), data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write registry file").
			WithCause(err)
	}
	return nil
}

var _ ports.RegistryStorePort = RegistryFileAdapter{}
