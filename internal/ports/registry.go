package ports

import "nexus-packages/internal/types"

// RegistryStorePort owns the durable per-user package registry. Load
// initializes and persists an empty registry when the file is missing;
// an unparsable file is fatal and must never be replaced silently.
type RegistryStorePort interface {
	Load() (types.Registry, error)
	Save(registry types.Registry) error
	Path() string
}
