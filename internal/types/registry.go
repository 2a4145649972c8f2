package types

// Registry is the per-user record of packages known to the system,
// persisted as registry.json under the nxs home directory. Custom
// packages are published source trees; npm packages are materialized
// copies fetched from the remote registry. Local installs are copy-only
// and never recorded here.
type Registry struct {
	Packages    map[string]CustomPackage `json:"packages"`
	Local       map[string]LocalPackage  `json:"local"`
	NpmPackages map[string]NpmPackage    `json:"npm_packages"`
}

// CustomPackage is a package published into the custom registry. Path
// points at the publisher's source tree; it is not verified eagerly, so
// a stale path surfaces at resolve time rather than load time.
type CustomPackage struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Path        string `json:"path"`
	Type        string `json:"type"`
}

// NpmPackage records a remote package that has been materialized into a
// content directory.
type NpmPackage struct {
	Version   string `json:"version"`
	Type      string `json:"type"`
	Installed bool   `json:"installed"`
	Path      string `json:"path"`
}

// LocalPackage is reserved in the registry file layout but never
// populated: local-path installs are not remembered.
type LocalPackage struct {
	Path string `json:"path,omitempty"`
}

// NewRegistry returns an empty registry with all mappings initialized.
func NewRegistry() Registry {
	return Registry{
		Packages:    map[string]CustomPackage{},
		Local:       map[string]LocalPackage{},
		NpmPackages: map[string]NpmPackage{},
	}
}
