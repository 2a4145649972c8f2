package ports

// ManifestStorePort patches single keys of the project manifest file.
// Unrelated top-level keys must survive every round trip unchanged.
type ManifestStorePort interface {
	SetDependency(name string, constraint string) error
	RemoveDependency(name string) error
	Dependencies() (map[string]string, error)
	Script(name string) (string, error)
	Path() string
}
