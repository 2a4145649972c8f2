package app

import (
	"os"
	"path/filepath"

	"nexus-packages/internal/adapters"
	"nexus-packages/internal/ports"
)

const DefaultRegistryURL = "https://registry.npmjs.org"

// Config carries the filesystem and network roots the service operates
// on. Zero values fall back to the conventional locations (~/.nexus,
// the current working directory, the public npm registry).
type Config struct {
	Home           string
	ProjectDir     string
	RegistryURL    string
	HTTPTimeoutSec int
	SearchLimit    int
}

// Service orchestrates package resolution, installation, and project
// bookkeeping. All durable state flows through the explicit ports; the
// service itself holds no mutable state between calls.
type Service struct {
	Store       ports.RegistryStorePort
	Resolvers   []ports.SourceResolverPort
	Searcher    ports.RegistrySearcherPort
	Rewriter    ports.RewriterPort
	Linker      ports.LinkerPort
	Manifest    ports.ManifestStorePort
	Runner      ports.ScriptRunnerPort
	ProjectDir  string
	ModulesDir  string
	SearchLimit int
}

func NewService(cfg Config) Service {
	home := cfg.Home
	if home == "" {
		if userHome, err := os.UserHomeDir(); err == nil {
			home = filepath.Join(userHome, ".nexus")
		} else {
			home = ".nexus"
		}
	}
	projectDir := cfg.ProjectDir
	if projectDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			projectDir = cwd
		} else {
			projectDir = "."
		}
	}
	registryURL := cfg.RegistryURL
	if registryURL == "" {
		registryURL = DefaultRegistryURL
	}
	packagesDir := filepath.Join(home, "packages")
	modulesDir := filepath.Join(projectDir, "nxs_modules")
	manifestPath := filepath.Join(projectDir, "nxs.json")

	store := adapters.NewRegistryFileAdapter(home)
	npm := adapters.NewNpmRegistryAdapter(registryURL, packagesDir, cfg.HTTPTimeoutSec)
	return Service{
		Store: store,
		// Resolution order is fixed: remote registry first, custom and
		// local as override mechanisms for names absent from it.
		Resolvers: []ports.SourceResolverPort{
			npm,
			adapters.NewCustomResolverAdapter(store, packagesDir),
			adapters.NewLocalResolverAdapter(projectDir, packagesDir),
		},
		Searcher:    npm,
		Rewriter:    adapters.NewRewriteDirAdapter(),
		Linker:      adapters.NewLinkerAdapter(modulesDir),
		Manifest:    adapters.NewManifestFileAdapter(manifestPath),
		Runner:      adapters.NewScriptRunnerAdapter(projectDir),
		ProjectDir:  projectDir,
		ModulesDir:  modulesDir,
		SearchLimit: cfg.SearchLimit,
	}
}
