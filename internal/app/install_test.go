package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus-packages/internal/adapters"
	"nexus-packages/internal/ports"
	"nexus-packages/internal/types"
)

// stubResolver lets tests script individual resolver outcomes without a
// network or a seeded filesystem source.
type stubResolver struct {
	kind    types.SourceKind
	resolve func(name string, version string) (types.ResolvedSource, error)
}

func (s stubResolver) Kind() types.SourceKind {
	return s.kind
}

func (s stubResolver) Resolve(_ context.Context, name string, version string) (types.ResolvedSource, error) {
	return s.resolve(name, version)
}

func missResolver(kind types.SourceKind) stubResolver {
	return stubResolver{kind: kind, resolve: func(name string, _ string) (types.ResolvedSource, error) {
		return types.ResolvedSource{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("not found: " + name)
	}}
}

// hitResolver materializes files into a content directory and reports a
// successful resolution, mimicking a real resolver's side effects.
func hitResolver(t *testing.T, kind types.SourceKind, version string, dir string, files map[string]string) stubResolver {
	t.Helper()
	return stubResolver{kind: kind, resolve: func(name string, _ string) (types.ResolvedSource, error) {
		require.NoError(t, os.RemoveAll(dir))
		for relPath, content := range files {
			path := filepath.Join(dir, relPath)
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		}
		return types.ResolvedSource{Kind: kind, Name: name, Version: version, Path: dir}, nil
	}}
}

type testEnv struct {
	service    Service
	home       string
	projectDir string
	store      adapters.RegistryFileAdapter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	projectDir := t.TempDir()
	store := adapters.NewRegistryFileAdapter(home)
	modulesDir := filepath.Join(projectDir, "nxs_modules")
	service := Service{
		Store: store,
		Resolvers: []ports.SourceResolverPort{
			missResolver(types.SourceKindNpm),
			adapters.NewCustomResolverAdapter(store, filepath.Join(home, "packages")),
			adapters.NewLocalResolverAdapter(projectDir, filepath.Join(home, "packages")),
		},
		Rewriter:   adapters.NewRewriteDirAdapter(),
		Linker:     adapters.NewLinkerAdapter(modulesDir),
		Manifest:   adapters.NewManifestFileAdapter(filepath.Join(projectDir, "nxs.json")),
		Runner:     adapters.NewScriptRunnerAdapter(projectDir),
		ProjectDir: projectDir,
		ModulesDir: modulesDir,
	}
	return &testEnv{service: service, home: home, projectDir: projectDir, store: store}
}

func (e *testEnv) seedCustomPackage(t *testing.T, name string, version string) string {
	t.Helper()
	source := filepath.Join(e.projectDir, "src-"+name)
	require.NoError(t, os.MkdirAll(source, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "main.nxs"), []byte("print(1)"), 0644))
	registry, err := e.store.Load()
	require.NoError(t, err)
	registry.Packages[name] = types.CustomPackage{
		Name:    name,
		Version: version,
		Path:    source,
		Type:    "custom",
	}
	require.NoError(t, e.store.Save(registry))
	return source
}

func (e *testEnv) readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestInstallNotFoundLeavesStateUntouched(t *testing.T) {
	env := newTestEnv(t)
	manifestPath := filepath.Join(env.projectDir, "nxs.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`{"dependencies": {"kept": "*"}}`), 0644))
	_, err := env.store.Load()
	require.NoError(t, err)
	registryBefore := env.readFile(t, env.store.Path())
	manifestBefore := env.readFile(t, manifestPath)

	_, err = env.service.Install(context.Background(), InstallRequest{Name: "ghost"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	// Both stores must be byte-identical to their pre-call state.
	assert.Equal(t, registryBefore, env.readFile(t, env.store.Path()))
	assert.Equal(t, manifestBefore, env.readFile(t, manifestPath))
	require.NoDirExists(t, env.service.ModulesDir)
}

func TestInstallCustomPackage(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomPackage(t, "widgets", "2.1.0")
	registryBefore := env.readFile(t, env.store.Path())

	result, err := env.service.Install(context.Background(), InstallRequest{Name: "widgets", Version: "latest"})
	require.NoError(t, err)
	assert.Equal(t, types.SourceKindCustom, result.Kind)
	assert.Equal(t, "2.1.0", result.Version)

	require.FileExists(t, filepath.Join(env.service.ModulesDir, "widgets", "main.nxs"))
	deps, err := env.service.Manifest.Dependencies()
	require.NoError(t, err)
	assert.Equal(t, "*", deps["widgets"])
	// Custom installs are not additionally recorded as remote.
	assert.Equal(t, registryBefore, env.readFile(t, env.store.Path()))
}

func TestInstallNpmRecordsRegistryEntry(t *testing.T) {
	env := newTestEnv(t)
	contentDir := filepath.Join(env.home, "packages", "left-pad@1.3.0")
	env.service.Resolvers = []ports.SourceResolverPort{
		hitResolver(t, types.SourceKindNpm, "1.3.0", contentDir, map[string]string{
			"index.js": "let x = 1;",
		}),
	}

	result, err := env.service.Install(context.Background(), InstallRequest{Name: "left-pad"})
	require.NoError(t, err)
	assert.Equal(t, types.SourceKindNpm, result.Kind)

	registry, err := env.store.Load()
	require.NoError(t, err)
	entry, ok := registry.NpmPackages["left-pad"]
	require.True(t, ok)
	if diff := cmp.Diff(types.NpmPackage{
		Version:   "1.3.0",
		Type:      "npm",
		Installed: true,
		Path:      contentDir,
	}, entry); diff != "" {
		t.Fatalf("unexpected registry entry (-want +got):\n%s", diff)
	}

	// Remote content gets rewritten and the link prefers the rewrite.
	require.FileExists(t, filepath.Join(env.service.ModulesDir, "left-pad", "index.nxs"))
}

func TestInstallResolverPriorityRemoteWins(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomPackage(t, "widgets", "2.1.0")
	contentDir := filepath.Join(env.home, "packages", "widgets@9.0.0")
	env.service.Resolvers = append([]ports.SourceResolverPort{
		hitResolver(t, types.SourceKindNpm, "9.0.0", contentDir, map[string]string{
			"remote-marker.js": "let remote = true;",
		}),
	}, env.service.Resolvers[1:]...)

	result, err := env.service.Install(context.Background(), InstallRequest{Name: "widgets"})
	require.NoError(t, err)
	assert.Equal(t, types.SourceKindNpm, result.Kind)
	// The remote artifact is what gets linked, not the custom copy.
	require.FileExists(t, filepath.Join(env.service.ModulesDir, "widgets", "remote-marker.nxs"))
	require.NoFileExists(t, filepath.Join(env.service.ModulesDir, "widgets", "main.nxs"))
}

func TestInstallFallsThroughTransientFailure(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomPackage(t, "widgets", "2.1.0")
	env.service.Resolvers[0] = stubResolver{
		kind: types.SourceKindNpm,
		resolve: func(string, string) (types.ResolvedSource, error) {
			return types.ResolvedSource{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("metadata request failed")
		},
	}

	result, err := env.service.Install(context.Background(), InstallRequest{Name: "widgets"})
	require.NoError(t, err)
	assert.Equal(t, types.SourceKindCustom, result.Kind)
}

func TestRemoveThenInstallMatchesFreshInstall(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomPackage(t, "widgets", "2.1.0")

	_, err := env.service.Install(context.Background(), InstallRequest{Name: "widgets"})
	require.NoError(t, err)
	_, err = env.service.Remove(context.Background(), RemoveRequest{Name: "widgets"})
	require.NoError(t, err)

	_, err = os.Lstat(filepath.Join(env.service.ModulesDir, "widgets"))
	require.True(t, os.IsNotExist(err))
	deps, err := env.service.Manifest.Dependencies()
	require.NoError(t, err)
	assert.NotContains(t, deps, "widgets")

	_, err = env.service.Install(context.Background(), InstallRequest{Name: "widgets"})
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(env.service.ModulesDir, "widgets", "main.nxs"))
	deps, err = env.service.Manifest.Dependencies()
	require.NoError(t, err)
	assert.Equal(t, "*", deps["widgets"])
}

func TestReinstallReplacesLink(t *testing.T) {
	env := newTestEnv(t)
	firstDir := filepath.Join(env.home, "packages", "tool@1.0.0")
	secondDir := filepath.Join(env.home, "packages", "tool@2.0.0")

	env.service.Resolvers = []ports.SourceResolverPort{
		hitResolver(t, types.SourceKindNpm, "1.0.0", firstDir, map[string]string{"one.js": "let a = 1;"}),
	}
	_, err := env.service.Install(context.Background(), InstallRequest{Name: "tool"})
	require.NoError(t, err)

	env.service.Resolvers = []ports.SourceResolverPort{
		hitResolver(t, types.SourceKindNpm, "2.0.0", secondDir, map[string]string{"two.js": "let b = 2;"}),
	}
	_, err = env.service.Install(context.Background(), InstallRequest{Name: "tool"})
	require.NoError(t, err)

	// Exactly one valid entry afterwards, pointing at the new content.
	entries, err := os.ReadDir(env.service.ModulesDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.FileExists(t, filepath.Join(env.service.ModulesDir, "tool", "two.nxs"))
	require.NoFileExists(t, filepath.Join(env.service.ModulesDir, "tool", "one.nxs"))

	registry, err := env.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", registry.NpmPackages["tool"].Version)
}

func TestInstallCorruptRegistryAborts(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.store.Path(), []byte("not json"), 0644))

	_, err := env.service.Install(context.Background(), InstallRequest{Name: "widgets"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeDataLoss, errbuilder.CodeOf(err))
	require.NoDirExists(t, env.service.ModulesDir)
}

func TestRemoveNeverInstalledIsNoop(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.service.Remove(context.Background(), RemoveRequest{Name: "ghost"})
	require.NoError(t, err)
}

func TestInstallManifestSyncFailureKeepsLink(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomPackage(t, "widgets", "2.1.0")
	// A directory at the manifest path makes every manifest write fail
	// after the link has already been created.
	require.NoError(t, os.MkdirAll(filepath.Join(env.projectDir, "nxs.json"), 0755))

	_, err := env.service.Install(context.Background(), InstallRequest{Name: "widgets"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
	var builder *errbuilder.ErrBuilder
	require.ErrorAs(t, err, &builder)
	assert.Contains(t, builder.Msg, "manifest sync")
	// The link stays in place; only the manifest is stale.
	require.FileExists(t, filepath.Join(env.service.ModulesDir, "widgets", "main.nxs"))
}

func TestUpdateReinstallsAllDependencies(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomPackage(t, "alpha", "1.0.0")
	env.seedCustomPackage(t, "beta", "1.0.0")
	require.NoError(t, env.service.Manifest.SetDependency("alpha", "*"))
	require.NoError(t, env.service.Manifest.SetDependency("beta", "*"))
	require.NoError(t, env.service.Manifest.SetDependency("ghost", "*"))

	result, err := env.service.Update(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, result.Updated)
	// Failures are reported but never block the rest of the batch.
	assert.Equal(t, []string{"ghost"}, result.Failed)
}

func TestUpdateCorruptRegistryAbortsBatch(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomPackage(t, "alpha", "1.0.0")
	env.seedCustomPackage(t, "beta", "1.0.0")
	require.NoError(t, env.service.Manifest.SetDependency("alpha", "*"))
	require.NoError(t, env.service.Manifest.SetDependency("beta", "*"))
	require.NoError(t, os.WriteFile(env.store.Path(), []byte("not json"), 0644))

	result, err := env.service.Update(context.Background())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeDataLoss, errbuilder.CodeOf(err))
	// Nothing is reported as skipped: the batch stops outright.
	assert.Empty(t, result.Updated)
	assert.Empty(t, result.Failed)
	require.NoDirExists(t, env.service.ModulesDir)
}
