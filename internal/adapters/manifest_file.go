package adapters

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"nexus-packages/internal/ports"
)

// ManifestFileAdapter patches single keys of the project manifest
// (nxs.json). The file is decoded into raw messages so that top-level
// keys this tool does not own survive every round trip byte-for-byte.
type ManifestFileAdapter struct {
	ManifestPath string
}

func NewManifestFileAdapter(path string) ManifestFileAdapter {
	return ManifestFileAdapter{ManifestPath: path}
}

func (a ManifestFileAdapter) Path() string {
	return a.ManifestPath
}

func (a ManifestFileAdapter) SetDependency(name string, constraint string) error {
	doc, deps, err := a.loadForPatch()
	if err != nil {
		return err
	}
	deps[name] = constraint
	return a.storePatched(doc, deps)
}

func (a ManifestFileAdapter) RemoveDependency(name string) error {
	if _, err := os.Stat(a.ManifestPath); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	doc, deps, err := a.loadForPatch()
	if err != nil {
		return err
	}
	delete(deps, name)
	return a.storePatched(doc, deps)
}

func (a ManifestFileAdapter) Dependencies() (map[string]string, error) {
	_, deps, err := a.loadForPatch()
	if err != nil {
		return nil, err
	}
	return deps, nil
}

// Script returns the shell command registered under name, or a NotFound
// error when the manifest or the script entry is missing.
func (a ManifestFileAdapter) Script(name string) (string, error) {
	doc, err := a.load()
	if err != nil {
		return "", err
	}
	raw, ok := doc["scripts"]
	if !ok {
		return "", scriptNotFound(name)
	}
	var scripts map[string]string
	if err := json.Unmarshal(raw, &scripts); err != nil {
		return "", manifestSyncError("scripts section is not a string mapping", err)
	}
	command, ok := scripts[name]
	if !ok {
		return "", scriptNotFound(name)
	}
	return command, nil
}

// load reads the manifest into raw top-level messages; a missing file
// yields the empty skeleton.
func (a ManifestFileAdapter) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(a.ManifestPath)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{
			"dependencies":    json.RawMessage(`{}`),
			"devDependencies": json.RawMessage(`{}`),
		}, nil
	}
	if err != nil {
		return nil, manifestSyncError("failed to read project manifest", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, manifestSyncError("project manifest is not valid JSON", err)
	}
	return doc, nil
}

func (a ManifestFileAdapter) loadForPatch() (map[string]json.RawMessage, map[string]string, error) {
	doc, err := a.load()
	if err != nil {
		return nil, nil, err
	}
	deps := map[string]string{}
	if raw, ok := doc["dependencies"]; ok {
		if err := json.Unmarshal(raw, &deps); err != nil {
			return nil, nil, manifestSyncError("dependencies section is not a string mapping", err)
		}
	}
	return doc, deps, nil
}

func (a ManifestFileAdapter) storePatched(doc map[string]json.RawMessage, deps map[string]string) error {
	encoded, err := json.Marshal(deps)
	if err != nil {
		return manifestSyncError("failed to encode dependencies", err)
	}
	doc["dependencies"] = encoded
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return manifestSyncError("failed to encode project manifest", err)
	}
	if err := os.WriteFile(a.ManifestPath, data, 0644); err != nil {
		return manifestSyncError("failed to write project manifest", err)
	}
	return nil
}

func manifestSyncError(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("manifest sync: " + msg).
		WithCause(cause)
}

func scriptNotFound(name string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("script %q not found in manifest", name))
}

var _ ports.ManifestStorePort = ManifestFileAdapter{}
