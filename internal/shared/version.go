package shared

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestVersion reads the version field from a package's own manifest
// files (nxs.json, then package.json). Returns "" when neither declares
// one.
func ManifestVersion(dir string) string {
	for _, manifest := range []string{"nxs.json", "package.json"} {
		data, err := os.ReadFile(filepath.Join(dir, manifest))
		if err != nil {
			continue
		}
		var doc struct {
			Version string `json:"version"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			continue
		}
		if doc.Version != "" {
			return doc.Version
		}
	}
	return ""
}
