package adapters

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"nexus-packages/internal/core"
	"nexus-packages/internal/ports"
	"nexus-packages/internal/shared"
	"nexus-packages/internal/types"
)

const defaultNpmTimeout = 10 * time.Second
const defaultNpmSearchLimit = 5

// NpmRegistryAdapter speaks the npm-compatible registry protocol: it
// resolves packuments, fetches distributable tarballs into content
// directories, and serves best-effort search queries. Every outbound
// call is bounded by the configured timeout; on expiry the attempt is
// reported as an ordinary resolve failure, never left to hang.
type NpmRegistryAdapter struct {
	Endpoint    string
	PackagesDir string
	Timeout     time.Duration
	client      *http.Client
}

func NewNpmRegistryAdapter(endpoint string, packagesDir string, timeoutSec int) NpmRegistryAdapter {
	timeout := defaultNpmTimeout
	if timeoutSec > 0 {
		timeout = time.Duration(timeoutSec) * time.Second
	}
	return NpmRegistryAdapter{
		Endpoint:    strings.TrimRight(endpoint, "/"),
		PackagesDir: packagesDir,
		Timeout:     timeout,
		client:      &http.Client{Timeout: timeout},
	}
}

func (a NpmRegistryAdapter) Kind() types.SourceKind {
	return types.SourceKindNpm
}

type packumentDist struct {
	Tarball string `json:"tarball"`
}

type packumentVersion struct {
	Version string        `json:"version"`
	Dist    packumentDist `json:"dist"`
}

type packument struct {
	Name     string                      `json:"name"`
	DistTags map[string]string           `json:"dist-tags"`
	Versions map[string]packumentVersion `json:"versions"`
}

// Resolve fetches version metadata for name, downloads the matching
// tarball, and extracts it into a fresh content directory keyed by
// name@version. The archive's single top-level wrapper directory is
// stripped and the tarball removed afterwards.
func (a NpmRegistryAdapter) Resolve(ctx context.Context, name string, version string) (types.ResolvedSource, error) {
	doc, err := a.fetchPackument(ctx, name)
	if err != nil {
		return types.ResolvedSource{}, err
	}
	concrete, err := a.concreteVersion(doc, name, version)
	if err != nil {
		return types.ResolvedSource{}, err
	}
	entry, ok := doc.Versions[concrete]
	if !ok || strings.TrimSpace(entry.Dist.Tarball) == "" {
		return types.ResolvedSource{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no tarball for %s@%s", name, concrete))
	}
	contentDir := filepath.Join(a.PackagesDir, name+"@"+concrete)
	if err := os.RemoveAll(contentDir); err != nil {
		return types.ResolvedSource{}, resolveFailure("failed to clear content directory", err)
	}
	if err := os.MkdirAll(contentDir, 0755); err != nil {
		return types.ResolvedSource{}, resolveFailure("failed to create content directory", err)
	}
	tarballPath, err := a.downloadTarball(ctx, entry.Dist.Tarball, contentDir)
	if err != nil {
		return types.ResolvedSource{}, err
	}
	if err := extractTarball(tarballPath, contentDir); err != nil {
		return types.ResolvedSource{}, resolveFailure("failed to extract package archive", err)
	}
	if err := os.Remove(tarballPath); err != nil {
		log.Warn().Err(err).Str("tarball", tarballPath).Msg("failed to remove tarball")
	}
	log.Debug().
		Str("package", name).
		Str("version", concrete).
		Str("path", contentDir).
		Msg("fetched npm package")
	return types.ResolvedSource{
		Kind:    types.SourceKindNpm,
		Name:    name,
		Version: concrete,
		Path:    contentDir,
	}, nil
}

// Search queries the registry's full-text search endpoint. Results are
// best effort; the caller swallows failures.
func (a NpmRegistryAdapter) Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	if limit <= 0 {
		limit = defaultNpmSearchLimit
	}
	searchURL := a.Endpoint + "/-/v1/search?text=" + url.QueryEscape(query) + "&size=" + strconv.Itoa(limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, resolveFailure("failed to build search request", err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, resolveFailure("search request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, resolveFailure("search request failed", shared.HTTPStatusError(resp.StatusCode, searchURL))
	}
	var payload struct {
		Objects []struct {
			Package struct {
				Name        string `json:"name"`
				Version     string `json:"version"`
				Description string `json:"description"`
			} `json:"package"`
		} `json:"objects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, resolveFailure("failed to decode search response", err)
	}
	results := make([]types.SearchResult, 0, len(payload.Objects))
	for _, object := range payload.Objects {
		results = append(results, types.SearchResult{
			Name:        object.Package.Name,
			Version:     object.Package.Version,
			Description: object.Package.Description,
			Source:      types.SourceKindNpm,
		})
	}
	return results, nil
}

func (a NpmRegistryAdapter) fetchPackument(ctx context.Context, name string) (packument, error) {
	metadataURL := a.Endpoint + "/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metadataURL, nil)
	if err != nil {
		return packument{}, resolveFailure("failed to build metadata request", err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		// A timeout is treated identically to "not found": control
		// returns to the caller to try the next resolver.
		return packument{}, resolveFailure("metadata request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return packument{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("package %s not found in npm registry", name))
	}
	if resp.StatusCode != http.StatusOK {
		return packument{}, resolveFailure("metadata request failed", shared.HTTPStatusError(resp.StatusCode, metadataURL))
	}
	var doc packument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return packument{}, resolveFailure("failed to decode package metadata", err)
	}
	return doc, nil
}

func (a NpmRegistryAdapter) concreteVersion(doc packument, name string, version string) (string, error) {
	requested := strings.TrimSpace(version)
	if requested == "" || requested == "latest" {
		if tagged, ok := doc.DistTags["latest"]; ok && tagged != "" {
			return tagged, nil
		}
		available := make([]string, 0, len(doc.Versions))
		for candidate := range doc.Versions {
			available = append(available, candidate)
		}
		return core.HighestVersion(available)
	}
	if _, ok := doc.Versions[requested]; !ok {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("version %s of %s not found in npm registry", requested, name))
	}
	return requested, nil
}

func (a NpmRegistryAdapter) downloadTarball(ctx context.Context, tarballURL string, contentDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tarballURL, nil)
	if err != nil {
		return "", resolveFailure("failed to build tarball request", err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return "", resolveFailure("tarball download failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", resolveFailure("tarball download failed", shared.HTTPStatusError(resp.StatusCode, tarballURL))
	}
	tarballPath := filepath.Join(contentDir, "package.tgz")
	out, err := os.Create(tarballPath)
	if err != nil {
		return "", resolveFailure("failed to create tarball file", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return "", resolveFailure("failed to write tarball file", err)
	}
	if err := out.Close(); err != nil {
		return "", resolveFailure("failed to write tarball file", err)
	}
	return tarballPath, nil
}

// extractTarball unpacks a gzip-compressed tarball into destDir,
// stripping the first path segment of every entry (npm archives wrap
// everything in a single package/ directory).
func extractTarball(tarballPath string, destDir string) error {
	file, err := os.Open(tarballPath)
	if err != nil {
		return err
	}
	defer file.Close()
	gz, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer gz.Close()
	reader := tar.NewReader(gz)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		stripped := stripFirstSegment(header.Name)
		if stripped == "" {
			continue
		}
		target := filepath.Join(destDir, filepath.FromSlash(stripped))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", header.Name)
		}
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, reader); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
		default:
			// Links and special files are not part of the npm archive
			// contract; skip them.
		}
	}
}

func stripFirstSegment(name string) string {
	cleaned := path.Clean(strings.TrimPrefix(name, "./"))
	if cleaned == "." || cleaned == "/" {
		return ""
	}
	parts := strings.SplitN(cleaned, "/", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func resolveFailure(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(msg).
		WithCause(cause)
}

var _ ports.SourceResolverPort = NpmRegistryAdapter{}
var _ ports.RegistrySearcherPort = NpmRegistryAdapter{}
