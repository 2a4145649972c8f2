//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"nexus-packages/internal/app"
	"nexus-packages/internal/types"
)

func TestNpmInstallWithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startNpmRegistryMock(ctx, t)
	t.Cleanup(cleanup)

	home := t.TempDir()
	projectDir := t.TempDir()
	service := app.NewService(app.Config{
		Home:           home,
		ProjectDir:     projectDir,
		RegistryURL:    endpoint,
		HTTPTimeoutSec: 10,
	})

	result, err := service.Install(ctx, app.InstallRequest{Name: "left-pad"})
	require.NoError(t, err)
	assert.Equal(t, types.SourceKindNpm, result.Kind)
	assert.Equal(t, "1.3.0", result.Version)

	// Content cached under the home, rewritten sources linked into the
	// project, registry and manifest both updated.
	require.FileExists(t, filepath.Join(home, "packages", "left-pad@1.3.0", "index.js"))
	require.FileExists(t, filepath.Join(projectDir, "nxs_modules", "left-pad", "index.nxs"))
	require.FileExists(t, filepath.Join(home, "registry.json"))
	manifestData, err := os.ReadFile(filepath.Join(projectDir, "nxs.json"))
	require.NoError(t, err)
	assert.Contains(t, string(manifestData), `"left-pad": "*"`)

	searchResult, err := service.Search(ctx, app.SearchRequest{Query: "left"})
	require.NoError(t, err)
	require.NotEmpty(t, searchResult.Results)
	assert.Equal(t, "left-pad", searchResult.Results[0].Name)

	_, err = service.Install(ctx, app.InstallRequest{Name: "no-such-package"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func startNpmRegistryMock(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-alpine",
		ExposedPorts: []string{"8080/tcp"},
		Cmd:          []string{"python", "-c", npmRegistryMockScript},
		WaitingFor:   wait.ForListeningPort("8080/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8080/tcp")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())
	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return endpoint, cleanup
}

// The mock rebuilds tarball URLs from the request Host header so the
// packument stays valid across the container's mapped port.
const npmRegistryMockScript = `
import io
import json
import tarfile
from http.server import BaseHTTPRequestHandler, ThreadingHTTPServer

NAME = "left-pad"
VERSION = "1.3.0"
FILES = {
    "package/index.js": b"let x = 1;\nconsole.log(x);",
    "package/package.json": b'{"name": "left-pad", "version": "1.3.0"}',
}

def build_tarball():
    buf = io.BytesIO()
    with tarfile.open(fileobj=buf, mode="w:gz") as tar:
        for name, content in FILES.items():
            info = tarfile.TarInfo(name)
            info.size = len(content)
            tar.addfile(info, io.BytesIO(content))
    return buf.getvalue()

TARBALL = build_tarball()

class Handler(BaseHTTPRequestHandler):
    def send_json(self, payload):
        body = json.dumps(payload).encode("utf-8")
        self.send_response(200)
        self.send_header("Content-Type", "application/json")
        self.end_headers()
        self.wfile.write(body)

    def do_GET(self):
        host = self.headers.get("Host", "localhost:8080")
        if self.path == "/" + NAME:
            self.send_json({
                "name": NAME,
                "dist-tags": {"latest": VERSION},
                "versions": {
                    VERSION: {
                        "version": VERSION,
                        "dist": {
                            "tarball": "http://%s/%s/-/%s-%s.tgz" % (host, NAME, NAME, VERSION)
                        },
                    }
                },
            })
            return
        if self.path.endswith(".tgz"):
            self.send_response(200)
            self.send_header("Content-Type", "application/octet-stream")
            self.end_headers()
            self.wfile.write(TARBALL)
            return
        if self.path.startswith("/-/v1/search"):
            self.send_json({
                "objects": [
                    {"package": {"name": NAME, "version": VERSION, "description": "left pad strings"}}
                ]
            })
            return
        self.send_response(404)
        self.end_headers()

    def log_message(self, format, *args):
        return

def main():
    server = ThreadingHTTPServer(("0.0.0.0", 8080), Handler)
    server.serve_forever()

if __name__ == "__main__":
    main()
`
