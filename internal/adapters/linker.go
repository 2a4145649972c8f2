package adapters

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"nexus-packages/internal/ports"
	"nexus-packages/internal/shared"
)

// rewrittenSubdir is the sibling directory the rewriter fills inside a
// content directory. When present it is preferred as the link target.
const rewrittenSubdir = "nxs"

// LinkerAdapter creates the per-package entry in the project module
// directory (nxs_modules).
type LinkerAdapter struct {
	ModulesDir string
}

func NewLinkerAdapter(modulesDir string) LinkerAdapter {
	return LinkerAdapter{ModulesDir: modulesDir}
}

// Link exposes contentPath to the project under name. Whatever occupies
// the entry already is removed first so repeated installs never nest
// links or accumulate stale copies. Symlink creation is attempted first
// with a full recursive copy as the fallback.
func (a LinkerAdapter) Link(name string, contentPath string) (string, error) {
	if err := os.MkdirAll(a.ModulesDir, 0755); err != nil {
		return "", linkError("failed to create module directory", err)
	}
	target := contentPath
	rewritten := filepath.Join(contentPath, rewrittenSubdir)
	if info, err := os.Stat(rewritten); err == nil && info.IsDir() {
		target = rewritten
	}
	linkPath := filepath.Join(a.ModulesDir, name)
	if err := a.removeExisting(linkPath); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(linkPath), 0755); err != nil {
		return "", linkError("failed to create link parent directory", err)
	}
	if err := os.Symlink(target, linkPath); err != nil {
		log.Debug().Err(err).Str("package", name).Msg("symlink rejected, copying instead")
		if err := shared.CopyDir(target, linkPath); err != nil {
			return "", linkError("failed to copy package into project", err)
		}
	}
	return linkPath, nil
}

// Unlink removes the project entry for name. Removing a never-installed
// name is a no-op.
func (a LinkerAdapter) Unlink(name string) error {
	return a.removeExisting(filepath.Join(a.ModulesDir, name))
}

// removeExisting clears the link location: symlinks (including dangling
// ones) are unlinked, plain directories removed recursively.
func (a LinkerAdapter) removeExisting(linkPath string) error {
	info, err := os.Lstat(linkPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return linkError("failed to inspect existing link", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(linkPath); err != nil {
			return linkError("failed to remove existing link", err)
		}
		return nil
	}
	if err := os.RemoveAll(linkPath); err != nil {
		return linkError("failed to remove existing package copy", err)
	}
	return nil
}

func linkError(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(msg).
		WithCause(cause)
}

var _ ports.LinkerPort = LinkerAdapter{}
