package adapters

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"nexus-packages/internal/core"
	"nexus-packages/internal/ports"
	"nexus-packages/internal/types"
)

const foreignExtension = ".js"
const rewrittenExtension = ".nxs"
const internalFilePrefix = "_"

// RewriteDirAdapter walks a content directory and rewrites every
// recognized foreign source file into the nxs/ subdirectory, preserving
// relative paths. One file failing never aborts the others.
type RewriteDirAdapter struct {
	rewriter core.Rewriter
}

func NewRewriteDirAdapter() RewriteDirAdapter {
	return RewriteDirAdapter{rewriter: core.NewRewriter()}
}

func (a RewriteDirAdapter) RewritePackage(dir string) (types.RewriteReport, error) {
	outDir := filepath.Join(dir, rewrittenSubdir)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return types.RewriteReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create rewrite directory").
			WithCause(err)
	}
	report := types.RewriteReport{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Never descend into our own output.
			if path == outDir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != foreignExtension {
			return nil
		}
		if strings.HasPrefix(d.Name(), internalFilePrefix) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(outDir, strings.TrimSuffix(rel, foreignExtension)+rewrittenExtension)
		if writeErr := a.rewriteFile(path, target); writeErr != nil {
			log.Warn().Err(writeErr).Str("file", rel).Msg("failed to rewrite source file")
			report.Failed = append(report.Failed, types.RewriteFailure{
				File:   rel,
				Reason: writeErr.Error(),
			})
			return nil
		}
		log.Debug().Str("file", rel).Msg("rewrote source file")
		report.Written = append(report.Written, rel)
		return nil
	})
	if err != nil {
		return report, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan package for rewrite").
			WithCause(err)
	}
	return report, nil
}

func (a RewriteDirAdapter) rewriteFile(source string, target string) error {
	data, err := os.ReadFile(source)
	if err != nil {
		return err
	}
	rewritten := a.rewriter.RewriteSource(string(data))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	return os.WriteFile(target, []byte(rewritten), 0644)
}

var _ ports.RewriterPort = RewriteDirAdapter{}
