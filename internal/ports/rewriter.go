package ports

import "nexus-packages/internal/types"

// RewriterPort converts foreign-language sources in a content directory
// into the project dialect, writing results into a sibling subdirectory.
// Per-file failures are collected in the report, never fatal.
type RewriterPort interface {
	RewritePackage(dir string) (types.RewriteReport, error)
}
