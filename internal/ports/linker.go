package ports

// LinkerPort exposes an installed package to the project by creating a
// named entry in the project module directory. Link replaces whatever
// already occupies the entry and falls back to a full copy when the
// filesystem rejects symlinks; the project always ends up with a usable
// copy, never a dangling reference.
type LinkerPort interface {
	Link(name string, contentPath string) (string, error)
	Unlink(name string) error
}
