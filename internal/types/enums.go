package types

type SourceKind string

const (
	SourceKindNpm    SourceKind = "npm"
	SourceKindCustom SourceKind = "custom"
	SourceKindLocal  SourceKind = "local"
)
