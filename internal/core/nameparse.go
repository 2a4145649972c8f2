package core

import "strings"

// SplitNameVersion splits an install argument of the form name@version.
// The separator is only recognized after the first character so that
// scoped names like @types/node survive without a version suffix, while
// @types/node@1.2.3 still splits at the last separator.
func SplitNameVersion(arg string) (string, string) {
	trimmed := strings.TrimSpace(arg)
	if idx := strings.LastIndex(trimmed, "@"); idx > 0 {
		return trimmed[:idx], trimmed[idx+1:]
	}
	return trimmed, "latest"
}
