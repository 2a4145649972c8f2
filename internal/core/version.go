package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ValidateVersion checks that value is a parseable semver version.
func ValidateVersion(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("version must not be empty")
	}
	if _, err := semver.NewVersion(trimmed); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version %q", trimmed)).
			WithCause(err)
	}
	return nil
}

// HighestVersion selects the highest semver version from available,
// ignoring entries that do not parse. Used when packument metadata has
// no dist-tags to consult.
func HighestVersion(available []string) (string, error) {
	parsed := make([]*semver.Version, 0, len(available))
	for _, value := range available {
		version, err := semver.NewVersion(value)
		if err != nil {
			continue
		}
		parsed = append(parsed, version)
	}
	if len(parsed) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no parseable versions available")
	}
	sort.Sort(semver.Collection(parsed))
	return parsed[len(parsed)-1].Original(), nil
}
