package entities

import (
	"strings"

	domainerrors "gitcircles.github/internal/domain/errors"
)

// PlatformGitHub is the only identity platform currently supported.
const PlatformGitHub = "github"

// ValidateSegment rejects identifiers that would break key encoding:
// identifier segments must never contain the key delimiter.
func ValidateSegment(field, value string) error {
	if value == "" {
		return domainerrors.Validation(field, value, "must not be empty")
	}
	if strings.Contains(value, ":") {
		return domainerrors.Validation(field, value, "must not contain ':'")
	}
	return nil
}

// ValidateRepoSegment additionally rejects '/' since repository owner and
// name join into a single "owner/name" segment.
func ValidateRepoSegment(field, value string) error {
	if err := ValidateSegment(field, value); err != nil {
		return err
	}
	if strings.Contains(value, "/") {
		return domainerrors.Validation(field, value, "must not contain '/'")
	}
	return nil
}

// ParseRepoSlug splits "owner/name" into its parts.
func ParseRepoSlug(slug string) (owner, name string, err error) {
	parts := strings.Split(slug, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", domainerrors.Validation("repository", slug, "expected 'owner/name'")
	}
	return parts[0], parts[1], nil
}
