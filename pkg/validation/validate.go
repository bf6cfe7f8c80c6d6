// Package validation implements the structural and semantic checks on
// names, labels, formats, and lengths: ASCII-only content, the SAS
// identifier grammar, and the per-field length bounds. Every check
// returns an *xporterrors.ArgumentInvalidError with the exact message
// text the callers of this library depend on.
package validation

import (
	"regexp"

	"github.com/go-xport/xport-kit/pkg/xporterrors"
)

// sasIdentifier matches a SAS name: first character a letter or
// underscore, remaining characters alphanumeric or underscore, 1-8
// characters total.
var sasIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,7}$`)

// NotBlank fails with "<field> must not be null" if value is empty.
func NotBlank(field, value string) error {
	if value == "" {
		return xporterrors.NewArgumentInvalid("%s must not be null", field)
	}
	return nil
}

// MaxLength fails with "<field> must not be longer than N characters"
// if value exceeds max runes.
func MaxLength(field, value string, max int) error {
	if len([]rune(value)) > max {
		return xporterrors.NewArgumentInvalid("%s must not be longer than %d characters", field, max)
	}
	return nil
}

// ASCII fails with "<field> must contain only ASCII (7-bit) characters"
// if value contains any byte with the high bit set.
func ASCII(field, value string) error {
	for _, r := range value {
		if r > 127 {
			return xporterrors.NewArgumentInvalid("%s must contain only ASCII (7-bit) characters", field)
		}
	}
	return nil
}

// IsSASIdentifier reports whether name matches the SAS naming grammar.
func IsSASIdentifier(name string) bool {
	return sasIdentifier.MatchString(name)
}

// SASIdentifier fails with "variable name is illegal for SAS" if name
// does not match the SAS naming grammar.
func SASIdentifier(name string) error {
	if !IsSASIdentifier(name) {
		return xporterrors.NewArgumentInvalid("variable name is illegal for SAS")
	}
	return nil
}
