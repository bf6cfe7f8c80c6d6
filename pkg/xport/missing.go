package xport

import "github.com/go-xport/xport-kit/pkg/ibmfloat"

// MissingValue is the closed SAS missing-value enumeration (§3):
// STANDARD, UNDERSCORE, and the 26 lettered special missing values.
// It is an alias of ibmfloat.MissingValue since the two are the same
// wire concept; this package is where API consumers are expected to
// spell it.
type MissingValue = ibmfloat.MissingValue

// MissingStandard is the ordinary "." missing value; it is the only
// missing value accepted for CHARACTER variables on export (where it
// is represented as the empty string rather than this sentinel).
const MissingStandard = ibmfloat.Standard

// MissingUnderscore is the "._" special missing value.
const MissingUnderscore = ibmfloat.Underscore

// MissingLettered returns the special missing value written ".<letter>".
func MissingLettered(letter byte) MissingValue {
	return ibmfloat.Lettered(letter)
}

// AllMissingValues lists every recognized MissingValue.
func AllMissingValues() []MissingValue {
	return ibmfloat.All28()
}
