// Package xport implements the SAS XPORT Version 5 data model and the
// Importer/Exporter state machines that read and write it: small
// value types with Marshal/Unmarshal-shaped codec functions, validated
// at construction rather than deep inside the codec.
package xport

// Format describes a SAS output or input format attached to a
// variable: its name, display width, and number of decimal digits.
type Format struct {
	Name           string
	Width          int
	NumberOfDigits int
}

// UnspecifiedFormat is the distinguished "no format" value, UNSPECIFIED.
var UnspecifiedFormat = Format{}

// IsUnspecified reports whether f is the zero/unspecified format.
func (f Format) IsUnspecified() bool {
	return f == UnspecifiedFormat
}

// Justification is the output-format justification hint carried on a
// Variable.
type Justification int

const (
	JustificationLeft Justification = iota
	JustificationRight
	JustificationUnknown
)
