package xport

import (
	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/option"
	"github.com/go-xport/xport-kit/pkg/validation"
	"github.com/go-xport/xport-kit/pkg/xporterrors"
)

// VariableType distinguishes the two XPORT storage kinds.
type VariableType int

const (
	Numeric VariableType = iota + 1
	Character
)

// Variable describes one named, typed column of a dataset.
type Variable struct {
	Name                      string
	Number                    int16
	Type                      VariableType
	Length                    int
	Label                     string
	OutputFormat              Format
	OutputFormatJustification Justification
	InputFormat               Format

	// Position is the byte offset of this variable's value within an
	// observation record. NewDatasetDescription assigns it cumulatively
	// in variable order, replacing any value already set, including the
	// position decoded from a NAMESTR record on import.
	Position int
}

// NewVariable constructs and validates a Variable under the given
// strictness mode. It never panics; malformed input is reported as an
// *xporterrors.ArgumentInvalidError.
func NewVariable(v Variable, mode option.StrictnessMode) (Variable, error) {
	if err := validateVariable(&v, mode); err != nil {
		return Variable{}, err
	}
	return v, nil
}

func validateVariable(v *Variable, mode option.StrictnessMode) error {
	if err := validation.NotBlank("variable name", v.Name); err != nil {
		return err
	}
	if err := validation.MaxLength("variable name", v.Name, consts.MaxNameLength); err != nil {
		return err
	}
	if err := validation.SASIdentifier(v.Name); err != nil {
		return err
	}

	if mode == option.FdaSubmission {
		if err := validation.ASCII("variable label", v.Label); err != nil {
			return err
		}
	}
	if err := validation.MaxLength("variable label", v.Label, consts.MaxLabelLength); err != nil {
		return err
	}

	switch v.Type {
	case Character:
		max := consts.CharacterLengthLenientMax
		if mode == option.FdaSubmission {
			max = consts.CharacterLengthStrictMax
		}
		if v.Length < 1 {
			return xporterrors.NewArgumentInvalid("character variables must have a positive length")
		}
		if v.Length > max {
			return xporterrors.NewArgumentInvalid("character variable length must not exceed %d", max)
		}
	case Numeric:
		if v.Length < consts.NumericLengthMin || v.Length > consts.NumericLengthMax {
			return xporterrors.NewArgumentInvalid("numeric variables must have a length between 2-8")
		}
	default:
		return xporterrors.NewArgumentInvalid("variable type must be NUMERIC or CHARACTER")
	}

	if err := validateFormat("output format", v.OutputFormat); err != nil {
		return err
	}
	if err := validateFormat("input format", v.InputFormat); err != nil {
		return err
	}

	return nil
}

func validateFormat(field string, f Format) error {
	if err := validation.MaxLength(field+" name", f.Name, consts.MaxNameLength); err != nil {
		return err
	}
	if f.Width < 0 {
		return xporterrors.NewArgumentInvalid("%s width must not be negative", field)
	}
	if f.NumberOfDigits < 0 {
		return xporterrors.NewArgumentInvalid("%s digits must not be negative", field)
	}
	return nil
}

// IsCharacter reports whether the variable's type is CHARACTER.
func (v Variable) IsCharacter() bool { return v.Type == Character }

// IsNumeric reports whether the variable's type is NUMERIC.
func (v Variable) IsNumeric() bool { return v.Type == Numeric }
