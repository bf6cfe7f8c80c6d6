package xport

import (
	"strings"
	"time"

	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/option"
	"github.com/go-xport/xport-kit/pkg/validation"
	"github.com/go-xport/xport-kit/pkg/xporterrors"
)

// DatasetDescription is the schema of one XPORT member: its name,
// descriptive metadata, and ordered variable list.
type DatasetDescription struct {
	Name                  string
	Label                 string
	Type                  string
	SourceOperatingSystem string
	SourceSasVersion      string
	Variables             []Variable
	CreateTime            time.Time
	ModifiedTime          time.Time
}

// NewDatasetDescription validates d and assigns each variable's
// Position cumulatively in declaration order under the given
// strictness mode.
func NewDatasetDescription(d DatasetDescription, mode option.StrictnessMode) (DatasetDescription, error) {
	if err := validation.NotBlank("dataset name", d.Name); err != nil {
		return DatasetDescription{}, err
	}
	if err := validation.MaxLength("dataset name", d.Name, consts.MaxNameLength); err != nil {
		return DatasetDescription{}, err
	}
	if err := validation.SASIdentifier(d.Name); err != nil {
		return DatasetDescription{}, err
	}
	if err := validation.MaxLength("dataset label", d.Label, consts.MaxLabelLength); err != nil {
		return DatasetDescription{}, err
	}
	if err := validation.MaxLength("dataset type", d.Type, consts.MaxDatasetTypeLength); err != nil {
		return DatasetDescription{}, err
	}
	if err := validation.MaxLength("source operating system", d.SourceOperatingSystem, consts.MaxOSLength); err != nil {
		return DatasetDescription{}, err
	}
	if err := validation.MaxLength("source SAS version", d.SourceSasVersion, consts.MaxVersionLength); err != nil {
		return DatasetDescription{}, err
	}
	if mode == option.FdaSubmission {
		for _, field := range []struct{ name, value string }{
			{"dataset label", d.Label},
			{"dataset type", d.Type},
		} {
			if err := validation.ASCII(field.name, field.value); err != nil {
				return DatasetDescription{}, err
			}
		}
	}

	if len(d.Variables) > consts.MaxVariables {
		return DatasetDescription{}, xporterrors.NewArgumentInvalid(
			"dataset must not have more than %d variables", consts.MaxVariables)
	}

	seen := make(map[string]struct{}, len(d.Variables))
	position := 0
	vars := make([]Variable, len(d.Variables))
	for i, v := range d.Variables {
		validated, err := NewVariable(v, mode)
		if err != nil {
			return DatasetDescription{}, err
		}
		key := strings.ToUpper(validated.Name)
		if _, dup := seen[key]; dup {
			return DatasetDescription{}, xporterrors.NewArgumentInvalid(
				"variable name %q is not unique (case-insensitive)", validated.Name)
		}
		seen[key] = struct{}{}
		validated.Position = position
		position += validated.Length
		vars[i] = validated
	}
	d.Variables = vars

	return d, nil
}

// VariableByName returns the variable with the given name, matched
// case-insensitively, or false if none exists.
func (d DatasetDescription) VariableByName(name string) (Variable, bool) {
	upper := strings.ToUpper(name)
	for _, v := range d.Variables {
		if strings.ToUpper(v.Name) == upper {
			return v, true
		}
	}
	return Variable{}, false
}

// VariableByNumber returns the variable with the given wire number, or
// false if none exists.
func (d DatasetDescription) VariableByNumber(number int16) (Variable, bool) {
	for _, v := range d.Variables {
		if v.Number == number {
			return v, true
		}
	}
	return Variable{}, false
}

// ObservationWidth returns the total byte width of one observation
// record: the sum of every variable's declared length.
func (d DatasetDescription) ObservationWidth() int {
	width := 0
	for _, v := range d.Variables {
		width += v.Length
	}
	return width
}
