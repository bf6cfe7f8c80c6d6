package xport

import "github.com/go-xport/xport-kit/pkg/xporterrors"

// Observation is one decoded row. Values are positional, in the same
// order as the owning DatasetDescription.Variables; each entry is a
// float64, a string, or a MissingValue.
type Observation struct {
	dataset *DatasetDescription
	values  []any
}

// NewObservation wraps values under dataset's variable layout. len(values)
// must equal len(dataset.Variables).
func NewObservation(dataset *DatasetDescription, values []any) (Observation, error) {
	if len(values) != len(dataset.Variables) {
		return Observation{}, xporterrors.NewArgumentInvalid(
			"observation has %d values, dataset has %d variables", len(values), len(dataset.Variables))
	}
	return Observation{dataset: dataset, values: values}, nil
}

// Values returns the observation's positional values. The returned
// slice is a snapshot; mutating it does not affect the Observation.
func (o Observation) Values() []any {
	out := make([]any, len(o.values))
	copy(out, o.values)
	return out
}

// Get returns the value of the variable called name, matched
// case-insensitively.
func (o Observation) Get(name string) (any, error) {
	v, ok := o.dataset.VariableByName(name)
	if !ok {
		return nil, xporterrors.NewArgumentInvalid("no variable named %q", name)
	}
	for i, candidate := range o.dataset.Variables {
		if candidate.Name == v.Name {
			return o.values[i], nil
		}
	}
	return nil, xporterrors.NewArgumentInvalid("no variable named %q", name)
}

// At returns the value at the given positional index.
func (o Observation) At(index int) (any, error) {
	if index < 0 || index >= len(o.values) {
		return nil, xporterrors.NewArgumentInvalid("observation index %d out of range", index)
	}
	return o.values[index], nil
}
