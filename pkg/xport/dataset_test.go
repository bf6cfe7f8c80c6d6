package xport

import (
	"testing"

	"github.com/go-xport/xport-kit/pkg/option"
	"github.com/stretchr/testify/require"
)

func TestNewDatasetDescriptionAssignsCumulativePositions(t *testing.T) {
	d, err := NewDatasetDescription(DatasetDescription{
		Name: "DEMO",
		Variables: []Variable{
			{Name: "ID", Type: Numeric, Length: 8},
			{Name: "NAME", Type: Character, Length: 12},
			{Name: "AGE", Type: Numeric, Length: 3},
		},
	}, option.FdaSubmission)
	require.NoError(t, err)

	require.Equal(t, 0, d.Variables[0].Position)
	require.Equal(t, 8, d.Variables[1].Position)
	require.Equal(t, 20, d.Variables[2].Position)
	require.Equal(t, 23, d.ObservationWidth())
}

func TestNewDatasetDescriptionRejectsDuplicateNamesCaseInsensitive(t *testing.T) {
	_, err := NewDatasetDescription(DatasetDescription{
		Name: "DEMO",
		Variables: []Variable{
			{Name: "id", Type: Numeric, Length: 8},
			{Name: "ID", Type: Numeric, Length: 8},
		},
	}, option.FdaSubmission)
	require.Error(t, err)
}

func TestNewDatasetDescriptionRejectsBlankName(t *testing.T) {
	_, err := NewDatasetDescription(DatasetDescription{Name: ""}, option.FdaSubmission)
	require.Error(t, err)
}

func TestNewDatasetDescriptionRejectsTooManyVariables(t *testing.T) {
	vars := make([]Variable, 10001)
	for i := range vars {
		vars[i] = Variable{Name: "V", Type: Numeric, Length: 8}
	}
	_, err := NewDatasetDescription(DatasetDescription{Name: "DEMO", Variables: vars}, option.FdaSubmission)
	require.Error(t, err)
}

func TestNewDatasetDescriptionPropagatesVariableError(t *testing.T) {
	_, err := NewDatasetDescription(DatasetDescription{
		Name: "DEMO",
		Variables: []Variable{
			{Name: "BAD NAME", Type: Numeric, Length: 8},
		},
	}, option.FdaSubmission)
	require.Error(t, err)
}

func TestDatasetDescriptionVariableByNameIsCaseInsensitive(t *testing.T) {
	d, err := NewDatasetDescription(DatasetDescription{
		Name:      "DEMO",
		Variables: []Variable{{Name: "AGE", Type: Numeric, Length: 8}},
	}, option.FdaSubmission)
	require.NoError(t, err)

	v, ok := d.VariableByName("age")
	require.True(t, ok)
	require.Equal(t, "AGE", v.Name)

	_, ok = d.VariableByName("missing")
	require.False(t, ok)
}

func TestDatasetDescriptionVariableByNumber(t *testing.T) {
	d, err := NewDatasetDescription(DatasetDescription{
		Name:      "DEMO",
		Variables: []Variable{{Name: "AGE", Type: Numeric, Length: 8, Number: 5}},
	}, option.FdaSubmission)
	require.NoError(t, err)

	v, ok := d.VariableByNumber(5)
	require.True(t, ok)
	require.Equal(t, "AGE", v.Name)

	_, ok = d.VariableByNumber(99)
	require.False(t, ok)
}
