package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotBlank(t *testing.T) {
	require.NoError(t, NotBlank("name", "X"))
	err := NotBlank("name", "")
	require.Error(t, err)
	require.Equal(t, "name must not be null", err.Error())
}

func TestMaxLength(t *testing.T) {
	require.NoError(t, MaxLength("label", "12345678", 8))
	err := MaxLength("label", "123456789", 8)
	require.Error(t, err)
	require.Equal(t, "label must not be longer than 8 characters", err.Error())
}

func TestASCII(t *testing.T) {
	require.NoError(t, ASCII("label", "hello world"))
	err := ASCII("label", "café")
	require.Error(t, err)
	require.Equal(t, "label must contain only ASCII (7-bit) characters", err.Error())
}

func TestSASIdentifier(t *testing.T) {
	valid := []string{"A", "_X", "VAR1", "ABCDEFGH", "_1234567"}
	for _, name := range valid {
		require.NoError(t, SASIdentifier(name), "expected %q to be valid", name)
	}

	invalid := []string{"", "1VAR", "TOO_LONG_NAME", "VAR-1", "VAR NAME"}
	for _, name := range invalid {
		err := SASIdentifier(name)
		require.Error(t, err, "expected %q to be invalid", name)
		require.Equal(t, "variable name is illegal for SAS", err.Error())
	}
}
