package datecodec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseFormatRoundTrip(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"01JAN60:00:00:00", time.Date(1960, time.January, 1, 0, 0, 0, 0, time.Local)},
		{"31DEC99:23:59:59", time.Date(1999, time.December, 31, 23, 59, 59, 0, time.Local)},
		{"29FEB00:12:00:00", time.Date(2000, time.February, 29, 12, 0, 0, 0, time.Local)},
		{"15JUL23:08:30:15", time.Date(2023, time.July, 15, 8, 30, 15, 0, time.Local)},
	}
	for _, c := range cases {
		got, err := Parse(c.raw, DefaultYearMapper)
		require.NoError(t, err, "parsing %q", c.raw)
		require.True(t, c.want.Equal(got), "parsed %q as %v, want %v", c.raw, got, c.want)
		require.Equal(t, c.raw, Format(got))
	}
}

func TestParseMalformedInputs(t *testing.T) {
	bad := []string{
		"bad date",
		"2015-01-01T00:00:00",
		"30FEB00:00:00:00",
		"29FEB01:00:00:00",
		"32JAN60:00:00:00",
		"00JAN60:00:00:00",
		"01XXX60:00:00:00",
		"01JAN60:24:00:00",
		"01JAN60:00:60:00",
		"01JAN60:00:00:60",
		"01JAN60 00:00:00",
		"01JAN6000:00:00",
		"",
		"01JAN60:00:00:0",
	}
	for _, raw := range bad {
		_, err := Parse(raw, DefaultYearMapper)
		require.Errorf(t, err, "expected %q to be malformed", raw)
		require.Equal(t, "malformed date: "+raw, err.Error())
	}
}

func TestLeapYearPolicy(t *testing.T) {
	// Default mapper: yy=0 -> 2000 (leap), yy=1..3 -> 2001..2003 (not leap).
	_, err := Parse("29FEB00:00:00:00", DefaultYearMapper)
	require.NoError(t, err)

	for _, yy := range []string{"01", "02", "03"} {
		_, err := Parse("29FEB"+yy+":00:00:00", DefaultYearMapper)
		require.Error(t, err)
	}

	plus1900 := func(yy int) int { return 1900 + yy }
	for _, yy := range []string{"00", "01", "02", "03"} {
		_, err := Parse("29FEB"+yy+":00:00:00", plus1900)
		require.Error(t, err, "1900+%s is never a leap year", yy)
	}

	plus2000 := func(yy int) int { return 2000 + yy }
	_, err = Parse("29FEB00:00:00:00", plus2000)
	require.NoError(t, err)
}
