// Package datecodec implements the 16-byte DDMMMYY:HH:MM:SS timestamp
// format used in XPORT header records, including a pluggable
// two-digit-year disambiguation policy.
package datecodec

import (
	"fmt"
	"time"

	"github.com/go-xport/xport-kit/pkg/xporterrors"
)

// FieldSize is the length in bytes of an encoded date/time field.
const FieldSize = 16

var months = [12]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

func monthIndex(name string) (int, bool) {
	for i, m := range months {
		if m == name {
			return i, true
		}
	}
	return 0, false
}

// DefaultYearMapper is the 1960 SAS epoch cut-off policy: two-digit
// years below 60 map to 2000+yy, years 60 and above map to 1900+yy.
func DefaultYearMapper(yy int) int {
	if yy < 60 {
		return 2000 + yy
	}
	return 1900 + yy
}

// Parse decodes a 16-byte "DDMMMYY:HH:MM:SS" field into a local
// time.Time, using yearMapper to disambiguate the two-digit year. Any
// deviation from the exact grammar fails with a MalformedFileError
// whose message is "malformed date: <input>".
func Parse(raw string, yearMapper func(int) int) (time.Time, error) {
	fail := func() (time.Time, error) {
		return time.Time{}, xporterrors.NewMalformedFile("malformed date: %s", raw)
	}

	if len(raw) != FieldSize {
		return fail()
	}
	if raw[7] != ':' || raw[10] != ':' || raw[13] != ':' {
		return fail()
	}

	day, ok := atoi2(raw[0:2])
	if !ok || day < 1 || day > 31 {
		return fail()
	}
	monName := raw[2:5]
	month, ok := monthIndex(monName)
	if !ok {
		return fail()
	}
	yy, ok := atoi2(raw[5:7])
	if !ok || yy < 0 || yy > 99 {
		return fail()
	}
	hour, ok := atoi2(raw[8:10])
	if !ok || hour > 23 {
		return fail()
	}
	minute, ok := atoi2(raw[11:13])
	if !ok || minute > 59 {
		return fail()
	}
	second, ok := atoi2(raw[14:16])
	if !ok || second > 59 {
		return fail()
	}

	year := yearMapper(yy)
	if day > daysInMonth(year, month) {
		return fail()
	}

	return time.Date(year, time.Month(month+1), day, hour, minute, second, 0, time.Local), nil
}

// Format encodes t into the 16-byte "DDMMMYY:HH:MM:SS" field, using
// only the low two digits of the year.
func Format(t time.Time) string {
	yy := t.Year() % 100
	return fmt.Sprintf("%02d%s%02d:%02d:%02d:%02d",
		t.Day(), months[t.Month()-1], yy, t.Hour(), t.Minute(), t.Second())
}

func atoi2(s string) (int, bool) {
	if len(s) != 2 {
		return 0, false
	}
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(year, monthIdx int) int {
	days := [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if monthIdx == 1 && isLeap(year) {
		return 29
	}
	return days[monthIdx]
}
