package option

import (
	"github.com/go-xport/xport-kit/pkg/logging"
)

// StrictnessMode toggles how tightly the validator enforces the FDA
// submission bounds.
type StrictnessMode int

const (
	// FdaSubmission is the default: the strict FDA submission bounds.
	FdaSubmission StrictnessMode = iota
	// Basic relaxes CHARACTER length to the wire's 16-bit domain and
	// permits non-ASCII labels.
	Basic
)

// YearMapper disambiguates the two-digit year stored in XPORT date
// fields into a four-digit year.
type YearMapper func(twoDigitYear int) int

// DefaultYearMapper applies the 1960 SAS epoch cut-off: years below 60
// map to 2000+yy, years 60 and above map to 1900+yy.
func DefaultYearMapper(yy int) int {
	if yy < 60 {
		return 2000 + yy
	}
	return 1900 + yy
}

// ImportOptions configures Importer construction.
type ImportOptions struct {
	Strictness StrictnessMode
	YearMapper YearMapper
	Logger     *logging.Logger
}

type ImportOption func(*ImportOptions)

// WithImportLogger attaches a logger to the importer.
func WithImportLogger(logger *logging.Logger) ImportOption {
	return func(o *ImportOptions) {
		o.Logger = logger
	}
}

// WithImportStrictness selects the validator's strictness mode.
func WithImportStrictness(mode StrictnessMode) ImportOption {
	return func(o *ImportOptions) {
		o.Strictness = mode
	}
}

// WithYearMapper overrides the two-digit-year disambiguation policy.
func WithYearMapper(mapper YearMapper) ImportOption {
	return func(o *ImportOptions) {
		o.YearMapper = mapper
	}
}
