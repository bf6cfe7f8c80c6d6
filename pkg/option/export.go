package option

import (
	"github.com/go-xport/xport-kit/pkg/logging"
)

// ExportOptions configures Exporter construction.
type ExportOptions struct {
	Strictness StrictnessMode
	Logger     *logging.Logger
}

type ExportOption func(*ExportOptions)

// WithExportLogger attaches a logger to the exporter.
func WithExportLogger(logger *logging.Logger) ExportOption {
	return func(o *ExportOptions) {
		o.Logger = logger
	}
}

// WithExportStrictness selects the validator's strictness mode used to
// check the LibraryDescription before any bytes are written.
func WithExportStrictness(mode StrictnessMode) ExportOption {
	return func(o *ExportOptions) {
		o.Strictness = mode
	}
}
