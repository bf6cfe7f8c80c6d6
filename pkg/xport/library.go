package xport

import (
	"io"
	"time"

	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/option"
	"github.com/go-xport/xport-kit/pkg/validation"
)

// LibraryDescription is the top-level XPORT container: the single
// dataset this codec supports, plus library-level source metadata.
type LibraryDescription struct {
	Dataset               DatasetDescription
	SourceOperatingSystem string
	SourceSasVersion      string
	CreateTime            time.Time
	ModifiedTime          time.Time
}

// NewLibraryDescription validates l under the given strictness mode,
// including its Dataset.
func NewLibraryDescription(l LibraryDescription, mode option.StrictnessMode) (LibraryDescription, error) {
	if err := validation.MaxLength("source operating system", l.SourceOperatingSystem, consts.MaxOSLength); err != nil {
		return LibraryDescription{}, err
	}
	if err := validation.MaxLength("source SAS version", l.SourceSasVersion, consts.MaxVersionLength); err != nil {
		return LibraryDescription{}, err
	}

	ds, err := NewDatasetDescription(l.Dataset, mode)
	if err != nil {
		return LibraryDescription{}, err
	}
	l.Dataset = ds

	return l, nil
}

// ExportTransport validates l and writes it, with no observations yet
// appended, to w, returning an Exporter ready to accept rows.
func (l LibraryDescription) ExportTransport(w io.Writer, opts ...option.ExportOption) (*Exporter, error) {
	return ExportTransport(l, w, opts...)
}
