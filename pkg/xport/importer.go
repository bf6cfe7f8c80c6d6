package xport

import (
	"bytes"
	"io"

	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/ibmfloat"
	"github.com/go-xport/xport-kit/pkg/logging"
	"github.com/go-xport/xport-kit/pkg/option"
	"github.com/go-xport/xport-kit/pkg/recordio"
	"github.com/go-xport/xport-kit/pkg/xporterrors"
)

// Importer is the lazy read-side state machine: it parses the header
// and NAMESTR blocks eagerly at construction, reads the whole
// observation block in one shot (the stream is single-pass and the
// end-of-file padding heuristic needs to see it in full), then decodes
// one row at a time on NextObservation.
type Importer struct {
	description LibraryDescription
	logger      *logging.Logger

	rowSize          int
	rows             [][]byte
	rowIndex         int
	hasSecondDataset bool

	sticky error
	closed bool
}

// ImportTransport parses lib out of r and returns an Importer
// positioned at the first observation.
func ImportTransport(r io.Reader, opts ...option.ImportOption) (*Importer, error) {
	cfg := option.ImportOptions{
		Strictness: option.FdaSubmission,
		YearMapper: option.DefaultYearMapper,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	rr := recordio.NewReader(r)

	lib, err := readLibraryHeaderBlock(rr, cfg.YearMapper)
	if err != nil {
		logger.Error(err, "failed to read library header block")
		return nil, err
	}

	nvars, err := readNamestrHeader(rr)
	if err != nil {
		logger.Error(err, "failed to read NAMESTR header")
		return nil, err
	}
	logger.Debug("NAMESTR header declares variables", "count", nvars)

	variables := make([]Variable, 0, nvars)
	namestrBytes, err := rr.ReadN(nvars * consts.NamestrSize)
	if err != nil {
		logger.Error(err, "failed to read NAMESTR block")
		return nil, err
	}
	for i := 0; i < nvars; i++ {
		raw := namestrBytes[i*consts.NamestrSize : (i+1)*consts.NamestrSize]
		v, err := decodeNamestr(raw)
		if err != nil {
			err = xporterrors.WrapMalformedFile(err, "Variable #%d is malformed", i+1)
			logger.Error(err, "malformed variable descriptor", "index", i+1)
			return nil, err
		}
		variables = append(variables, v)
	}

	if pad := namestrPadding(nvars); pad > 0 {
		if _, err := rr.ReadN(pad); err != nil {
			logger.Error(err, "failed to skip NAMESTR padding")
			return nil, err
		}
	}

	lib.Dataset.Variables = variables
	dataset, err := NewDatasetDescription(lib.Dataset, cfg.Strictness)
	if err != nil {
		err = xporterrors.WrapMalformedFile(err, "Data set is malformed")
		logger.Error(err, "dataset validation failed")
		return nil, err
	}
	lib.Dataset = dataset
	logger.Debug("parsed library header", "dataset", dataset.Name, "variables", len(dataset.Variables))

	if err := readObservationHeader(rr); err != nil {
		logger.Error(err, "failed to read observation header")
		return nil, err
	}

	obsBytes, err := rr.ReadAll()
	if err != nil {
		logger.Error(err, "failed to read observation block")
		return nil, err
	}

	rowSize := dataset.ObservationWidth()
	rows, hasSecondDataset, err := splitObservationBlock(obsBytes, rowSize)
	if err != nil {
		logger.Error(err, "failed to split observation block")
		return nil, err
	}
	logger.Trace("split observation block", "rowSize", rowSize, "rows", len(rows), "hasSecondDataset", hasSecondDataset)

	return &Importer{
		description:      lib,
		logger:           logger,
		rowSize:          rowSize,
		rows:             rows,
		hasSecondDataset: hasSecondDataset,
	}, nil
}

// namestrPadding returns how many zero-padding bytes follow the
// NAMESTR block to bring it up to the next 80-byte boundary.
func namestrPadding(nvars int) int {
	total := nvars * consts.NamestrSize
	rem := total % consts.RecordSize
	if rem == 0 {
		return 0
	}
	return consts.RecordSize - rem
}

// splitObservationBlock applies the end-of-file padding heuristic to
// the raw observation bytes and returns the accepted rows plus
// whether a second dataset's header was detected immediately
// following them.
func splitObservationBlock(obsBytes []byte, rowSize int) (rows [][]byte, hasSecondDataset bool, err error) {
	// The first dataset's observation block is padded to a record
	// boundary, so a following library or member header starts on one;
	// everything from that record on belongs to the next dataset.
	for off := 0; off+consts.RecordSize <= len(obsBytes); off += consts.RecordSize {
		rec := obsBytes[off : off+consts.RecordSize]
		if bytes.Equal(rec, []byte(consts.LibraryHeader)) || bytes.Equal(rec, []byte(consts.MemberHeader)) {
			obsBytes, hasSecondDataset = obsBytes[:off], true
			break
		}
	}

	if rowSize == 0 {
		if len(obsBytes) > 0 && !allSpaces(obsBytes) {
			return nil, false, xporterrors.NewMalformedFile("observation truncated")
		}
		return nil, hasSecondDataset, nil
	}

	n := len(obsBytes)
	fullRows := n / rowSize
	remainder := n % rowSize

	if remainder != 0 {
		tail := obsBytes[fullRows*rowSize:]
		if !allSpaces(tail) {
			return nil, false, xporterrors.NewMalformedFile("observation truncated")
		}
		// Trailing partial-row padding; discard it.
	}

	// A full rowSize-wide last row that is entirely spaces and starts
	// inside the final physical record is ambiguous; SAS treats it as
	// padding rather than a genuine observation. lastRecordStart is
	// derived from n and consts.RecordSize alone, independent of
	// rowSize, so this is a real position check rather than one that
	// cancels out to "true" whenever remainder == 0.
	if fullRows > 0 {
		lastStart := (fullRows - 1) * rowSize
		last := obsBytes[lastStart : lastStart+rowSize]
		lastRecordStart := ((n - 1) / consts.RecordSize) * consts.RecordSize
		if allSpaces(last) && lastStart >= lastRecordStart {
			fullRows--
		}
	}

	rows = make([][]byte, fullRows)
	for i := 0; i < fullRows; i++ {
		rows[i] = obsBytes[i*rowSize : (i+1)*rowSize]
	}

	return rows, hasSecondDataset, nil
}

func allSpaces(b []byte) bool {
	for _, c := range b {
		if c != consts.Filler {
			return false
		}
	}
	return true
}

// Description returns the parsed library/dataset metadata.
func (im *Importer) Description() LibraryDescription {
	return im.description
}

// NextObservation decodes and returns the next row, or io.EOF once the
// observation block is exhausted. Once an error (including io.EOF) is
// returned, every subsequent call returns the same error.
func (im *Importer) NextObservation() (Observation, error) {
	if im.closed {
		return Observation{}, xporterrors.NewState("operation on a closed importer")
	}
	if im.sticky != nil {
		return Observation{}, im.sticky
	}

	if im.rowIndex >= len(im.rows) {
		if im.hasSecondDataset {
			im.sticky = xporterrors.NewMultipleDatasets()
			im.logger.Error(im.sticky, "second dataset detected after observation block")
		} else {
			im.sticky = io.EOF
			im.logger.Debug("observation block exhausted", "rows", im.rowIndex)
		}
		return Observation{}, im.sticky
	}

	row := im.rows[im.rowIndex]
	im.rowIndex++

	values, err := decodeObservationRow(&im.description.Dataset, row)
	if err != nil {
		im.sticky = err
		im.logger.Error(err, "failed to decode observation row", "row", im.rowIndex)
		return Observation{}, err
	}
	im.logger.Trace("decoded observation row", "row", im.rowIndex)

	return NewObservation(&im.description.Dataset, values)
}

func decodeObservationRow(dataset *DatasetDescription, row []byte) ([]any, error) {
	values := make([]any, len(dataset.Variables))
	for i, v := range dataset.Variables {
		field := row[v.Position : v.Position+v.Length]
		if v.IsCharacter() {
			values[i] = getFixedASCII(field)
			continue
		}
		value, mv, isMissing, err := ibmfloat.Decode(field)
		if err != nil {
			return nil, err
		}
		if isMissing {
			values[i] = mv
		} else {
			values[i] = value
		}
	}
	return values, nil
}

// Close releases the importer. It is idempotent.
func (im *Importer) Close() error {
	if !im.closed {
		im.logger.Debug("closing importer", "rowsRead", im.rowIndex)
	}
	im.closed = true
	return nil
}
