package xport

import (
	"io"
	"math"
	"time"
	"unicode"

	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/ibmfloat"
	"github.com/go-xport/xport-kit/pkg/logging"
	"github.com/go-xport/xport-kit/pkg/option"
	"github.com/go-xport/xport-kit/pkg/recordio"
	"github.com/go-xport/xport-kit/pkg/xporterrors"
)

// Exporter is the write-side state machine. Construction emits the
// full header and NAMESTR block immediately; AppendObservation then
// validates and writes one row at a time, never leaving a partial row
// on validation failure.
type Exporter struct {
	description LibraryDescription
	w           *recordio.Writer
	logger      *logging.Logger
	strictness  option.StrictnessMode
	obsBytes    int64
	closed      bool
}

// ExportTransport validates lib, immediately writes its header and
// NAMESTR block to w, and returns an Exporter ready to accept
// observations.
func ExportTransport(lib LibraryDescription, w io.Writer, opts ...option.ExportOption) (*Exporter, error) {
	cfg := option.ExportOptions{Strictness: option.FdaSubmission}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	validated, err := NewLibraryDescription(lib, cfg.Strictness)
	if err != nil {
		logger.Error(err, "library description validation failed")
		return nil, err
	}

	rw := recordio.NewWriter(w)

	if err := writeLibraryHeaderBlock(rw, validated); err != nil {
		logger.Error(err, "failed to write library header block")
		return nil, err
	}

	if err := writeNamestrHeader(rw, len(validated.Dataset.Variables)); err != nil {
		logger.Error(err, "failed to write NAMESTR header")
		return nil, err
	}
	for i, v := range validated.Dataset.Variables {
		v.Number = variableWireNumber(v, i)
		if _, err := rw.Write(encodeNamestr(v)); err != nil {
			logger.Error(err, "failed to write variable descriptor", "index", i)
			return nil, err
		}
	}
	if err := rw.FlushWithByte(0); err != nil {
		logger.Error(err, "failed to flush NAMESTR block")
		return nil, err
	}

	if err := writeObservationHeader(rw); err != nil {
		logger.Error(err, "failed to write observation header")
		return nil, err
	}
	logger.Debug("wrote library and NAMESTR blocks", "dataset", validated.Dataset.Name, "variables", len(validated.Dataset.Variables))

	return &Exporter{
		description: validated,
		w:           rw,
		logger:      logger,
		strictness:  cfg.Strictness,
	}, nil
}

// variableWireNumber preserves an explicitly assigned (non-zero)
// variable Number as-is; variables left at the zero value are
// numbered in declaration order starting at 1.
func variableWireNumber(v Variable, index int) int16 {
	if v.Number != 0 {
		return v.Number
	}
	return int16(index + 1)
}

// AppendObservation validates values against the dataset's variable
// list and writes them as one observation row. On any validation
// failure no bytes are written and the exporter's state is unchanged.
func (ex *Exporter) AppendObservation(values []any) error {
	if ex.closed {
		return xporterrors.NewState("Writing to a closed exporter")
	}

	vars := ex.description.Dataset.Variables
	if len(values) < len(vars) {
		return xporterrors.NewArgumentInvalid(
			"observation has too few values, expected %d but got %d", len(vars), len(values))
	}
	if len(values) > len(vars) {
		return xporterrors.NewArgumentInvalid(
			"observation has too many values, expected %d but got %d", len(vars), len(values))
	}

	row := make([]byte, ex.description.Dataset.ObservationWidth())
	for i, v := range vars {
		field := row[v.Position : v.Position+v.Length]
		encoded, err := encodeObservationValue(v, values[i], ex.strictness)
		if err != nil {
			ex.logger.Error(err, "failed to encode observation value", "variable", v.Name)
			return err
		}
		copy(field, encoded)
	}

	if _, err := ex.w.Write(row); err != nil {
		ex.logger.Error(err, "failed to write observation row")
		return err
	}
	ex.obsBytes += int64(len(row))
	ex.logger.Trace("wrote observation row", "bytes", ex.obsBytes)
	return nil
}

func encodeObservationValue(v Variable, value any, mode option.StrictnessMode) ([]byte, error) {
	if v.IsCharacter() {
		return encodeCharacterValue(v, value, mode)
	}
	return encodeNumericValue(v, value)
}

func encodeCharacterValue(v Variable, value any, mode option.StrictnessMode) ([]byte, error) {
	if _, ok := value.(ibmfloat.MissingValue); ok {
		return nil, xporterrors.NewArgumentInvalid("CHARACTER variables use the empty string for missing values")
	}
	s, ok := value.(string)
	if !ok {
		return nil, xporterrors.NewArgumentInvalid(
			"variable %q is CHARACTER; got value of type %T", v.Name, value)
	}
	if mode == option.FdaSubmission {
		for _, r := range s {
			if r > unicode.MaxASCII {
				return nil, xporterrors.NewArgumentInvalid("%s must contain only ASCII (7-bit) characters", v.Name)
			}
		}
	}
	if len(s) > v.Length {
		return nil, xporterrors.NewArgumentInvalid(
			"value for %q is longer than its declared length of %d", v.Name, v.Length)
	}
	out := make([]byte, v.Length)
	for i := range out {
		out[i] = consts.Filler
	}
	copy(out, s)
	return out, nil
}

func encodeNumericValue(v Variable, value any) ([]byte, error) {
	switch val := value.(type) {
	case ibmfloat.MissingValue:
		return ibmfloat.EncodeMissing(val, v.Length), nil
	case float64:
		return ibmfloat.Encode(val, v.Length)
	case float32:
		return ibmfloat.Encode(float64(val), v.Length)
	case int:
		return ibmfloat.Encode(float64(val), v.Length)
	case int32:
		return ibmfloat.Encode(float64(val), v.Length)
	case int64:
		return ibmfloat.Encode(float64(val), v.Length)
	case time.Time:
		return ibmfloat.Encode(secondsSinceSasEpoch(val), v.Length)
	case nil:
		return nil, xporterrors.NewArgumentInvalid("variable %q received a null value", v.Name)
	default:
		return nil, xporterrors.NewArgumentInvalid(
			"variable %q is NUMERIC; got unsupported value of type %T", v.Name, value)
	}
}

// secondsSinceSasEpoch converts t to seconds since 1960-01-01T00:00:00,
// the SAS epoch instant.
func secondsSinceSasEpoch(t time.Time) float64 {
	epoch := time.Date(consts.SasEpochYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	return math.Round(t.UTC().Sub(epoch).Seconds())
}

// Close flushes the observation block to an 80-byte boundary with
// space padding. It is idempotent.
func (ex *Exporter) Close() error {
	if ex.closed {
		return nil
	}
	ex.closed = true
	ex.logger.Debug("closing exporter", "obsBytes", ex.obsBytes)
	return ex.w.Flush()
}
