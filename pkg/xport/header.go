package xport

import (
	"bytes"
	"strconv"
	"time"

	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/datecodec"
	"github.com/go-xport/xport-kit/pkg/option"
	"github.com/go-xport/xport-kit/pkg/recordio"
	"github.com/go-xport/xport-kit/pkg/xporterrors"
)

// unsupportedFormatMarkers identifies library-header records that
// belong to a recognized but unhandled file format variant, so they
// can be reported as UnsupportedFormat rather than generic corruption.
var unsupportedFormatMarkers = []struct {
	marker []byte
	name   string
}{
	{[]byte("LIBV8"), "SAS Transport Version 8/9 (XPORT V8)"},
	{[]byte("LIBV9"), "SAS Transport Version 8/9 (XPORT V8)"},
	{[]byte("CPORT"), "SAS CPORT"},
}

// unsupportedFormatName returns the name of the recognized format libHeader
// belongs to, or "" if it doesn't match any known variant.
func unsupportedFormatName(libHeader []byte) string {
	for _, m := range unsupportedFormatMarkers {
		if bytes.Contains(libHeader, m.marker) {
			return m.name
		}
	}
	return ""
}

// The member descriptor occupies two 80-byte records whose exact
// field split is otherwise unresolved; this codec puts the
// name/type/version/OS fields in the first record and the two dates
// plus the label in the second, since only the pairing of this
// writer's encode and decode needs to agree (see DESIGN.md).
// writeLibraryHeaderBlock emits every record preceding the NAMESTR
// header: library header, first/second real header, member header,
// descriptor header, and the two member descriptor records.
func writeLibraryHeaderBlock(w *recordio.Writer, lib LibraryDescription) error {
	records := [][]byte{
		[]byte(consts.LibraryHeader),
		encodeFirstRealHeader(lib),
		encodeSecondRealHeader(lib),
		[]byte(consts.MemberHeader),
		[]byte(consts.DescriptorHeader),
		encodeDescriptorRecord1(lib.Dataset),
		encodeDescriptorRecord2(lib.Dataset),
	}
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func encodeFirstRealHeader(lib LibraryDescription) []byte {
	buf := make([]byte, consts.RecordSize)
	copy(buf[0:8], consts.SasSymbol)
	copy(buf[8:16], consts.SasSymbol)
	copy(buf[16:24], consts.SasLibraryName)
	putFixedASCII(buf[24:32], lib.SourceSasVersion)
	putFixedASCII(buf[32:40], lib.SourceOperatingSystem)
	for i := 40; i < 64; i++ {
		buf[i] = consts.Filler
	}
	copy(buf[64:80], datecodec.Format(lib.CreateTime))
	return buf
}

func encodeSecondRealHeader(lib LibraryDescription) []byte {
	buf := make([]byte, consts.RecordSize)
	copy(buf[0:16], datecodec.Format(lib.ModifiedTime))
	for i := 16; i < consts.RecordSize; i++ {
		buf[i] = consts.Filler
	}
	return buf
}

func encodeDescriptorRecord1(d DatasetDescription) []byte {
	buf := make([]byte, consts.RecordSize)
	copy(buf[0:8], consts.SasSymbol)
	copy(buf[8:16], consts.SasSymbol)
	putFixedASCII(buf[16:24], d.Name)
	putFixedASCII(buf[24:32], d.Type)
	for i := 32; i < 40; i++ {
		buf[i] = consts.Filler
	}
	putFixedASCII(buf[40:48], d.SourceSasVersion)
	putFixedASCII(buf[48:56], d.SourceOperatingSystem)
	for i := 56; i < consts.RecordSize; i++ {
		buf[i] = consts.Filler
	}
	return buf
}

func encodeDescriptorRecord2(d DatasetDescription) []byte {
	buf := make([]byte, consts.RecordSize)
	copy(buf[0:16], datecodec.Format(d.CreateTime))
	copy(buf[16:32], datecodec.Format(d.ModifiedTime))
	putFixedASCII(buf[32:72], d.Label)
	for i := 72; i < consts.RecordSize; i++ {
		buf[i] = consts.Filler
	}
	return buf
}

// readLibraryHeaderBlock parses every record preceding the NAMESTR
// header and returns a partially populated LibraryDescription (its
// Variables field is always empty; the caller fills it in from the
// NAMESTR block).
func readLibraryHeaderBlock(r *recordio.Reader, yearMapper option.YearMapper) (LibraryDescription, error) {
	libHeader, err := r.ReadRecord()
	if err != nil {
		return LibraryDescription{}, err
	}
	if string(libHeader) != consts.LibraryHeader {
		if name := unsupportedFormatName(libHeader); name != "" {
			return LibraryDescription{}, xporterrors.NewUnsupportedFormat("file is %s, which this codec does not support", name)
		}
		return LibraryDescription{}, xporterrors.NewMalformedFile("First record indicates this is not SAS V5 XPORT format")
	}

	firstReal, err := r.ReadRecord()
	if err != nil {
		return LibraryDescription{}, err
	}
	lib, err := decodeFirstRealHeader(firstReal, yearMapper)
	if err != nil {
		return LibraryDescription{}, err
	}

	secondReal, err := r.ReadRecord()
	if err != nil {
		return LibraryDescription{}, err
	}
	modTime, err := parseHeaderDate(secondReal[0:16], yearMapper)
	if err != nil {
		return LibraryDescription{}, err
	}
	lib.ModifiedTime = modTime
	if !isAllFiller(secondReal[16:consts.RecordSize]) {
		return LibraryDescription{}, xporterrors.NewMalformedFile("corrupt blanks region in REAL_HEADER")
	}

	memberHeader, err := r.ReadRecord()
	if err != nil {
		return LibraryDescription{}, err
	}
	if string(memberHeader) != consts.MemberHeader {
		return LibraryDescription{}, xporterrors.NewMalformedFile("missing member header record")
	}

	descriptorHeader, err := r.ReadRecord()
	if err != nil {
		return LibraryDescription{}, err
	}
	if string(descriptorHeader) != consts.DescriptorHeader {
		return LibraryDescription{}, xporterrors.NewMalformedFile("missing descriptor header record")
	}

	desc1, err := r.ReadRecord()
	if err != nil {
		return LibraryDescription{}, err
	}
	dataset, err := decodeDescriptorRecord1(desc1)
	if err != nil {
		return LibraryDescription{}, err
	}

	desc2, err := r.ReadRecord()
	if err != nil {
		return LibraryDescription{}, err
	}
	createTime, modifyTime, label, err := decodeDescriptorRecord2(desc2, yearMapper)
	if err != nil {
		return LibraryDescription{}, err
	}
	dataset.CreateTime = createTime
	dataset.ModifiedTime = modifyTime
	dataset.Label = label

	lib.Dataset = dataset
	return lib, nil
}

func decodeFirstRealHeader(buf []byte, yearMapper option.YearMapper) (LibraryDescription, error) {
	version := getFixedASCII(buf[24:32])
	os := decodeOSField(buf[32:40])
	createTime, err := parseHeaderDate(buf[64:80], yearMapper)
	if err != nil {
		return LibraryDescription{}, err
	}
	return LibraryDescription{
		SourceSasVersion:      version,
		SourceOperatingSystem: os,
		CreateTime:            createTime,
	}, nil
}

// decodeOSField trims trailing NUL and space bytes but preserves a
// leading space left by the known loc2xpt off-by-one bug, matching
// the read-side tolerance real XPORT readers need for older files.
func decodeOSField(buf []byte) string {
	trimmed := make([]byte, len(buf))
	copy(trimmed, buf)
	end := len(trimmed)
	for end > 0 && (trimmed[end-1] == 0x00 || trimmed[end-1] == ' ') {
		end--
	}
	return string(trimmed[:end])
}

func decodeDescriptorRecord1(buf []byte) (DatasetDescription, error) {
	return DatasetDescription{
		Name:                  getFixedASCII(buf[16:24]),
		Type:                  getFixedASCII(buf[24:32]),
		SourceSasVersion:      getFixedASCII(buf[40:48]),
		SourceOperatingSystem: getFixedASCII(buf[48:56]),
	}, nil
}

func decodeDescriptorRecord2(buf []byte, yearMapper option.YearMapper) (createTime, modifyTime time.Time, label string, err error) {
	createTime, err = parseHeaderDate(buf[0:16], yearMapper)
	if err != nil {
		return
	}
	modifyTime, err = parseHeaderDate(buf[16:32], yearMapper)
	if err != nil {
		return
	}
	label = getFixedASCII(buf[32:72])
	return
}

func parseHeaderDate(raw []byte, yearMapper option.YearMapper) (time.Time, error) {
	t, err := datecodec.Parse(string(raw), yearMapper)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func isAllFiller(buf []byte) bool {
	for _, b := range buf {
		if b != consts.Filler {
			return false
		}
	}
	return true
}

// writeNamestrHeader emits the NAMESTR header record with nvars
// encoded into its 10-character decimal count field.
func writeNamestrHeader(w *recordio.Writer, nvars int) error {
	buf := make([]byte, consts.RecordSize)
	copy(buf, consts.NamestrHeaderPrefix)
	countField := formatCount(nvars, 10)
	copy(buf[len(consts.NamestrHeaderPrefix):len(consts.NamestrHeaderPrefix)+10], countField)
	for i := len(consts.NamestrHeaderPrefix) + 10; i < consts.RecordSize; i++ {
		buf[i] = consts.Filler
	}
	_, err := w.Write(buf)
	return err
}

func formatCount(n int, width int) string {
	digits := []byte(strconv.Itoa(n))
	if len(digits) > width {
		digits = digits[len(digits)-width:]
	}
	out := make([]byte, width)
	for i := range out {
		out[i] = '0'
	}
	copy(out[width-len(digits):], digits)
	return string(out)
}

// readNamestrHeader parses the NAMESTR header record and returns the
// declared variable count.
func readNamestrHeader(r *recordio.Reader) (int, error) {
	buf, err := r.ReadRecord()
	if err != nil {
		return 0, err
	}
	prefix := consts.NamestrHeaderPrefix
	if string(buf[:len(prefix)]) != prefix {
		return 0, xporterrors.NewMalformedFile("malformed NAMESTR header record")
	}
	countField := buf[len(prefix) : len(prefix)+10]
	n, err := parseCount(countField)
	if err != nil {
		return 0, xporterrors.WrapMalformedFile(err, "malformed NAMESTR header record")
	}
	return n, nil
}

func parseCount(field []byte) (int, error) {
	n := 0
	seenDigit := false
	for _, b := range field {
		switch {
		case b == ' ':
			if seenDigit {
				return 0, xporterrors.NewArgumentInvalid("space after digits in count field")
			}
			continue
		case b >= '0' && b <= '9':
			seenDigit = true
			n = n*10 + int(b-'0')
		default:
			return 0, xporterrors.NewArgumentInvalid("non-numeric byte %q in count field", b)
		}
	}
	if n < 0 {
		return 0, xporterrors.NewArgumentInvalid("negative count")
	}
	return n, nil
}

// writeObservationHeader emits the fixed OBS header record.
func writeObservationHeader(w *recordio.Writer) error {
	_, err := w.Write([]byte(consts.ObservationHeader))
	return err
}

// readObservationHeader parses and validates the OBS header record.
func readObservationHeader(r *recordio.Reader) error {
	buf, err := r.ReadRecord()
	if err != nil {
		return err
	}
	if string(buf) != consts.ObservationHeader {
		return xporterrors.NewMalformedFile("missing observation header record")
	}
	return nil
}
