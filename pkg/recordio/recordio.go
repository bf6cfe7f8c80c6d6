// Package recordio implements the 80-byte physical record framing
// that underlies every part of an XPORT file: on read it gives a
// byte-accurate cursor over the stream; on write it accumulates bytes
// and pads the current record out to an 80-byte boundary on flush.
package recordio

import (
	"io"

	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/xporterrors"
)

// Reader reads an XPORT byte stream a record at a time while also
// allowing reads of arbitrary lengths that straddle record boundaries.
type Reader struct {
	r         io.Reader
	buffered  []byte // bytes read from r but not yet consumed
	totalRead int64
}

// NewReader wraps r for record-oriented reading.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadRecord reads exactly one 80-byte physical record. A short read
// that produces zero bytes is reported as io.EOF (a well-formed end of
// stream on a record boundary); any other short read is a malformed
// file, since header records must never be truncated.
func (r *Reader) ReadRecord() ([]byte, error) {
	return r.ReadN(consts.RecordSize)
}

// ReadN reads exactly n bytes, straddling record boundaries freely.
// Zero bytes read before n is satisfied is reported as io.EOF; any
// partial read beyond that is a MalformedFileError.
func (r *Reader) ReadN(n int) ([]byte, error) {
	buf := make([]byte, n)
	got := 0

	if len(r.buffered) > 0 {
		got = copy(buf, r.buffered)
		r.buffered = r.buffered[got:]
	}

	for got < n {
		m, err := r.r.Read(buf[got:])
		got += m
		r.totalRead += int64(m)
		if err != nil {
			if got == 0 && err == io.EOF {
				return nil, io.EOF
			}
			if got < n {
				return nil, xporterrors.WrapMalformedFile(err, "observation truncated")
			}
			break
		}
	}

	if got < n {
		return nil, xporterrors.NewMalformedFile("observation truncated")
	}
	return buf, nil
}

// ReadAll reads every remaining byte from the stream until io.EOF. It
// is used by the importer to load the observation block in one shot,
// since the end-of-file padding heuristic needs to see the whole
// block before any row can be decoded.
func (r *Reader) ReadAll() ([]byte, error) {
	var out []byte
	if len(r.buffered) > 0 {
		out = append(out, r.buffered...)
		r.buffered = nil
	}
	buf := make([]byte, 4096)
	for {
		n, err := r.r.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
			r.totalRead += int64(n)
		}
		if err != nil {
			if err == io.EOF {
				return out, nil
			}
			return out, err
		}
	}
}

// Writer accumulates bytes written to it and pads the current record
// to an 80-byte boundary on Flush.
type Writer struct {
	w        io.Writer
	pending  int // bytes written since the last 80-byte boundary
	totalLen int64
}

// NewWriter wraps w for record-oriented writing.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes p verbatim, tracking position within the current
// record so Flush knows how much padding to emit.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pending = (w.pending + n) % consts.RecordSize
	w.totalLen += int64(n)
	return n, err
}

// Flush pads the current in-progress record up to the next 80-byte
// boundary with ASCII space bytes. It is a no-op if the writer is
// already on a boundary.
func (w *Writer) Flush() error {
	return w.FlushWithByte(consts.Filler)
}

// FlushWithByte pads the current in-progress record up to the next
// 80-byte boundary with the given fill byte. The NAMESTR block pads
// with NUL rather than space, unlike every other section of the file.
func (w *Writer) FlushWithByte(fill byte) error {
	if w.pending == 0 {
		return nil
	}
	pad := consts.RecordSize - w.pending
	filler := make([]byte, pad)
	for i := range filler {
		filler[i] = fill
	}
	_, err := w.Write(filler)
	return err
}

// Len returns the total number of bytes written so far.
func (w *Writer) Len() int64 {
	return w.totalLen
}
