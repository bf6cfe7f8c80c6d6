package recordio

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterPadsToRecordBoundary(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	_, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	require.Equal(t, 80, buf.Len())
	require.Equal(t, "hello", string(buf.Bytes()[:5]))
	for _, b := range buf.Bytes()[5:] {
		require.Equal(t, byte(' '), b)
	}
}

func TestWriterFlushNoopOnBoundary(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	_, err := w.Write(make([]byte, 80))
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	require.Equal(t, 80, buf.Len())
}

func TestWriterTracksAcrossMultipleWrites(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	_, err := w.Write(make([]byte, 50))
	require.NoError(t, err)
	_, err = w.Write(make([]byte, 50))
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	require.Equal(t, 160, buf.Len())
}

func TestReaderReadRecordExact(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 80)
	r := NewReader(bytes.NewReader(data))
	rec, err := r.ReadRecord()
	require.NoError(t, err)
	require.Equal(t, data, rec)

	_, err = r.ReadRecord()
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderReadNStraddlesRecords(t *testing.T) {
	data := bytes.Repeat([]byte("y"), 200)
	r := NewReader(bytes.NewReader(data))
	chunk, err := r.ReadN(150)
	require.NoError(t, err)
	require.Len(t, chunk, 150)
	rest, err := r.ReadN(50)
	require.NoError(t, err)
	require.Len(t, rest, 50)
}

func TestReaderShortReadIsMalformed(t *testing.T) {
	data := bytes.Repeat([]byte("z"), 10)
	r := NewReader(bytes.NewReader(data))
	_, err := r.ReadN(80)
	require.Error(t, err)
	require.Contains(t, err.Error(), "observation truncated")
}
