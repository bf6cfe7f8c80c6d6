package xport

import (
	"encoding/binary"
	"strings"

	"github.com/go-xport/xport-kit/pkg/consts"
)

// putFixedASCII writes s, space-padded or truncated, into dst. The
// caller is responsible for having already validated s fits and is
// ASCII; this is a wire-layout helper, not a validator.
func putFixedASCII(dst []byte, s string) {
	for i := range dst {
		dst[i] = consts.Filler
	}
	copy(dst, s)
}

// getFixedASCII reads a space-trimmed string out of a fixed-width
// field, replacing any non-ASCII byte with U+FFFD, the read-side
// tolerance for NAMESTR variable names and labels that may have been
// written by a non-ASCII-clean encoder.
func getFixedASCII(src []byte) string {
	var b strings.Builder
	b.Grow(len(src))
	for _, c := range src {
		if c > 0x7F {
			b.WriteRune('�')
			continue
		}
		b.WriteByte(c)
	}
	return strings.TrimRight(b.String(), " ")
}

func putUint16(dst []byte, v uint16) { binary.BigEndian.PutUint16(dst, v) }
func getUint16(src []byte) uint16    { return binary.BigEndian.Uint16(src) }

func putInt16(dst []byte, v int16) { binary.BigEndian.PutUint16(dst, uint16(v)) }
func getInt16(src []byte) int16    { return int16(binary.BigEndian.Uint16(src)) }

func putInt32(dst []byte, v int32) { binary.BigEndian.PutUint32(dst, uint32(v)) }
func getInt32(src []byte) int32    { return int32(binary.BigEndian.Uint32(src)) }
