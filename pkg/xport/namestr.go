package xport

import (
	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/xporterrors"
)

// encodeNamestr renders v as a 140-byte NAMESTR record per the §4.5
// field table. v is assumed already validated.
func encodeNamestr(v Variable) []byte {
	buf := make([]byte, consts.NamestrSize)

	putInt16(buf[0:2], int16(v.Type))
	// bytes 2:4, name hash, are zero on write.
	putUint16(buf[4:6], uint16(v.Length))
	putInt16(buf[6:8], v.Number)
	putFixedASCII(buf[8:16], v.Name)
	putFixedASCII(buf[16:56], v.Label)
	putFixedASCII(buf[56:64], v.OutputFormat.Name)
	putInt16(buf[64:66], int16(v.OutputFormat.Width))
	putInt16(buf[66:68], int16(v.OutputFormat.NumberOfDigits))
	putInt16(buf[68:70], justificationCode(v.OutputFormatJustification))
	// bytes 70:72, reserved, are zero on write.
	putFixedASCII(buf[72:80], v.InputFormat.Name)
	putInt16(buf[80:82], int16(v.InputFormat.Width))
	putInt16(buf[82:84], int16(v.InputFormat.NumberOfDigits))
	putInt32(buf[84:88], int32(v.Position))
	// bytes 88:140, ignored, are zero on write.

	return buf
}

// decodeNamestr parses one 140-byte NAMESTR record into a Variable.
// It does not re-run domain validation (that is the caller's job via
// NewVariable); it only rejects wire-level garbage.
func decodeNamestr(buf []byte) (Variable, error) {
	if len(buf) != consts.NamestrSize {
		return Variable{}, xporterrors.NewMalformedFile("malformed NAMESTR header record")
	}

	typeCode := getInt16(buf[0:2])
	var vt VariableType
	switch typeCode {
	case int16(Numeric):
		vt = Numeric
	case int16(Character):
		vt = Character
	default:
		return Variable{}, xporterrors.NewMalformedFile("Unexpected type code in NAMESTR field: %d", typeCode)
	}

	position := getInt32(buf[84:88])
	if position < 0 {
		return Variable{}, xporterrors.NewMalformedFile("Variable #%d is malformed", getInt16(buf[6:8]))
	}

	return Variable{
		Type:   vt,
		Length: int(getUint16(buf[4:6])),
		Number: getInt16(buf[6:8]),
		Name:   getFixedASCII(buf[8:16]),
		Label:  getFixedASCII(buf[16:56]),
		OutputFormat: Format{
			Name:           getFixedASCII(buf[56:64]),
			Width:          int(getInt16(buf[64:66])),
			NumberOfDigits: int(getInt16(buf[66:68])),
		},
		OutputFormatJustification: justificationFromCode(getInt16(buf[68:70])),
		InputFormat: Format{
			Name:           getFixedASCII(buf[72:80]),
			Width:          int(getInt16(buf[80:82])),
			NumberOfDigits: int(getInt16(buf[82:84])),
		},
		Position: int(position),
	}, nil
}

func justificationCode(j Justification) int16 {
	switch j {
	case JustificationLeft:
		return 0
	case JustificationRight:
		return 1
	default:
		return 2
	}
}

func justificationFromCode(code int16) Justification {
	switch code {
	case 0:
		return JustificationLeft
	case 1:
		return JustificationRight
	default:
		return JustificationUnknown
	}
}
