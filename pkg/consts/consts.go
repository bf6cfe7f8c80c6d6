// Package consts holds the fixed literal values that make up the SAS
// XPORT Version 5 wire format: record geometry, the header strings
// every conformant file begins with, and the numeric domain bounds
// the validator enforces.
package consts

const (
	// RecordSize is the length in bytes of every physical XPORT record.
	// Header records occupy exactly one; observation and namestr data
	// may straddle record boundaries freely.
	RecordSize = 80

	// NamestrSize is the length in bytes of one NAMESTR variable descriptor.
	NamestrSize = 140

	// Filler is the padding byte used to round records up to RecordSize.
	Filler = ' '

	// MaxVariables is the largest variable count a V5 dataset may
	// declare; the validator rejects descriptions with more.
	MaxVariables = 9999

	// MaxNameLength is the maximum length of a variable or dataset name.
	MaxNameLength = 8

	// MaxLabelLength is the maximum length of a variable or dataset label.
	MaxLabelLength = 40

	// MaxDatasetTypeLength is the maximum length of the dataset type field.
	MaxDatasetTypeLength = 8

	// MaxOSLength / MaxVersionLength bound the source-OS and SAS-version fields.
	MaxOSLength      = 8
	MaxVersionLength = 8

	// CharacterLengthStrictMax is the strict-mode (FDA submission) upper
	// bound on a CHARACTER variable's length.
	CharacterLengthStrictMax = 200

	// CharacterLengthLenientMax is the BASIC-mode upper bound, the
	// largest value of a signed 16-bit integer.
	CharacterLengthLenientMax = 32767

	// NumericLengthMin / NumericLengthMax bound a NUMERIC variable's
	// on-wire length in bytes (truncated IBM hex-float).
	NumericLengthMin = 2
	NumericLengthMax = 8
)

const (
	// LibraryHeader is the first 80-byte record of every XPORT file.
	LibraryHeader = "HEADER RECORD*******LIBRARY HEADER RECORD!!!!!!!000000000000000000000000000000  "

	// MemberHeader introduces the member descriptor block.
	MemberHeader = "HEADER RECORD*******MEMBER  HEADER RECORD!!!!!!!000000000000000001600000000140  "

	// DescriptorHeader introduces the member descriptor record pair.
	DescriptorHeader = "HEADER RECORD*******DSCRPTR HEADER RECORD!!!!!!!000000000000000000000000000000  "

	// NamestrHeaderPrefix precedes the right-padded variable count field.
	NamestrHeaderPrefix = "HEADER RECORD*******NAMESTR HEADER RECORD!!!!!!!000000"

	// ObservationHeader introduces the observation payload block.
	ObservationHeader = "HEADER RECORD*******OBS     HEADER RECORD!!!!!!!000000000000000000000000000000  "

	// SasSymbol is the literal "SAS     " field written twice in the
	// first real header and once in each member descriptor record.
	SasSymbol = "SAS     "

	// SasLibraryName is the fixed library name written by all known
	// XPORT V5 writers.
	SasLibraryName = "SASLIB  "
)

// SasEpochYear is the year component of 1960-01-01T00:00:00, the zero
// instant SAS numeric date/time values are offsets from.
const SasEpochYear = 1960
