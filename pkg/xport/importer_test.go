package xport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSplitObservationBlockKeepsGenuineBlankRowOutsideFinalRecord covers
// a wide variable (rowSize wider than a single 80-byte physical record)
// whose last row is entirely spaces but does not start inside the
// final physical record. This is a real all-blank observation (every
// CHARACTER field happens to be empty), not an EOF padding artifact,
// and splitObservationBlock must keep it.
func TestSplitObservationBlockKeepsGenuineBlankRowOutsideFinalRecord(t *testing.T) {
	const rowSize = 100 // wider than consts.RecordSize (80)
	row0 := bytes.Repeat([]byte("A"), rowSize)
	row1 := bytes.Repeat([]byte(" "), rowSize)
	obsBytes := append(append([]byte{}, row0...), row1...)
	require.Len(t, obsBytes, 200)

	rows, hasSecondDataset, err := splitObservationBlock(obsBytes, rowSize)
	require.NoError(t, err)
	require.False(t, hasSecondDataset)
	require.Len(t, rows, 2)
	require.Equal(t, row0, rows[0])
	require.Equal(t, row1, rows[1])
}

// TestSplitObservationBlockDropsTrailingPaddingRow covers a narrow
// variable whose last full-width row is entirely spaces and starts
// inside the final physical record, the genuine EOF padding case that
// splitObservationBlock must discard.
func TestSplitObservationBlockDropsTrailingPaddingRow(t *testing.T) {
	const rowSize = 20
	row0 := bytes.Repeat([]byte("A"), rowSize)
	row1 := bytes.Repeat([]byte("B"), rowSize)
	padding := bytes.Repeat([]byte(" "), rowSize)
	obsBytes := append(append(append([]byte{}, row0...), row1...), padding...)
	require.Len(t, obsBytes, 60)

	rows, hasSecondDataset, err := splitObservationBlock(obsBytes, rowSize)
	require.NoError(t, err)
	require.False(t, hasSecondDataset)
	require.Len(t, rows, 2)
	require.Equal(t, row0, rows[0])
	require.Equal(t, row1, rows[1])
}
