package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameRecords_Empty(t *testing.T) {
	framed := FrameRecords(nil)
	require.Len(t, framed, 1)

	raw, err := json.Marshal(framed)
	require.NoError(t, err)
	require.JSONEq(t, `[{"numberOfRecords": 0}]`, string(raw))
}

func TestFrameRecords_CountHeaderFirst(t *testing.T) {
	framed := FrameRecords([]Record{
		{"PersonID": 1},
		{"PersonID": 2},
		{"PersonID": 3},
	})
	require.Len(t, framed, 4)
	require.Equal(t, RecordCount{NumberOfRecords: 3}, framed[0])
	require.Equal(t, Record{"PersonID": 1}, framed[1])
}
