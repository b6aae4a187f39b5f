package ingest

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecordTable(t *testing.T) {
	in := `{"time_s": [0, 0.1, 0.2], "tag1_residual_rad": [1.5, null, -0.25]}`

	cols, err := Decode(strings.NewReader(in))
	require.NoError(t, err)

	require.Len(t, cols, 2)
	assert.Equal(t, []float64{0, 0.1, 0.2}, cols["time_s"])

	ch := cols["tag1_residual_rad"]
	require.Len(t, ch, 3)
	assert.Equal(t, 1.5, ch[0])
	assert.True(t, math.IsNaN(ch[1]), "null entries decode as NaN")
	assert.Equal(t, -0.25, ch[2])
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"time_s": "not an array"}`))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/definitely/not/here.json")
	assert.Error(t, err)
}
