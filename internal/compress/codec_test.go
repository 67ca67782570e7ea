package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, codec Codec) {
	t.Helper()
	payload := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 200)

	compressed, err := Wrap(bytes.NewReader(payload), codec)
	require.NoError(t, err)

	compressedBytes, err := io.ReadAll(compressed)
	require.NoError(t, err)

	if codec != None {
		assert.Less(t, len(compressedBytes), len(payload), "compressed output should be smaller for repetitive input")
	}

	decompressed, err := Unwrap(bytes.NewReader(compressedBytes), codec)
	require.NoError(t, err)

	got, err := io.ReadAll(decompressed)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestRoundTrip_None(t *testing.T)   { roundTrip(t, None) }
func TestRoundTrip_Gzip(t *testing.T)   { roundTrip(t, Gzip) }
func TestRoundTrip_Snappy(t *testing.T) { roundTrip(t, Snappy) }
func TestRoundTrip_LZ4(t *testing.T)    { roundTrip(t, LZ4) }
func TestRoundTrip_Zstd(t *testing.T)   { roundTrip(t, Zstd) }

func TestParseCodec(t *testing.T) {
	for _, s := range []string{"", "gzip", "snappy", "lz4", "zstd"} {
		c, err := ParseCodec(s)
		require.NoError(t, err)
		assert.Equal(t, Codec(s), c)
	}

	_, err := ParseCodec("bzip2")
	assert.Error(t, err)
}
