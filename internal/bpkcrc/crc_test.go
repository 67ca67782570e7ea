package bpkcrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum_EmptyIsZero(t *testing.T) {
	assert.Equal(t, uint32(0), Checksum(nil))
	assert.Equal(t, uint32(0), Checksum([]byte{}))
}

func TestUpdate_StreamingMatchesOneShot(t *testing.T) {
	data := make([]byte, 2048)
	for i := range data {
		data[i] = byte(i)
	}

	oneShot := Checksum(data)

	streamed := uint32(0)
	for i := 0; i < len(data); i += 17 {
		end := i + 17
		if end > len(data) {
			end = len(data)
		}
		streamed = Update(streamed, data[i:end])
	}

	require.Equal(t, oneShot, streamed)
}

func TestChecksum_ZeroPayload2048(t *testing.T) {
	data := make([]byte, 2048)
	assert.Equal(t, uint32(0xF1E8BA9E), Checksum(data))
}

func TestChecksum_MatchesStandardIEEECheckValue(t *testing.T) {
	// "123456789" is the standard CRC-32/IEEE check string; 0xCBF43926
	// is its well-known checksum under that polynomial.
	assert.Equal(t, uint32(0xCBF43926), Checksum([]byte("123456789")))
}
