package bpk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC32PublicHelperMatchesZeroPayload2048(t *testing.T) {
	assert.Equal(t, uint32(0xF1E8BA9E), CRC32(make([]byte, 2048)))
}

func TestCRC32UpdateStreamingMatchesOneShot(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	oneShot := CRC32(data)

	state := uint32(0)
	state = CRC32Update(state, data[:10])
	state = CRC32Update(state, data[10:])
	assert.Equal(t, oneShot, state)
}
