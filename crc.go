package bpk

import "github.com/somfy-oss/bpk/internal/bpkcrc"

// CRC32 computes this format's CRC-32 (the standard IEEE polynomial)
// over data, matching the checksum a partition's payload or a whole
// file is verified against. It is exposed for callers that need to
// compute the same checksum over bytes they haven't yet written into
// a container.
func CRC32(data []byte) uint32 {
	return bpkcrc.Checksum(data)
}

// CRC32Update folds data into an in-progress CRC-32 state, for callers
// streaming bytes incrementally rather than holding them all in memory
// at once. Start state at 0.
func CRC32Update(state uint32, data []byte) uint32 {
	return bpkcrc.Update(state, data)
}
