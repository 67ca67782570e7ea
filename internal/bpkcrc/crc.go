// Package bpkcrc implements the CRC-32 variant the BPK wire format uses:
// the standard IEEE polynomial (the same one hash/crc32.ChecksumIEEE
// computes), seeded from the previous call's state so a checksum can be
// accumulated incrementally across chunks.
package bpkcrc

import "hash/crc32"

// Update folds data into the running CRC state, returning the new
// state. The zero value of state is the correct seed for a fresh CRC;
// pass the previous call's return value to continue a streaming
// checksum.
func Update(state uint32, data []byte) uint32 {
	return crc32.Update(state, crc32.IEEETable, data)
}

// Checksum is a convenience wrapper computing Update(0, data) in one
// call, for callers hashing a single contiguous buffer.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
