package bpk

import (
	"encoding/binary"
	"fmt"
)

// fileHeader is the in-memory form of the 28-byte file header:
//
//	magic:   u32
//	version: u32
//	size:    u64  total file size in bytes
//	crc:     u32  CRC-32 over the whole file, with this field zeroed
//	spare:   u64  reserved, always zero
type fileHeader struct {
	magic   uint32
	version uint32
	size    uint64
	crc     uint32
	spare   uint64
}

// encode writes h to a freshly allocated headerSize-byte buffer,
// big-endian, with no padding.
func (h fileHeader) encode() []byte {
	buf := make([]byte, headerSize)
	binary.BigEndian.PutUint32(buf[0:4], h.magic)
	binary.BigEndian.PutUint32(buf[4:8], h.version)
	binary.BigEndian.PutUint64(buf[8:16], h.size)
	binary.BigEndian.PutUint32(buf[16:20], h.crc)
	binary.BigEndian.PutUint64(buf[20:28], h.spare)
	return buf
}

// decodeFileHeader parses a headerSize-byte buffer into a fileHeader
// and validates magic and major version.
func decodeFileHeader(buf []byte) (fileHeader, error) {
	if len(buf) < headerSize {
		return fileHeader{}, fmt.Errorf("bpk: short header read (%d bytes): %w", len(buf), ErrFormat)
	}
	h := fileHeader{
		magic:   binary.BigEndian.Uint32(buf[0:4]),
		version: binary.BigEndian.Uint32(buf[4:8]),
		size:    binary.BigEndian.Uint64(buf[8:16]),
		crc:     binary.BigEndian.Uint32(buf[16:20]),
		spare:   binary.BigEndian.Uint64(buf[20:28]),
	}
	if h.magic != Magic {
		return fileHeader{}, fmt.Errorf("bpk: bad magic %#08x: %w", h.magic, ErrFormat)
	}
	if major(h.version) > major(Version) {
		return fileHeader{}, fmt.Errorf("bpk: incompatible version %#08x: %w", h.version, ErrFormat)
	}
	return h, nil
}
