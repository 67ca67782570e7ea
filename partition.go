package bpk

import (
	"encoding/binary"
	"fmt"
)

// partHeader is the in-memory form of a 28-byte partition record
// header (the payload itself is streamed separately):
//
//	type:  u32  four-char tag or caller-supplied identifier
//	size:  u64  payload length in bytes
//	crc:   u32  CRC-32 over payload only, seed 0
//	hw_id: u32  caller-supplied hardware identifier
//	spare: u64  reserved, always zero
//
// (4 + 8 + 4 + 4 + 8 = 28 bytes, matching the file header's own
// trailing u64 spare field.)
type partHeader struct {
	typ   uint32
	size  uint64
	crc   uint32
	hwID  uint32
	spare uint64
}

func (p partHeader) encode() []byte {
	buf := make([]byte, partRecordSize)
	binary.BigEndian.PutUint32(buf[0:4], p.typ)
	binary.BigEndian.PutUint64(buf[4:12], p.size)
	binary.BigEndian.PutUint32(buf[12:16], p.crc)
	binary.BigEndian.PutUint32(buf[16:20], p.hwID)
	binary.BigEndian.PutUint64(buf[20:28], p.spare)
	return buf
}

func decodePartHeader(buf []byte) (partHeader, error) {
	if len(buf) < partRecordSize {
		return partHeader{}, fmt.Errorf("bpk: short partition record read (%d bytes): %w", len(buf), ErrFormat)
	}
	return partHeader{
		typ:   binary.BigEndian.Uint32(buf[0:4]),
		size:  binary.BigEndian.Uint64(buf[4:12]),
		crc:   binary.BigEndian.Uint32(buf[12:16]),
		hwID:  binary.BigEndian.Uint32(buf[16:20]),
		spare: binary.BigEndian.Uint64(buf[20:28]),
	}, nil
}
