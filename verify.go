package bpk

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/somfy-oss/bpk/internal/bpkcrc"
)

// ComputeFileCRC scans the whole file and returns the CRC it computes
// alongside the CRC stored in the header. The scope is fixed: the
// header (with its own crc field treated as zero), every partition
// record header, and every partition's payload bytes. Stream position
// is saved and restored.
//
// If the scan cannot be completed cleanly (a short read, or the
// record sizes don't consume exactly header.size-28 bytes), the
// computed value is the sentinel 0xFFFFFFFF.
func (c *Container) ComputeFileCRC() (computed uint32, stored uint32, err error) {
	if c.closed {
		return 0, 0, ErrClosed
	}

	savedPos, err := c.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, 0, fmt.Errorf("bpk: compute_file_crc: %w", err)
	}
	defer c.file.Seek(savedPos, io.SeekStart)

	computed, stored, err = c.computeFileCRCAt()
	return computed, stored, err
}

// computeFileCRC is the internal helper Close uses to compute the
// final checksum before writing it back. A scan that cannot complete
// cleanly is not treated as an error: the 0xFFFFFFFF sentinel is
// returned as the checksum, so a file left ill-framed by a failed
// Write is closed with a stored crc that CheckCRC never accepts.
func (c *Container) computeFileCRC() (uint32, error) {
	savedPos, err := c.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	defer c.file.Seek(savedPos, io.SeekStart)

	computed, _, err := c.computeFileCRCAt()
	if err != nil {
		return 0, err
	}
	return computed, nil
}

func (c *Container) computeFileCRCAt() (computed uint32, stored uint32, err error) {
	if _, err := c.file.Seek(0, io.SeekStart); err != nil {
		return 0, 0, fmt.Errorf("bpk: seek: %w", err)
	}

	hdrBuf := make([]byte, headerSize)
	if _, err := io.ReadFull(c.file, hdrBuf); err != nil {
		return crcMismatch, 0, nil
	}
	hdr, err := decodeFileHeader(hdrBuf)
	if err != nil {
		return crcMismatch, 0, nil
	}
	stored = hdr.crc

	zeroed := make([]byte, headerSize)
	copy(zeroed, hdrBuf)
	binary.BigEndian.PutUint32(zeroed[crcFieldOffset:crcFieldOffset+4], 0)
	crc := bpkcrc.Update(crcSeed, zeroed)

	if hdr.size < headerSize {
		return crcMismatch, stored, nil
	}
	remaining := hdr.size - headerSize

	buf := make([]byte, defaultBufSize)
	recBuf := make([]byte, partRecordSize)
	for remaining > 0 {
		if remaining < partRecordSize {
			return crcMismatch, stored, nil
		}
		if _, err := io.ReadFull(c.file, recBuf); err != nil {
			return crcMismatch, stored, nil
		}
		part, err := decodePartHeader(recBuf)
		if err != nil {
			return crcMismatch, stored, nil
		}
		crc = bpkcrc.Update(crc, recBuf)
		remaining -= partRecordSize

		if remaining < part.size {
			return crcMismatch, stored, nil
		}
		payloadLeft := part.size
		for payloadLeft > 0 {
			chunk := uint64(len(buf))
			if chunk > payloadLeft {
				chunk = payloadLeft
			}
			if _, err := io.ReadFull(c.file, buf[:chunk]); err != nil {
				return crcMismatch, stored, nil
			}
			crc = bpkcrc.Update(crc, buf[:chunk])
			payloadLeft -= chunk
		}
		remaining -= part.size
	}

	return crc, stored, nil
}

// CheckCRC reports whether the whole-file CRC matches the value
// stored in the header. It never mutates the file.
func (c *Container) CheckCRC() (bool, error) {
	computed, stored, err := c.ComputeFileCRC()
	if err != nil {
		return false, err
	}
	return computed != crcMismatch && computed == stored, nil
}

// ComputePartitionDataCRC computes the CRC over the entire payload of
// the currently selected partition, from its start through its
// declared size, without advancing the logical cursor. Stream
// position and cursor are both restored on exit.
func (c *Container) ComputePartitionDataCRC() (uint32, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if !c.cur.active {
		return 0, ErrNoPartitionSelected
	}

	savedPos, err := c.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("bpk: compute_partition_data_crc: %w", err)
	}
	savedCur := c.cur
	defer func() {
		c.file.Seek(savedPos, io.SeekStart)
		c.cur = savedCur
	}()

	if _, err := c.file.Seek(int64(c.cur.partBase), io.SeekStart); err != nil {
		return 0, fmt.Errorf("bpk: compute_partition_data_crc: %w", err)
	}

	buf := make([]byte, defaultBufSize)
	crc := uint32(crcSeed)
	remaining := c.cur.partSize
	for remaining > 0 {
		chunk := uint64(len(buf))
		if chunk > remaining {
			chunk = remaining
		}
		if _, err := io.ReadFull(c.file, buf[:chunk]); err != nil {
			return 0, fmt.Errorf("bpk: compute_partition_data_crc: %w", wrapShortRead(err))
		}
		crc = bpkcrc.Update(crc, buf[:chunk])
		remaining -= chunk
	}

	return crc, nil
}
