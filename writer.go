package bpk

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/somfy-oss/bpk/internal/bpkcrc"
)

// Write appends a new partition of the given type and hardware id,
// streaming src to the end of the file. src's length need not be
// known in advance: Write reserves a placeholder record, streams
// payload bytes while accumulating size and CRC, then seeks back to
// patch the placeholder's size and crc fields before restoring the
// stream position to end of file.
//
// On any failure after the placeholder has been written, the file is
// left with a valid but possibly size-inconsistent placeholder; there
// is no rollback, and the caller is expected to discard the file.
func (c *Container) Write(typ uint32, hwID uint32, src io.Reader) error {
	if c.closed {
		return ErrClosed
	}

	recordStart := c.totalSize
	if _, err := c.file.Seek(int64(recordStart), io.SeekStart); err != nil {
		return fmt.Errorf("bpk: write: seek to end: %w", err)
	}

	placeholder := partHeader{typ: typ, hwID: hwID}
	if _, err := c.file.Write(placeholder.encode()); err != nil {
		return fmt.Errorf("bpk: write: reserve record header: %w", err)
	}
	c.totalSize += partRecordSize

	var size uint64
	crc := uint32(crcSeed)
	buf := make([]byte, defaultBufSize)
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, werr := c.file.Write(buf[:n]); werr != nil {
				return fmt.Errorf("bpk: write: streaming payload: %w", werr)
			}
			crc = bpkcrc.Update(crc, buf[:n])
			size += uint64(n)
			c.totalSize += uint64(n)
		}
		if rerr != nil {
			if rerr == io.EOF {
				break
			}
			return fmt.Errorf("bpk: write: reading source: %w: %w", ErrSource, rerr)
		}
	}

	if err := c.backpatch(recordStart, size, crc); err != nil {
		return err
	}

	c.cur = cursor{}
	return nil
}

// backpatch rewrites the size and crc fields of the partition record
// that begins at recordStart, then restores the stream position to
// end of file.
func (c *Container) backpatch(recordStart uint64, size uint64, crc uint32) error {
	if _, err := c.file.Seek(int64(recordStart+sizeFieldOffsetInPart), io.SeekStart); err != nil {
		return fmt.Errorf("bpk: write: seek to backpatch fields: %w", err)
	}

	patch := make([]byte, 12) // size (8) + crc (4)
	binary.BigEndian.PutUint64(patch[0:8], size)
	binary.BigEndian.PutUint32(patch[8:12], crc)
	if _, err := c.file.Write(patch); err != nil {
		return fmt.Errorf("bpk: write: backpatch size/crc: %w", err)
	}

	if _, err := c.file.Seek(int64(c.totalSize), io.SeekStart); err != nil {
		return fmt.Errorf("bpk: write: restore position to eof: %w", err)
	}
	return nil
}

// sizeFieldOffsetInPart is the byte offset of the size field within a
// partition record (the type field occupies offset 0-4).
const sizeFieldOffsetInPart = 4

// WriteFile is a convenience wrapper around Write that streams the
// contents of an existing file on disk as the new partition's
// payload.
func (c *Container) WriteFile(typ uint32, hwID uint32, path string) error {
	f, err := openSourceFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.Write(typ, hwID, f)
}
