package bpk

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// cursor tracks the read/write position within the currently selected
// partition. It is derived state kept in lockstep with the backing
// file's seek position; it is never an independent index.
type cursor struct {
	active   bool   // a partition is currently selected
	partBase uint64 // file offset of the start of the selected payload
	partSize uint64 // payload length of the selected partition
	within   uint64 // bytes of the payload already consumed via Read
}

// Container is a single-purpose handle on a BPK file: either a reader
// or one appender, never both concurrently and never shared across
// goroutines. It owns the backing *os.File exclusively and is the
// sole authority over the read/write cursor's position.
//
// Every Create/Open must be paired with exactly one Close.
type Container struct {
	file         *os.File
	totalSize    uint64
	cur          cursor
	writeOnClose bool
	closed       bool
}

// Create opens path for read+write, truncating or creating it, and
// writes a fresh 28-byte header (size == 28, crc == 0). The returned
// Container has the write-on-close flag set, so Close will compute
// and persist the final size/crc.
func Create(path string) (*Container, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("bpk: create %s: %w", path, err)
	}

	hdr := fileHeader{magic: Magic, version: Version, size: headerSize}
	if _, err := f.Write(hdr.encode()); err != nil {
		f.Close()
		return nil, fmt.Errorf("bpk: write header: %w", err)
	}

	return &Container{
		file:         f,
		totalSize:    headerSize,
		writeOnClose: true,
	}, nil
}

// Open opens an existing (or, if writable, possibly new) BPK file.
//
// When writable is false the file is opened read-only, its header is
// parsed and validated, and Close will never rewrite anything.
//
// When writable is true the file is opened read+write, created if
// absent; a file shorter than a header is treated as empty and given
// a fresh one. The stream position is left just past the header and
// Close will rewrite size/crc.
func Open(path string, writable bool) (*Container, error) {
	if !writable {
		return openReadOnly(path)
	}
	return openWritable(path)
}

func openReadOnly(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bpk: open %s: %w", path, err)
	}

	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("bpk: read header of %s: %w", path, wrapShortRead(err))
	}
	hdr, err := decodeFileHeader(buf)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("bpk: %s: %w", path, err)
	}

	return &Container{
		file:      f,
		totalSize: hdr.size,
	}, nil
}

func openWritable(path string) (*Container, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("bpk: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("bpk: stat %s: %w", path, err)
	}

	if info.Size() < headerSize {
		if err := initFreshHeader(f); err != nil {
			f.Close()
			return nil, err
		}
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("bpk: seek %s: %w", path, err)
	}
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("bpk: read header of %s: %w", path, wrapShortRead(err))
	}
	hdr, err := decodeFileHeader(buf)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("bpk: %s: %w", path, err)
	}

	if _, err := f.Seek(headerSize, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("bpk: seek %s: %w", path, err)
	}

	return &Container{
		file:         f,
		totalSize:    hdr.size,
		writeOnClose: true,
	}, nil
}

func initFreshHeader(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("bpk: truncate: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("bpk: seek: %w", err)
	}
	hdr := fileHeader{magic: Magic, version: Version, size: headerSize}
	if _, err := f.Write(hdr.encode()); err != nil {
		return fmt.Errorf("bpk: write header: %w", err)
	}
	return nil
}

// Close, if the write-on-close flag is set, rewrites the header's
// size field with the current total size and recomputes and rewrites
// the header's crc, then flushes and releases the backing file. A nil
// Container closes without effect.
func (c *Container) Close() error {
	if c == nil || c.closed {
		return nil
	}
	c.closed = true
	defer c.file.Close()

	if c.writeOnClose {
		if err := c.writeBackChecksums(); err != nil {
			return err
		}
	}
	return c.file.Sync()
}

func (c *Container) writeBackChecksums() error {
	if _, err := c.file.Seek(sizeFieldOffset, io.SeekStart); err != nil {
		return fmt.Errorf("bpk: seek to size field: %w", err)
	}
	sizeBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(sizeBuf, c.totalSize)
	if _, err := c.file.Write(sizeBuf); err != nil {
		return fmt.Errorf("bpk: write size field: %w", err)
	}

	crc, err := c.computeFileCRC()
	if err != nil {
		return fmt.Errorf("bpk: compute final crc: %w", err)
	}

	if _, err := c.file.Seek(crcFieldOffset, io.SeekStart); err != nil {
		return fmt.Errorf("bpk: seek to crc field: %w", err)
	}
	crcBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(crcBuf, crc)
	if _, err := c.file.Write(crcBuf); err != nil {
		return fmt.Errorf("bpk: write crc field: %w", err)
	}
	return nil
}

const (
	sizeFieldOffset = 8  // offset of fileHeader.size within the header
	crcFieldOffset  = 16 // offset of fileHeader.crc within the header
)

func wrapShortRead(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("truncated: %w", ErrFormat)
	}
	return err
}
