package bpk

import (
	"fmt"
	"io"
	"os"
)

// Rewind seeks back to just past the header and clears the cursor, so
// the next Next call returns the first partition in the file.
func (c *Container) Rewind() error {
	if c.closed {
		return ErrClosed
	}
	if _, err := c.file.Seek(headerSize, io.SeekStart); err != nil {
		return fmt.Errorf("bpk: rewind: %w", err)
	}
	c.cur = cursor{}
	return nil
}

// PartitionInfo describes a partition record as reported by Next or
// Find: its type tag, payload size, stored data CRC, and hardware id.
type PartitionInfo struct {
	Type uint32
	Size uint64
	CRC  uint32
	HwID uint32
}

// Next advances to the following partition record. If a partition is
// currently selected, its unread payload bytes are skipped first. If
// the resulting offset equals the total file size, Next returns
// io.EOF and clears the cursor (no more partitions). Otherwise the
// record header is read, the cursor is set to the start of that
// partition's payload, and its fields are returned.
func (c *Container) Next() (PartitionInfo, error) {
	if c.closed {
		return PartitionInfo{}, ErrClosed
	}

	if c.cur.active {
		if err := c.skipRemainingPayload(); err != nil {
			return PartitionInfo{}, err
		}
	}

	pos, err := c.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return PartitionInfo{}, fmt.Errorf("bpk: next: %w", err)
	}
	if uint64(pos) >= c.totalSize {
		c.cur = cursor{}
		return PartitionInfo{Type: TypeInvalid}, io.EOF
	}

	buf := make([]byte, partRecordSize)
	if _, err := io.ReadFull(c.file, buf); err != nil {
		c.cur = cursor{}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			// Truncation mid-iteration: a format error, but Next
			// terminates conservatively as END rather than
			// bubbling a format error up to the caller.
			return PartitionInfo{Type: TypeInvalid}, io.EOF
		}
		return PartitionInfo{}, fmt.Errorf("bpk: next: reading record header: %w", err)
	}
	// decodePartHeader cannot itself fail here: io.ReadFull already
	// guaranteed a full partRecordSize-byte buffer.
	ph, _ := decodePartHeader(buf)

	payloadStart, err := c.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return PartitionInfo{}, fmt.Errorf("bpk: next: %w", err)
	}

	c.cur = cursor{active: true, partBase: uint64(payloadStart), partSize: ph.size}
	return PartitionInfo{Type: ph.typ, Size: ph.size, CRC: ph.crc, HwID: ph.hwID}, nil
}

// skipRemainingPayload advances the stream past whatever payload
// bytes of the current partition have not yet been consumed via Read.
func (c *Container) skipRemainingPayload() error {
	remaining := c.cur.partSize - c.cur.within
	if remaining == 0 {
		return nil
	}
	if _, err := c.file.Seek(int64(remaining), io.SeekCurrent); err != nil {
		return fmt.Errorf("bpk: skipping partition payload: %w", err)
	}
	return nil
}

// Find rewinds and iterates until a partition matching both typ and
// hwID is located, leaving the cursor selected at that record's
// payload. If no such partition exists, Find returns ErrNotFound and
// the caller should Rewind before doing anything else.
func (c *Container) Find(typ uint32, hwID uint32) (PartitionInfo, error) {
	if err := c.Rewind(); err != nil {
		return PartitionInfo{}, err
	}
	for {
		info, err := c.Next()
		if err == io.EOF {
			return PartitionInfo{}, ErrNotFound
		}
		if err != nil {
			return PartitionInfo{}, err
		}
		if info.Type == typ && info.HwID == hwID {
			return info, nil
		}
	}
}

// CurrentOffset returns the file offset of the start of the currently
// selected partition's payload. It exists for collaborators (such as
// a mounted filesystem view) that need to build their own
// random-access index against the backing file directly, instead of
// re-walking records through Next/Read for every access.
func (c *Container) CurrentOffset() (uint64, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if !c.cur.active {
		return 0, ErrNoPartitionSelected
	}
	return c.cur.partBase, nil
}

// Read fills buf with up to len(buf) bytes from the currently
// selected partition's payload, clamped to the bytes remaining in
// that partition, and advances the cursor. It returns 0 once the
// partition's payload has been fully consumed. Read never crosses
// into the next partition's record.
func (c *Container) Read(buf []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if !c.cur.active {
		return 0, ErrNoPartitionSelected
	}

	remaining := c.cur.partSize - c.cur.within
	if remaining == 0 {
		return 0, nil
	}
	want := uint64(len(buf))
	if want > remaining {
		want = remaining
	}

	n, err := io.ReadFull(c.file, buf[:want])
	c.cur.within += uint64(n)
	if err != nil {
		return n, fmt.Errorf("bpk: read: %w", wrapShortRead(err))
	}
	return n, nil
}

// ReadTo drains the remainder of the currently selected partition's
// payload into w, in working-buffer-sized chunks. On success it
// clears the cursor, so a subsequent Next moves to the following
// record.
func (c *Container) ReadTo(w io.Writer) (int64, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if !c.cur.active {
		return 0, ErrNoPartitionSelected
	}

	buf := make([]byte, defaultBufSize)
	var total int64
	for {
		n, err := c.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return total, fmt.Errorf("bpk: read_to: writing sink: %w", werr)
			}
			total += int64(n)
		}
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
	}
	c.cur = cursor{}
	return total, nil
}

// ReadToFile drains the remainder of the currently selected
// partition's payload into a newly created file at path.
func (c *Container) ReadToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bpk: read_to_file: create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := c.ReadTo(f); err != nil {
		return err
	}
	return nil
}
