// Package bpk implements the BPK container format: a sequence of
// independently typed, hardware-tagged binary partitions packaged
// behind a file-level CRC-32, used to distribute embedded firmware
// (bootloader, kernel, root filesystem, version strings) as a single
// addressable bundle.
//
// A BPK file is a 28-byte header followed by zero or more contiguous
// partition records. There is no central index: partitions are
// discovered by walking records end to end using their size fields.
package bpk

// Magic is the 4-byte file signature ("SOFY"), stored big-endian as a
// single uint32 in the header.
const Magic uint32 = 0x534F4659

// Version is this library's format version (major.minor, major in the
// high 16 bits). A file may be opened if its major version is less
// than or equal to this one.
const Version uint32 = 0x00010000

// Well-known partition type tags. Callers may also supply their own.
const (
	TypeFirmwareVersion    uint32 = 0x46575600 // "FWV\x00"
	TypeBootloader         uint32 = 0x50424C00 // "PBL\x00"
	TypeBootloaderVersion  uint32 = 0x50424C56 // "PBLV"
	TypeKernel             uint32 = 0x504B4552 // "PKER"
	TypeRootFilesystem     uint32 = 0x50524653 // "PRFS"
	TypeDescription        uint32 = 0x44455A43 // "DEZC"
)

// TypeInvalid is the sentinel Next returns once iteration has reached
// the end of the file.
const TypeInvalid uint32 = 0xDEADBEEF

// crcSeed is the CRC-32 state iteration begins from.
const crcSeed uint32 = 0

// crcMismatch is the sentinel ComputeFileCRC returns for its computed
// value when the scan could not be completed cleanly.
const crcMismatch uint32 = 0xFFFFFFFF

// headerSize is the on-disk size, in bytes, of the file header.
const headerSize = 28

// partRecordSize is the on-disk size, in bytes, of a partition record
// header (i.e. excluding its payload).
const partRecordSize = 28

// defaultBufSize is the size of the working buffer used for streaming
// writes, reads, and CRC scans. 2 KiB is enough to amortize syscalls
// without holding large buffers for many concurrent partitions.
const defaultBufSize = 2048

func major(version uint32) uint32 {
	return version & 0xFFFF0000
}

// TypeName returns the short mnemonic for a well-known type tag, or
// "unknown" for a caller-defined one.
func TypeName(t uint32) string {
	switch t {
	case TypeFirmwareVersion:
		return "version"
	case TypeBootloader:
		return "pboot"
	case TypeBootloaderVersion:
		return "pboot_version"
	case TypeKernel:
		return "pker"
	case TypeRootFilesystem:
		return "prootfs"
	case TypeDescription:
		return "description"
	default:
		return "unknown"
	}
}
