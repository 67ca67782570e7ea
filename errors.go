package bpk

import "errors"

// Sentinel errors surfaced at the package boundary. Callers should use
// errors.Is to check for these, since most operations wrap them with
// operation-specific context.
var (
	// ErrFormat indicates a malformed container: bad magic, an
	// incompatible major version, or a file that ends inside its
	// header or inside a selected partition's payload. A truncated
	// partition record header met by Next is reported as io.EOF
	// instead.
	ErrFormat = errors.New("bpk: malformed container")

	// ErrNotFound indicates Find could not locate a partition
	// matching the requested type and hardware id.
	ErrNotFound = errors.New("bpk: partition not found")

	// ErrSource indicates a caller-supplied io.Reader returned an
	// error while being streamed into a partition by Write.
	ErrSource = errors.New("bpk: source read error")

	// ErrNoPartitionSelected indicates an operation that requires a
	// selected partition (Read, ReadTo, ReadToFile,
	// ComputePartitionDataCRC) was called with no prior Find/Next.
	ErrNoPartitionSelected = errors.New("bpk: no partition selected")

	// ErrClosed indicates an operation was attempted on a Container
	// that has already been closed.
	ErrClosed = errors.New("bpk: container is closed")
)
