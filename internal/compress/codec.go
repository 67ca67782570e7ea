// Package compress provides pluggable compression adapters that sit
// above the bpk core as collaborators: each one turns a plain
// io.Reader into a compressing or decompressing io.Reader, so it can
// be handed straight to (*bpk.Container).Write as the payload source,
// or wrapped around (*bpk.Container).Read/ReadTo as an extraction
// sink. The core format has no notion of compression: a partition's
// bytes are opaque to it, and a codec choice is never stored on the
// wire — callers remember which partitions were compressed and with
// what.
package compress

import (
	"fmt"
	"io"
)

// Codec names a supported compression algorithm for the CLI's
// partition specs.
type Codec string

// Supported codecs. None means the payload is stored as-is.
const (
	None   Codec = ""
	Gzip   Codec = "gzip"
	Snappy Codec = "snappy"
	LZ4    Codec = "lz4"
	Zstd   Codec = "zstd"
)

// ParseCodec validates a codec name as given on the command line.
func ParseCodec(s string) (Codec, error) {
	switch Codec(s) {
	case None, Gzip, Snappy, LZ4, Zstd:
		return Codec(s), nil
	default:
		return "", fmt.Errorf("compress: unknown codec %q (want one of gzip, snappy, lz4, zstd)", s)
	}
}

// Wrap returns an io.Reader that compresses r's bytes with codec as
// they are read, suitable as the source argument to
// (*bpk.Container).Write. For None it returns r unchanged.
func Wrap(r io.Reader, codec Codec) (io.Reader, error) {
	switch codec {
	case None:
		return r, nil
	case Gzip:
		return newGzipCompressor(r), nil
	case Snappy:
		return newSnappyCompressor(r), nil
	case LZ4:
		return newLZ4Compressor(r), nil
	case Zstd:
		return newZstdCompressor(r)
	default:
		return nil, fmt.Errorf("compress: unknown codec %q", codec)
	}
}

// Unwrap returns an io.Reader that decompresses r's bytes (a
// partition's raw payload stream) as they are read, suitable for
// copying out to an extraction sink. For None it returns r unchanged.
func Unwrap(r io.Reader, codec Codec) (io.Reader, error) {
	switch codec {
	case None:
		return r, nil
	case Gzip:
		return newGzipDecompressor(r)
	case Snappy:
		return newSnappyDecompressor(r), nil
	case LZ4:
		return newLZ4Decompressor(r), nil
	case Zstd:
		return newZstdDecompressor(r)
	default:
		return nil, fmt.Errorf("compress: unknown codec %q", codec)
	}
}
