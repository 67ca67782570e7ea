package compress

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

func newZstdCompressor(src io.Reader) (io.Reader, error) {
	return pipeThrough(src, func(w io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(w)
	})
}

func newZstdDecompressor(src io.Reader) (io.Reader, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	return &zstdReadCloser{dec}, nil
}

// zstdReadCloser adapts *zstd.Decoder (whose Close has no error
// return) to a plain io.Reader for callers that don't need to
// release the decoder's background goroutines explicitly; callers
// that do can type-assert to interface{ Close() }, which the embedded
// decoder's Close satisfies.
type zstdReadCloser struct {
	*zstd.Decoder
}
