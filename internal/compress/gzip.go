package compress

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

func newGzipCompressor(src io.Reader) io.Reader {
	r, _ := pipeThrough(src, func(w io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriter(w), nil
	})
	return r
}

func newGzipDecompressor(src io.Reader) (io.Reader, error) {
	return gzip.NewReader(src)
}
