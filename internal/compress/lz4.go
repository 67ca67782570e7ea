package compress

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

func newLZ4Compressor(src io.Reader) io.Reader {
	r, _ := pipeThrough(src, func(w io.Writer) (io.WriteCloser, error) {
		return lz4.NewWriter(w), nil
	})
	return r
}

func newLZ4Decompressor(src io.Reader) io.Reader {
	return lz4.NewReader(src)
}
