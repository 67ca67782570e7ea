package compress

import (
	"io"

	"github.com/golang/snappy"
)

func newSnappyCompressor(src io.Reader) io.Reader {
	r, _ := pipeThrough(src, func(w io.Writer) (io.WriteCloser, error) {
		return snappy.NewBufferedWriter(w), nil
	})
	return r
}

func newSnappyDecompressor(src io.Reader) io.Reader {
	return snappy.NewReader(src)
}
