package compress

import "io"

// pipeThrough runs copy(src) through a streaming io.WriteCloser
// codec writer obtained from newWriter, and returns an io.Reader that
// yields the codec's output as it's produced. This is how each of the
// streaming compressors below (gzip, lz4, zstd) is turned into a pull
// source: none of klauspost/compress, pierrec/lz4, or golang/snappy's
// streaming APIs expose a compressing io.Reader directly, only a
// compressing io.Writer, so an io.Pipe bridges the two.
func pipeThrough(src io.Reader, newWriter func(io.Writer) (io.WriteCloser, error)) (io.Reader, error) {
	pr, pw := io.Pipe()
	w, err := newWriter(pw)
	if err != nil {
		pw.Close()
		return nil, err
	}

	go func() {
		_, err := io.Copy(w, src)
		if err != nil {
			w.Close()
			pw.CloseWithError(err)
			return
		}
		if err := w.Close(); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.Close()
	}()

	return pr, nil
}
