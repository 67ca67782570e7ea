package bpk

import (
	"fmt"
	"os"
)

// openSourceFile opens path for reading, wrapping any failure with
// ErrSource context since it feeds Write's streaming loop.
func openSourceFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bpk: open source %s: %w: %w", path, ErrSource, err)
	}
	return f, nil
}
