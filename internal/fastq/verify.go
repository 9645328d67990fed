package fastq

import (
	"errors"
	"fmt"
	"io"
)

var ErrMateMismatch = errors.New("mate names differ")

// First returns the first record of path.
func First(path string) (*Read, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	read, err := r.Next()
	if err == io.EOF {
		return nil, fmt.Errorf("%w %s: no records", ErrFormat, path)
	}
	return read, err
}

// Verify checks that both files of a pair are readable FASTQ and that their
// first records are mates.
func Verify(forward, reverse string) error {
	r1, err := First(forward)
	if err != nil {
		return err
	}
	r2, err := First(reverse)
	if err != nil {
		return err
	}
	if r1.Name() != r2.Name() {
		return fmt.Errorf("%w: %q in %s, %q in %s", ErrMateMismatch, r1.Name(), forward, r2.Name(), reverse)
	}
	return nil
}
