// Package fastq reads plain and gzip-compressed FASTQ files and samples them
// ahead of trimming.
package fastq

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

var ErrFormat = errors.New("invalid fastq file")

var gzipMagic = []byte{0x1f, 0x8b}

type Read struct {
	Header   string
	Sequence string
	Quality  string
}

// Name is the read name without the leading '@', any comment after the
// first space, and a trailing /1 or /2 mate suffix.
func (r *Read) Name() string {
	name := strings.TrimPrefix(r.Header, "@")
	if i := strings.IndexAny(name, " \t"); i >= 0 {
		name = name[:i]
	}
	if strings.HasSuffix(name, "/1") || strings.HasSuffix(name, "/2") {
		name = name[:len(name)-2]
	}
	return name
}

type file struct {
	f  *os.File
	gr *pgzip.Reader
}

func (f *file) Close() error {
	if f.gr != nil {
		f.gr.Close()
	}
	return f.f.Close()
}

// Reader yields the records of a plain or gzip-compressed FASTQ file.
type Reader struct {
	scanner *bufio.Scanner
	closer  io.Closer
	path    string
	line    int
}

// Open opens path, decompressing it when it starts with the gzip magic.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(f)
	src := &file{f: f}
	var in io.Reader = br

	magic, err := br.Peek(len(gzipMagic))
	if err == nil && bytes.Equal(magic, gzipMagic) {
		gr, err := pgzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		src.gr = gr
		in = gr
	}

	return newReader(in, src, path), nil
}

func newReader(in io.Reader, closer io.Closer, path string) *Reader {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	return &Reader{scanner: scanner, closer: closer, path: path}
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func (r *Reader) next() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	r.line++
	return r.scanner.Text(), true
}

// Next returns the next record, or io.EOF after the last one.
func (r *Reader) Next() (*Read, error) {
	header, ok := r.next()
	if !ok {
		if err := r.scanner.Err(); err != nil {
			return nil, fmt.Errorf("%s: error reading file: %w", r.path, err)
		}
		return nil, io.EOF
	}
	if !strings.HasPrefix(header, "@") {
		return nil, r.formatErr("expected '@' at the beginning of header line, got: %s", header)
	}

	sequence, ok := r.next()
	if !ok {
		return nil, r.truncated()
	}

	plus, ok := r.next()
	if !ok {
		return nil, r.truncated()
	}
	if !strings.HasPrefix(plus, "+") {
		return nil, r.formatErr("expected '+' line, got: %s", plus)
	}

	quality, ok := r.next()
	if !ok {
		return nil, r.truncated()
	}
	if len(sequence) != len(quality) {
		return nil, r.formatErr("sequence and quality strings must have the same length, got: %d and %d", len(sequence), len(quality))
	}

	return &Read{Header: header, Sequence: sequence, Quality: quality}, nil
}

func (r *Reader) truncated() error {
	if err := r.scanner.Err(); err != nil {
		return fmt.Errorf("%s: error reading file: %w", r.path, err)
	}
	return r.formatErr("truncated record")
}

func (r *Reader) formatErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w %s (line %d): %s", ErrFormat, r.path, r.line, fmt.Sprintf(format, args...))
}
