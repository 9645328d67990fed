// Package manifest turns a sample sheet into resolved read pairs with their
// adapter configuration.
//
// A manifest is a comma-separated file whose first line is a header. Each
// following line starts with a sample id that is matched against the read
// files sitting next to the manifest, followed by zero to four adapter
// columns:
//
//	id
//	id,adapter
//	id,adapter_i5,adapter_i7
//	id,template_i5,adapter_i7,barcode_i5
//	id,template_i5,template_i7,barcode_i5,barcode_i7
//
// Templates carry a '*' where the complement of the barcode is inserted.
// Any malformed or unresolvable row aborts the whole manifest.
package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fastpRunner/internal/adapter"
	"fastpRunner/internal/report"
)

// Sample is one resolved manifest row.
type Sample struct {
	Row      int
	ID       string
	Forward  string
	Reverse  string
	GroupDir string

	AdapterForward string
	AdapterReverse string
	AutoDetect     bool
}

// Mode reports how fastp should treat the adapters of s.
func (s *Sample) Mode() adapter.Mode {
	switch {
	case s.AutoDetect:
		return adapter.Auto
	case s.AdapterReverse != "":
		return adapter.Dual
	default:
		return adapter.Single
	}
}

type Options struct {
	Anchor   Anchor
	Reporter report.Reporter
}

func (o Options) reporter() report.Reporter {
	if o.Reporter == nil {
		return report.Nop{}
	}
	return o.Reporter
}

// Parse reads the manifest at path. Read files are looked up in the
// manifest's directory.
func Parse(path string, opts Options) ([]*Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &RowError{Kind: KindFilesystem, Err: err}
	}
	defer f.Close()

	return ParseReader(f, filepath.Dir(path), opts)
}

// ParseReader reads a manifest from r and resolves read files in baseDir.
func ParseReader(r io.Reader, baseDir string, opts Options) ([]*Sample, error) {
	var (
		samples []*Sample
		seen    = make(map[string]int)
		groups  = make(map[string]*Sample)
		row     = 0
		header  = true
		scanner = bufio.NewScanner(r)
	)

	for scanner.Scan() {
		line := scanner.Text()
		if header {
			header = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		row++

		fields := splitFields(line)
		if first, dup := seen[fields[0]]; dup {
			return nil, &RowError{
				Row:  row,
				ID:   fields[0],
				Kind: KindResolution,
				Err:  fmt.Errorf("%w: first seen at row %d", ErrDuplicateID, first),
			}
		}
		seen[fields[0]] = row

		s, err := resolveRow(row, fields, baseDir, opts.Anchor)
		if err != nil {
			return nil, err
		}
		// fastp reports are written per group dir
		if prev, clash := groups[s.GroupDir]; clash {
			return nil, &RowError{
				Row:  row,
				ID:   s.ID,
				Kind: KindResolution,
				Err:  fmt.Errorf("%w: %q also used by sample %q at row %d", ErrSharedGroupDir, s.GroupDir, prev.ID, prev.Row),
			}
		}
		groups[s.GroupDir] = s
		samples = append(samples, s)
	}

	if err := scanner.Err(); err != nil {
		return nil, &RowError{Kind: KindFilesystem, Err: fmt.Errorf("error reading manifest: %w", err)}
	}

	opts.reporter().Info("Total samples: %d", row)
	return samples, nil
}

func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

func resolveRow(row int, fields []string, baseDir string, anchor Anchor) (*Sample, error) {
	id := fields[0]
	fail := func(kind Kind, err error) error {
		return &RowError{Row: row, ID: id, Kind: kind, Err: err}
	}

	paths := Glob(baseDir, id, anchor)
	if len(paths) == 0 {
		return nil, fail(KindResolution, fmt.Errorf("%w in %s", ErrNoMatch, baseDir))
	}

	s := &Sample{Row: row}
	s.Forward, s.Reverse = Classify(paths)
	switch {
	case s.Forward == "" && s.Reverse == "":
		return nil, fail(KindResolution, fmt.Errorf("%w: no file among %d candidates is marked read1/R1 or read2/R2", ErrUnpaired, len(paths)))
	case s.Reverse == "":
		return nil, fail(KindResolution, fmt.Errorf("%w: no reverse read for %s", ErrUnpaired, s.Forward))
	case s.Forward == "":
		return nil, fail(KindResolution, fmt.Errorf("%w: no forward read for %s", ErrUnpaired, s.Reverse))
	}

	for _, p := range []string{s.Forward, s.Reverse} {
		if err := readable(p); err != nil {
			return nil, fail(KindResolution, fmt.Errorf("%w: %v", ErrUnreadable, err))
		}
	}

	s.ID = id

	dir, err := GroupDir(s.Forward)
	if err != nil {
		return nil, fail(KindResolution, err)
	}
	s.GroupDir = dir

	spec, err := adapter.Resolve(fields)
	if err != nil {
		return nil, fail(KindFormat, err)
	}
	s.AutoDetect = spec.Mode == adapter.Auto
	s.AdapterForward = spec.Forward
	s.AdapterReverse = spec.Reverse

	return s, nil
}

func readable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

// IsFormat reports whether err is a malformed manifest row.
func IsFormat(err error) bool { return isKind(err, KindFormat) }

// IsResolution reports whether err is a row whose reads could not be resolved.
func IsResolution(err error) bool { return isKind(err, KindResolution) }

func isKind(err error, k Kind) bool {
	var re *RowError
	return errors.As(err, &re) && re.Kind == k
}
