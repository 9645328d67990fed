package manifest

import (
	"errors"
	"fmt"
)

var (
	ErrNoMatch     = errors.New("no read files found")
	ErrUnpaired    = errors.New("read pair incomplete")
	ErrDuplicateID = errors.New("duplicate sample id")
	ErrUnreadable  = errors.New("read file not readable")

	ErrSharedGroupDir = errors.New("output directory shared with another sample")
)

// Kind groups manifest failures.
type Kind int

const (
	// KindFormat is a malformed row: column count, barcode or insert site.
	KindFormat Kind = iota + 1
	// KindResolution is a row whose reads could not be found or paired.
	KindResolution
	// KindFilesystem is a manifest that cannot be read.
	KindFilesystem
)

func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "manifest format error"
	case KindResolution:
		return "resolution error"
	case KindFilesystem:
		return "filesystem error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// RowError ties a failure to a manifest row. Row is 1-based and counts data
// rows only; it is 0 when the manifest itself failed.
type RowError struct {
	Row  int
	ID   string
	Kind Kind
	Err  error
}

func (e *RowError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s at row %d (sample %q): %v", e.Kind, e.Row, e.ID, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
