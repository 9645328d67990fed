// Package adapter resolves the adapter sequences of a manifest row.
package adapter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInsertMissing  = errors.New("INSERT MISSING")
	ErrTooManyColumns = errors.New("TOO MANY COLUMNS")
	ErrColumnCount    = errors.New("invalid number of columns")
	ErrNoInsertSite   = errors.New("barcode given for an adapter without insert site")
)

// Mode is the trimming mode handed to fastp.
type Mode int

const (
	Auto Mode = iota
	Single
	Dual
)

func (m Mode) String() string {
	switch m {
	case Auto:
		return "auto"
	case Single:
		return "single"
	case Dual:
		return "dual"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Spec is the resolved adapter configuration of one manifest row.
// Forward is set for Single and Dual, Reverse only for Dual.
type Spec struct {
	Mode    Mode
	Forward string
	Reverse string
}

// layout is the shape of a manifest row, keyed by its column count.
type layout int

const (
	layoutNone layout = iota + 1
	layoutSingle
	layoutDual
	layoutTemplatedI5
	layoutTemplatedBoth
)

func layoutOf(columns int) (layout, error) {
	switch columns {
	case 1:
		return layoutNone, nil
	case 2:
		return layoutSingle, nil
	case 3:
		return layoutDual, nil
	case 4:
		return layoutTemplatedI5, nil
	case 5:
		return layoutTemplatedBoth, nil
	default:
		return 0, fmt.Errorf("%w: got %d, expected 1 to 5", ErrColumnCount, columns)
	}
}

// Resolve computes the adapter configuration of a manifest row. fields is
// the whole row, sample id included, already split and trimmed.
func Resolve(fields []string) (Spec, error) {
	l, err := layoutOf(len(fields))
	if err != nil {
		return Spec{}, err
	}

	switch l {
	case layoutSingle:
		i5, err := plain(fields[1])
		if err != nil {
			return Spec{}, err
		}
		// "S1," carries no adapter at all
		return combine(i5, ""), nil

	case layoutDual:
		i5, err := plain(fields[1])
		if err != nil {
			return Spec{}, err
		}
		i7, err := plain(fields[2])
		if err != nil {
			return Spec{}, err
		}
		return combine(i5, i7), nil

	case layoutTemplatedI5:
		if !strings.Contains(fields[1], Placeholder) {
			return Spec{}, fmt.Errorf("%w: 4 columns need an insert site in %q", ErrTooManyColumns, fields[1])
		}
		i5, err := templated(fields[1], fields[3])
		if err != nil {
			return Spec{}, err
		}
		i7, err := plain(fields[2])
		if err != nil {
			return Spec{}, err
		}
		return combine(i5, i7), nil

	case layoutTemplatedBoth:
		i5, err := templated(fields[1], fields[3])
		if err != nil {
			return Spec{}, err
		}
		i7, err := templated(fields[2], fields[4])
		if err != nil {
			return Spec{}, err
		}
		return combine(i5, i7), nil
	}

	return Spec{Mode: Auto}, nil
}

func plain(adapter string) (string, error) {
	adapter = strings.TrimSpace(adapter)
	if strings.Contains(adapter, Placeholder) {
		return "", fmt.Errorf("%w: %q has an insert site but no barcode column", ErrInsertMissing, adapter)
	}
	return strings.ToUpper(adapter), nil
}

func templated(template, barcode string) (string, error) {
	template = strings.TrimSpace(template)
	barcode = strings.TrimSpace(barcode)

	hasSite := strings.Contains(template, Placeholder)
	switch {
	case template == "" && barcode == "":
		return "", nil
	case hasSite && barcode == "":
		return "", fmt.Errorf("%w: no barcode for %q", ErrInsertMissing, template)
	case !hasSite && barcode != "":
		return "", fmt.Errorf("%w: %q for %q", ErrNoInsertSite, barcode, template)
	case !hasSite:
		return strings.ToUpper(template), nil
	}
	return Insert(template, barcode)
}

// combine picks the mode from the i5 and i7 candidates. A dual-index sheet
// may carry only one side for some samples.
func combine(i5, i7 string) Spec {
	i5 = strings.TrimSpace(i5)
	i7 = strings.TrimSpace(i7)

	switch {
	case i5 != "" && i7 != "":
		return Spec{Mode: Dual, Forward: i5, Reverse: i7}
	case i5 != "":
		return Spec{Mode: Single, Forward: i5}
	case i7 != "":
		return Spec{Mode: Single, Forward: i7}
	default:
		return Spec{Mode: Auto}
	}
}
