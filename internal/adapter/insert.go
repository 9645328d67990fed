package adapter

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Placeholder marks where a barcode is inserted into an adapter template.
const Placeholder = "*"

var (
	ErrInvalidBase          = errors.New("invalid base in barcode")
	ErrNoPlaceholder        = errors.New("adapter template has no insert site")
	ErrMultiplePlaceholders = errors.New("adapter template has more than one insert site")
)

var complement = map[rune]rune{
	'A': 'T',
	'G': 'C',
	'T': 'A',
	'C': 'G',
}

// translate complements each base of barcode in place order. It does not
// reverse the sequence.
func translate(barcode string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(barcode))
	pos := 0
	for _, b := range barcode {
		pos++
		c, ok := complement[unicode.ToUpper(b)]
		if !ok {
			return "", fmt.Errorf("%w: %q at position %d of %q", ErrInvalidBase, b, pos, barcode)
		}
		sb.WriteRune(c)
	}
	return sb.String(), nil
}

// Insert replaces the single placeholder in template with the complement of
// barcode and upper-cases the result.
func Insert(template, barcode string) (string, error) {
	switch n := strings.Count(template, Placeholder); {
	case n == 0:
		return "", fmt.Errorf("%w: %q", ErrNoPlaceholder, template)
	case n > 1:
		return "", fmt.Errorf("%w: %q", ErrMultiplePlaceholders, template)
	}

	trans, err := translate(barcode)
	if err != nil {
		return "", err
	}

	return strings.ToUpper(strings.Replace(template, Placeholder, trans, 1)), nil
}
