package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Anchor selects where a sample id may sit inside a read file name.
type Anchor int

const (
	// AnchorStart requires the file name to begin with the id.
	AnchorStart Anchor = iota
	// AnchorAnywhere accepts the id anywhere in the file name.
	AnchorAnywhere
)

func (a Anchor) pattern(id string) string {
	if a == AnchorAnywhere {
		return "*" + escapeMeta(id) + "?*"
	}
	return escapeMeta(id) + "?*"
}

// Glob returns the entries of baseDir whose name contains id as a whole
// token. Matching is case-sensitive. No match yields an empty slice.
func Glob(baseDir, id string, anchor Anchor) []string {
	if id == "" {
		return nil
	}

	pattern := filepath.Join(escapeMeta(baseDir), anchor.pattern(id))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		if !tokenMatch(filepath.Base(m), id, anchor) {
			continue
		}
		if fi, err := os.Stat(m); err != nil || fi.IsDir() {
			continue
		}
		paths = append(paths, m)
	}
	return paths
}

// tokenMatch reports whether id occurs in name bounded by non-alphanumeric
// characters, so "S1" does not pick up "S10_R1.fq".
func tokenMatch(name, id string, anchor Anchor) bool {
	if anchor == AnchorStart {
		return strings.HasPrefix(name, id) && boundaryAfter(name, len(id))
	}

	for off := 0; off < len(name); {
		i := strings.Index(name[off:], id)
		if i < 0 {
			return false
		}
		start := off + i
		end := start + len(id)
		if boundaryBefore(name, start) && boundaryAfter(name, end) {
			return true
		}
		off = start + 1
	}
	return false
}

func boundaryAfter(name string, end int) bool {
	if end >= len(name) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name[end:])
	return !isIDRune(r)
}

func boundaryBefore(name string, start int) bool {
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(name[:start])
	return !isIDRune(r)
}

func isIDRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// escapeMeta quotes glob metacharacters. Windows globs have no escape
// character, so names there are used as is.
func escapeMeta(s string) string {
	if filepath.Separator != '/' || !strings.ContainsAny(s, `*?[\`) {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
