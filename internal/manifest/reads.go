package manifest

import (
	"errors"
	"path/filepath"
	"strings"
)

var ErrNoForward = errors.New("forward read not set")

var (
	forwardMarkers = []string{"read1", "_r1"}
	reverseMarkers = []string{"read2", "_r2"}
)

// Classify sorts candidate paths into the forward and reverse read by file
// name. Paths carrying neither marker are dropped.
func Classify(paths []string) (forward, reverse string) {
	for _, p := range paths {
		name := strings.ToLower(filepath.Base(p))
		switch {
		case containsAny(name, forwardMarkers):
			forward = p
		case containsAny(name, reverseMarkers):
			reverse = p
		}
	}
	return forward, reverse
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// GroupDir names the per-sample output directory after the first three
// underscore-separated tokens of the forward read file name.
func GroupDir(forward string) (string, error) {
	if forward == "" {
		return "", ErrNoForward
	}
	tokens := strings.Split(filepath.Base(forward), "_")
	if len(tokens) > 3 {
		tokens = tokens[:3]
	}
	return strings.Join(tokens, "_"), nil
}
