package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// touch creates empty files named names in dir.
func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

func TestGlob(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"test_1_cde_R1.fastq",
		"test_1_cde_R2.fastq",
		"test_10_xyz_R1.fastq",
		"test_10_xyz_R2.fastq",
		"some_animals_MNM12345_R1.fastq.gz",
		"some_animals_MNM12345_R2.fastq.gz",
		"other_abcde_R1.fastq",
	)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "test_1_dir"), 0o755))

	tests := []struct {
		name   string
		id     string
		anchor Anchor
		want   []string
	}{
		{
			name:   "StartAnchored",
			id:     "test_1",
			anchor: AnchorStart,
			want:   []string{"test_1_cde_R1.fastq", "test_1_cde_R2.fastq"},
		},
		{
			name:   "StartAnchoredMissesMidToken",
			id:     "cde",
			anchor: AnchorStart,
			want:   []string{},
		},
		{
			name:   "AnywhereMidToken",
			id:     "cde",
			anchor: AnchorAnywhere,
			want:   []string{"test_1_cde_R1.fastq", "test_1_cde_R2.fastq"},
		},
		{
			name:   "AnywhereAccession",
			id:     "MNM12345",
			anchor: AnchorAnywhere,
			want:   []string{"some_animals_MNM12345_R1.fastq.gz", "some_animals_MNM12345_R2.fastq.gz"},
		},
		{
			name:   "CaseSensitive",
			id:     "mnm12345",
			anchor: AnchorAnywhere,
			want:   []string{},
		},
		{
			name:   "NoMatch",
			id:     "absent",
			anchor: AnchorAnywhere,
			want:   []string{},
		},
		{
			name:   "EmptyID",
			id:     "",
			anchor: AnchorStart,
			want:   []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Glob(dir, tc.id, tc.anchor)
			assert.ElementsMatch(t, tc.want, baseNames(got))
		})
	}
}

func TestGlobEscapesMeta(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run[1]")
	require.NoError(t, os.Mkdir(dir, 0o755))
	touch(t, dir, "S*1_L001_R1.fq", "S*1_L001_R2.fq", "S21_L001_R1.fq")

	got := Glob(dir, "S*1", AnchorStart)
	assert.ElementsMatch(t, []string{"S*1_L001_R1.fq", "S*1_L001_R2.fq"}, baseNames(got))
}

func TestTokenMatch(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		id     string
		anchor Anchor
		want   bool
	}{
		{"PrefixBoundary", "S1_R1.fq", "S1", AnchorStart, true},
		{"PrefixLongerID", "S10_R1.fq", "S1", AnchorStart, false},
		{"PrefixWholeName", "S1", "S1", AnchorStart, false},
		{"AnywhereBoundaries", "lib_S1_R1.fq", "S1", AnchorAnywhere, true},
		{"AnywhereGluedBefore", "libS1_R1.fq", "S1", AnchorAnywhere, false},
		{"AnywhereSecondOccurrence", "S10_S1_R1.fq", "S1", AnchorAnywhere, true},
		{"AnywhereAtStart", "S1.R1.fq", "S1", AnchorAnywhere, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tokenMatch(tc.file, tc.id, tc.anchor))
		})
	}
}
