package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		fields  []string
		want    Spec
		wantErr error
	}{
		{
			name:   "IDOnly",
			fields: []string{"S1"},
			want:   Spec{Mode: Auto},
		},
		{
			name:   "SingleAdapter",
			fields: []string{"S1", "agtct"},
			want:   Spec{Mode: Single, Forward: "AGTCT"},
		},
		{
			name:   "SingleAdapterEmpty",
			fields: []string{"S1", ""},
			want:   Spec{Mode: Auto},
		},
		{
			name:    "SingleTemplateWithoutBarcode",
			fields:  []string{"S1", "AGT*CT"},
			wantErr: ErrInsertMissing,
		},
		{
			name:   "DualAdapters",
			fields: []string{"S1", "agtc", "ttga"},
			want:   Spec{Mode: Dual, Forward: "AGTC", Reverse: "TTGA"},
		},
		{
			name:   "DualOnlyI5",
			fields: []string{"S1", "AGTC", ""},
			want:   Spec{Mode: Single, Forward: "AGTC"},
		},
		{
			name:   "DualOnlyI7",
			fields: []string{"S1", "", "ttga"},
			want:   Spec{Mode: Single, Forward: "TTGA"},
		},
		{
			name:   "DualBothEmpty",
			fields: []string{"S1", "", ""},
			want:   Spec{Mode: Auto},
		},
		{
			name:    "DualTemplateI5",
			fields:  []string{"S1", "AG*TC", "TTGA"},
			wantErr: ErrInsertMissing,
		},
		{
			name:    "DualTemplateI7",
			fields:  []string{"S1", "AGTC", "TT*GA"},
			wantErr: ErrInsertMissing,
		},
		{
			name:   "TemplatedI5",
			fields: []string{"S1", "ATGTGTGTGA*Tatc", "ggcc", "ATT"},
			want:   Spec{Mode: Dual, Forward: "ATGTGTGTGATAATATC", Reverse: "GGCC"},
		},
		{
			name:   "TemplatedI5WithoutI7",
			fields: []string{"S1", "AC*G", "", "GG"},
			want:   Spec{Mode: Single, Forward: "ACCCG"},
		},
		{
			name:    "FourColumnsWithoutPlaceholder",
			fields:  []string{"S1", "AGTCT", "GGCC", "ATT"},
			wantErr: ErrTooManyColumns,
		},
		{
			name:    "TemplatedI5BadBarcode",
			fields:  []string{"S1", "AC*G", "GGCC", "AXT"},
			wantErr: ErrInvalidBase,
		},
		{
			name:    "TemplatedI5PlaceholderInI7",
			fields:  []string{"S1", "AC*G", "GG*CC", "AT"},
			wantErr: ErrInsertMissing,
		},
		{
			name:   "TemplatedBoth",
			fields: []string{"S1", "aa*tt", "cc*gg", "AC", "gt"},
			want:   Spec{Mode: Dual, Forward: "AATGTT", Reverse: "CCCAGG"},
		},
		{
			name:   "TemplatedBothEmptyI7",
			fields: []string{"S1", "aa*tt", "", "AC", ""},
			want:   Spec{Mode: Single, Forward: "AATGTT"},
		},
		{
			name:    "TemplatedBothMissingBarcode",
			fields:  []string{"S1", "aa*tt", "cc*gg", "AC", ""},
			wantErr: ErrInsertMissing,
		},
		{
			name:    "TemplatedBothBarcodeWithoutSite",
			fields:  []string{"S1", "aa*tt", "ccgg", "AC", "GT"},
			wantErr: ErrNoInsertSite,
		},
		{
			name:    "TooManyFields",
			fields:  []string{"S1", "A", "B", "C", "D", "E"},
			wantErr: ErrColumnCount,
		},
		{
			name:    "NoFields",
			fields:  nil,
			wantErr: ErrColumnCount,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.fields)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestColumnCountErrorNamesCount(t *testing.T) {
	_, err := Resolve([]string{"S1", "A", "B", "C", "D", "E", "F"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 7")
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "auto", Auto.String())
	assert.Equal(t, "single", Single.String())
	assert.Equal(t, "dual", Dual.String())
	assert.Equal(t, "Mode(9)", Mode(9).String())
}
