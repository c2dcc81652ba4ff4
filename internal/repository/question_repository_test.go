package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateReorderIDs(t *testing.T) {
	tests := []struct {
		name     string
		existing []uint
		ordered  []uint
		wantErr  string
	}{
		{
			name:     "exact permutation",
			existing: []uint{1, 2, 3},
			ordered:  []uint{3, 1, 2},
		},
		{
			name:     "single question",
			existing: []uint{7},
			ordered:  []uint{7},
		},
		{
			name:     "missing question",
			existing: []uint{1, 2, 3},
			ordered:  []uint{1, 2},
			wantErr:  "reorder id count mismatch: have 3, got 2",
		},
		{
			name:     "unknown question",
			existing: []uint{1, 2},
			ordered:  []uint{1, 9},
			wantErr:  "reorder references unknown question 9",
		},
		{
			name:     "duplicate id masking a dropped question",
			existing: []uint{1, 2},
			ordered:  []uint{1, 1},
			wantErr:  "reorder lists question 1 twice",
		},
		{
			name:     "duplicate among many",
			existing: []uint{1, 2, 3},
			ordered:  []uint{3, 2, 2},
			wantErr:  "reorder lists question 2 twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateReorderIDs(tt.existing, tt.ordered)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
