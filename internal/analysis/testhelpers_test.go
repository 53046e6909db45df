package analysis

import (
	"testing"

	"github.com/kiranshivaraju/tabstats/internal/dataset"
	"github.com/stretchr/testify/require"
)

func mustDataset(t *testing.T, records []map[string]any) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.FromRecords(records)
	require.NoError(t, err)
	return ds
}

// pairs builds n records of {a: x, b: y}.
func pairs(a, x string, b, y string, n int) []map[string]any {
	out := make([]map[string]any, n)
	for i := range out {
		out[i] = map[string]any{a: x, b: y}
	}
	return out
}

func linearRecords() []map[string]any {
	return []map[string]any{
		{"x": 1.0, "y": 5.0},
		{"x": 2.0, "y": 7.0},
		{"x": 3.0, "y": 9.0},
		{"x": 4.0, "y": 11.0},
	}
}
