package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func concat(parts ...[]map[string]any) []map[string]any {
	var out []map[string]any
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestChiSquare_Independent2x2(t *testing.T) {
	ds := mustDataset(t, concat(
		pairs("g", "x", "h", "p", 2),
		pairs("g", "x", "h", "q", 2),
		pairs("g", "y", "h", "p", 2),
		pairs("g", "y", "h", "q", 2),
	))

	res, err := ChiSquare(ds, "g", "h")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, float64(res.Chi2Statistic), 1e-12)
	assert.InDelta(t, 1.0, float64(res.PValue), 1e-12)
	assert.Equal(t, 1, res.DegreesOfFreedom)
}

func TestChiSquare_PerfectAssociationUsesYates(t *testing.T) {
	ds := mustDataset(t, concat(
		pairs("g", "x", "h", "p", 5),
		pairs("g", "y", "h", "q", 5),
	))

	res, err := ChiSquare(ds, "g", "h")
	require.NoError(t, err)
	// |O-E| = 2.5 is reduced to 2 by the continuity correction: 4 * 4/2.5
	assert.InDelta(t, 6.4, float64(res.Chi2Statistic), 1e-12)
	assert.InDelta(t, 0.011412, float64(res.PValue), 1e-5)
	assert.Equal(t, [][]float64{{2.5, 2.5}, {2.5, 2.5}}, toFloats(res.ExpectedFrequencies))
}

func TestChiSquare_2x3(t *testing.T) {
	ds := mustDataset(t, concat(
		pairs("g", "a", "h", "x", 10),
		pairs("g", "a", "h", "y", 10),
		pairs("g", "a", "h", "z", 20),
		pairs("g", "b", "h", "x", 20),
		pairs("g", "b", "h", "y", 20),
		pairs("g", "b", "h", "z", 20),
	))

	res, err := ChiSquare(ds, "g", "h")
	require.NoError(t, err)
	assert.InDelta(t, 2.7777777777777777, float64(res.Chi2Statistic), 1e-9)
	assert.InDelta(t, 0.24935220877729619, float64(res.PValue), 1e-9)
	assert.Equal(t, 2, res.DegreesOfFreedom)

	expected := toFloats(res.ExpectedFrequencies)
	require.Len(t, expected, 2)
	for j, want := range []float64{12, 12, 16} {
		assert.InDelta(t, want, expected[0][j], 1e-9)
	}
	for j, want := range []float64{18, 18, 24} {
		assert.InDelta(t, want, expected[1][j], 1e-9)
	}
}

func TestChiSquare_DropsMissingRows(t *testing.T) {
	ds := mustDataset(t, concat(
		pairs("g", "x", "h", "p", 5),
		pairs("g", "y", "h", "q", 5),
		[]map[string]any{{"g": "z"}},
	))

	res, err := ChiSquare(ds, "g", "h")
	require.NoError(t, err)
	assert.Len(t, res.ExpectedFrequencies, 2)
}

func TestChiSquare_NumericCategoriesOrderedNumerically(t *testing.T) {
	assert.Equal(t, []string{"2", "9", "10"}, categories([]string{"10", "9", "2", "9"}, true))
	assert.Equal(t, []string{"10", "2", "9"}, categories([]string{"10", "9", "2"}, false))
}

func TestChiSquare_Degenerate(t *testing.T) {
	ds := mustDataset(t, concat(
		pairs("g", "x", "h", "p", 3),
		pairs("g", "x", "h", "q", 3),
	))

	_, err := ChiSquare(ds, "g", "h")
	assert.ErrorIs(t, err, ErrDegenerateTable)
}

func TestChiSquare_MissingColumn(t *testing.T) {
	ds := mustDataset(t, pairs("g", "x", "h", "p", 3))

	_, err := ChiSquare(ds, "g", "nope")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestChiSquare_BoolAndStringKeptApart(t *testing.T) {
	ds := mustDataset(t, []map[string]any{
		{"g": true, "h": "p"},
		{"g": true, "h": "q"},
		{"g": "true", "h": "p"},
		{"g": "true", "h": "p"},
		{"g": "x", "h": "q"},
		{"g": "x", "h": "q"},
	})

	res, err := ChiSquare(ds, "g", "h")
	require.NoError(t, err)
	assert.Len(t, res.ExpectedFrequencies, 3)
	assert.Equal(t, 2, res.DegreesOfFreedom)
}

func TestIndependence_YatesMatchesClosedForm(t *testing.T) {
	// ad - bc = 40, n = 20; Yates: n(|ad-bc| - n/2)^2 / (r1 r2 c1 c2).
	chi2, dof, _ := independence([][]float64{{6, 4}, {2, 8}})

	assert.Equal(t, 1, dof)
	assert.InDelta(t, 20*math.Pow(40-10, 2)/(10*10*8*12), chi2, 1e-12)
}
