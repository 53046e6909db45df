package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/kiranshivaraju/tabstats/internal/dataset"
	"github.com/kiranshivaraju/tabstats/pkg/models"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquare cross-tabulates two columns and tests them for independence.
// Rows missing either value are dropped. With one degree of freedom Yates'
// continuity correction is applied to the statistic.
func ChiSquare(ds *dataset.Dataset, first, second string) (*models.ChiSquareResult, error) {
	a, err := ds.Column(first)
	if err != nil {
		return nil, err
	}
	b, err := ds.Column(second)
	if err != nil {
		return nil, err
	}

	aKeys, aPresent := a.Keys()
	bKeys, bPresent := b.Keys()

	var rowsA, rowsB []string
	for i := range aKeys {
		if aPresent[i] && bPresent[i] {
			rowsA = append(rowsA, aKeys[i])
			rowsB = append(rowsB, bKeys[i])
		}
	}

	rowCats := categories(rowsA, a.Kind() == dataset.KindNumeric)
	colCats := categories(rowsB, b.Kind() == dataset.KindNumeric)
	if len(rowCats) < 2 || len(colCats) < 2 {
		return nil, fmt.Errorf("%w: %q has %d distinct values and %q has %d, need at least 2 each",
			ErrDegenerateTable, first, len(rowCats), second, len(colCats))
	}

	observed := crosstab(rowsA, rowsB, rowCats, colCats)
	chi2, dof, expected := independence(observed)
	p := distuv.ChiSquared{K: float64(dof)}.Survival(chi2)

	exp := make([][]models.Float, len(expected))
	for i, row := range expected {
		exp[i] = make([]models.Float, len(row))
		for j, v := range row {
			exp[i][j] = models.Float(v)
		}
	}

	return &models.ChiSquareResult{
		Chi2Statistic:       models.Float(chi2),
		PValue:              models.Float(p),
		DegreesOfFreedom:    dof,
		ExpectedFrequencies: exp,
	}, nil
}

// categories returns the distinct labels, ordered numerically for numeric
// columns and lexically otherwise.
func categories(labels []string, numeric bool) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	if numeric {
		sort.Slice(out, func(i, j int) bool {
			x, _ := strconv.ParseFloat(out[i], 64)
			y, _ := strconv.ParseFloat(out[j], 64)
			return x < y
		})
	} else {
		sort.Strings(out)
	}
	return out
}

func crosstab(a, b, rowCats, colCats []string) [][]float64 {
	rowIdx := make(map[string]int, len(rowCats))
	for i, c := range rowCats {
		rowIdx[c] = i
	}
	colIdx := make(map[string]int, len(colCats))
	for j, c := range colCats {
		colIdx[c] = j
	}

	table := make([][]float64, len(rowCats))
	for i := range table {
		table[i] = make([]float64, len(colCats))
	}
	for k := range a {
		table[rowIdx[a[k]]][colIdx[b[k]]]++
	}
	return table
}

// independence returns the chi-square statistic, degrees of freedom and
// expected frequencies for an observed table with no empty margins.
func independence(observed [][]float64) (float64, int, [][]float64) {
	rows, cols := len(observed), len(observed[0])
	rowSums := make([]float64, rows)
	colSums := make([]float64, cols)
	var total float64
	for i, row := range observed {
		for j, v := range row {
			rowSums[i] += v
			colSums[j] += v
			total += v
		}
	}

	dof := (rows - 1) * (cols - 1)
	expected := make([][]float64, rows)
	var chi2 float64
	for i := range observed {
		expected[i] = make([]float64, cols)
		adjusted := make([]float64, cols)
		for j, o := range observed[i] {
			e := rowSums[i] * colSums[j] / total
			expected[i][j] = e

			if dof == 1 {
				diff := e - o
				o += math.Copysign(math.Min(0.5, math.Abs(diff)), diff)
			}
			adjusted[j] = o
		}
		chi2 += stat.ChiSquare(adjusted, expected[i])
	}
	return chi2, dof, expected
}
