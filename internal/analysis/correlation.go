package analysis

import (
	"fmt"
	"math"

	"github.com/kiranshivaraju/tabstats/internal/dataset"
	"github.com/kiranshivaraju/tabstats/pkg/models"
	"gonum.org/v1/gonum/stat"
)

// Correlation computes the Pearson correlation of every pair of the given
// columns over the rows where both values are present. Cells with fewer than
// two complete pairs, or involving a constant column, are NaN.
func Correlation(ds *dataset.Dataset, columns []string) (*models.CorrelationResult, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s requires at least 1 %s", ErrMissingFields, KindCorrelation, groupNumerical)
	}

	names := make([]string, 0, len(columns))
	series := make(map[string][]float64, len(columns))
	for _, name := range columns {
		if _, dup := series[name]; dup {
			continue
		}
		values, err := numericColumn(ds, name)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		series[name] = values
	}

	matrix := make(map[string]map[string]models.Float, len(names))
	for _, name := range names {
		matrix[name] = make(map[string]models.Float, len(names))
	}
	for i, a := range names {
		for _, b := range names[i:] {
			r := models.Float(pearson(series[a], series[b], a == b))
			matrix[a][b] = r
			matrix[b][a] = r
		}
	}

	return &models.CorrelationResult{CorrelationMatrix: matrix}, nil
}

func pearson(x, y []float64, same bool) float64 {
	xs, ys := pairwiseComplete(x, y)
	if len(xs) < 2 {
		return math.NaN()
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return math.NaN()
	}
	if same {
		return 1
	}
	return stat.Correlation(xs, ys, nil)
}
