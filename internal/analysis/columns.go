package analysis

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/kiranshivaraju/tabstats/internal/dataset"
)

func numericColumn(ds *dataset.Dataset, name string) ([]float64, error) {
	col, err := ds.Column(name)
	if err != nil {
		return nil, err
	}
	return col.Floats()
}

// take returns the first n entries of a required_fields group. Extra entries
// are ignored and logged.
func take(logger *slog.Logger, kind Kind, group string, cols []string, n int) ([]string, error) {
	if len(cols) < n {
		return nil, fmt.Errorf("%w: %s requires %d %s, got %d", ErrMissingFields, kind, n, group, len(cols))
	}
	if len(cols) > n {
		logger.Warn("ignoring extra columns", "group", group, "used", cols[:n], "ignored", cols[n:])
	}
	return cols[:n], nil
}

// pairwiseComplete keeps the positions where both x and y are present.
func pairwiseComplete(x, y []float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

func dropMissing(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
