package analysis

import (
	"math"
	"sort"

	"github.com/kiranshivaraju/tabstats/internal/dataset"
	"github.com/kiranshivaraju/tabstats/pkg/models"
	"github.com/montanaflynn/stats"
)

var (
	numericStats     = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}
	categoricalStats = []string{"count", "unique", "top", "freq"}
)

// Describe summarizes every column of the dataset. Numeric columns get count,
// mean, sample standard deviation, min, quartiles and max; all other columns
// get count, unique, top and freq. Every column carries the union of the
// statistic names in use, with nil where a statistic does not apply.
func Describe(ds *dataset.Dataset) (*models.DescriptiveResult, error) {
	if ds.NumRows() == 0 || ds.NumColumns() == 0 {
		return nil, ErrEmptyDataset
	}

	var hasNumeric, hasOther bool
	columns := make([]*dataset.Column, 0, ds.NumColumns())
	for _, name := range ds.Names() {
		col, err := ds.Column(name)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
		if col.Kind() == dataset.KindNumeric {
			hasNumeric = true
		} else {
			hasOther = true
		}
	}

	var keys []string
	if hasOther {
		keys = append(keys, categoricalStats...)
	}
	if hasNumeric {
		keys = append(keys, numericStats...)
	}

	out := make(map[string]map[string]any, len(columns))
	for _, col := range columns {
		summary := make(map[string]any, len(keys))
		for _, k := range keys {
			summary[k] = nil
		}

		var err error
		if col.Kind() == dataset.KindNumeric {
			err = describeNumeric(col, summary)
		} else {
			describeCategorical(col, summary)
		}
		if err != nil {
			return nil, err
		}
		out[col.Name()] = summary
	}

	return &models.DescriptiveResult{Statistics: out}, nil
}

func describeNumeric(col *dataset.Column, summary map[string]any) error {
	raw, err := col.Floats()
	if err != nil {
		return err
	}
	values := dropMissing(raw)
	summary["count"] = models.Float(len(values))
	if len(values) == 0 {
		return nil
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return err
	}
	lowest, err := stats.Min(values)
	if err != nil {
		return err
	}
	highest, err := stats.Max(values)
	if err != nil {
		return err
	}
	std := math.NaN()
	if len(values) > 1 {
		if std, err = stats.StandardDeviationSample(values); err != nil {
			return err
		}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	summary["mean"] = models.Float(mean)
	summary["std"] = models.Float(std)
	summary["min"] = models.Float(lowest)
	summary["25%"] = models.Float(quantile(sorted, 0.25))
	summary["50%"] = models.Float(quantile(sorted, 0.5))
	summary["75%"] = models.Float(quantile(sorted, 0.75))
	summary["max"] = models.Float(highest)
	return nil
}

func describeCategorical(col *dataset.Column, summary map[string]any) {
	labels, present := col.Keys()
	counts := make(map[string]int)
	first := make(map[string]int)
	var count int
	for i, l := range labels {
		if !present[i] {
			continue
		}
		count++
		if _, ok := counts[l]; !ok {
			first[l] = i
		}
		counts[l]++
	}

	summary["count"] = count
	summary["unique"] = len(counts)
	if count == 0 {
		return
	}

	top, freq := "", 0
	for l, n := range counts {
		if n > freq || (n == freq && first[l] < first[top]) {
			top, freq = l, n
		}
	}
	summary["top"] = col.Value(first[top])
	summary["freq"] = freq
}

// quantile interpolates linearly between the closest ranks of sorted, which
// must be non-empty and ascending. q is in [0, 1].
func quantile(sorted []float64, q float64) float64 {
	h := q * float64(len(sorted)-1)
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
