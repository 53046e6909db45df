package analysis

import (
	"math"
	"time"

	"github.com/kiranshivaraju/tabstats/internal/dataset"
	"github.com/kiranshivaraju/tabstats/pkg/models"
	"gonum.org/v1/gonum/stat"
)

// TimeSeries averages valueColumn per calendar month of dateColumn. Keys are
// the month-end dates in RFC 3339. Months without observations are omitted.
// Rows with a missing date or value are skipped; an unparseable date fails the
// analysis.
func TimeSeries(ds *dataset.Dataset, dateColumn, valueColumn string) (*models.TimeSeriesResult, error) {
	dc, err := ds.Column(dateColumn)
	if err != nil {
		return nil, err
	}
	times, present, err := dc.Times()
	if err != nil {
		return nil, err
	}
	values, err := numericColumn(ds, valueColumn)
	if err != nil {
		return nil, err
	}

	buckets := make(map[time.Time][]float64)
	for i, t := range times {
		if !present[i] || math.IsNaN(values[i]) {
			continue
		}
		end := monthEnd(t)
		buckets[end] = append(buckets[end], values[i])
	}

	series := make(map[string]models.Float, len(buckets))
	for end, vs := range buckets {
		series[end.Format(time.RFC3339)] = models.Float(stat.Mean(vs, nil))
	}
	return &models.TimeSeriesResult{TimeSeries: series}, nil
}

// monthEnd returns midnight UTC of the last day of t's month.
func monthEnd(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}
