// Package analysis runs the fixed catalog of statistical routines against a
// dataset.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/kiranshivaraju/tabstats/internal/dataset"
	"github.com/kiranshivaraju/tabstats/internal/logging"
	"github.com/kiranshivaraju/tabstats/pkg/models"
)

// Dispatcher maps analysis requests to routines.
type Dispatcher struct{}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Run executes every request against ds in order and returns exactly one
// result per request. It never fails: unknown names, routine errors and panics
// all become error results for the request that caused them. Once ctx is
// done the remaining requests are answered with the context error.
func (d *Dispatcher) Run(ctx context.Context, ds *dataset.Dataset, requests []models.AnalysisRequest) []models.AnalysisResult {
	logger := logging.FromContext(ctx)
	logger.Info("running analyses", "count", len(requests), "rows", ds.NumRows(), "columns", ds.NumColumns())

	results := make([]models.AnalysisResult, 0, len(requests))
	for _, req := range requests {
		var res models.AnalysisResult
		if err := ctx.Err(); err != nil {
			res = models.AnalysisResult{Error: err.Error()}
		} else {
			res = d.runOne(logger.With("analysis", req.AnalysisName), ds, req)
		}
		res.AnalysisName = req.AnalysisName
		results = append(results, res)
	}
	return results
}

func (d *Dispatcher) runOne(logger *slog.Logger, ds *dataset.Dataset, req models.AnalysisRequest) (res models.AnalysisResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in analysis", "error", r, "stack", string(debug.Stack()))
			res = models.AnalysisResult{Error: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	kind, ok := ParseKind(req.AnalysisName)
	if !ok {
		logger.Warn("unsupported analysis type requested")
		return models.AnalysisResult{Error: fmt.Errorf("%w: %s", ErrUnsupportedKind, req.AnalysisName).Error()}
	}

	logger.Debug("running analysis", "fields", req.RequiredFields)
	res, err := Execute(logger, kind, ds, req.RequiredFields)
	if err != nil {
		logger.Error("analysis failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return models.AnalysisResult{Error: err.Error()}
	}

	logger.Info("analysis completed", "duration_ms", time.Since(start).Milliseconds())
	res.AnalysisType = kind.String()
	return res
}

// Execute runs a single analysis. Only the payload field for kind is set on
// success; AnalysisName and AnalysisType are left to the caller.
func Execute(logger *slog.Logger, kind Kind, ds *dataset.Dataset, fields models.RequiredFields) (models.AnalysisResult, error) {
	switch kind {
	case KindCorrelation:
		r, err := Correlation(ds, fields.NumericalColumns)
		return models.AnalysisResult{CorrelationResult: r}, err

	case KindLinearRegression:
		cols, err := take(logger, kind, groupNumerical, fields.NumericalColumns, 2)
		if err != nil {
			return models.AnalysisResult{}, err
		}
		r, err := LinearRegression(ds, cols[0], cols[1])
		return models.AnalysisResult{RegressionResult: r}, err

	case KindChiSquare:
		cols, err := take(logger, kind, groupCategorical, fields.CategoricalColumns, 2)
		if err != nil {
			return models.AnalysisResult{}, err
		}
		r, err := ChiSquare(ds, cols[0], cols[1])
		return models.AnalysisResult{ChiSquareResult: r}, err

	case KindTimeSeries:
		dates, err := take(logger, kind, groupDate, fields.DateColumns, 1)
		if err != nil {
			return models.AnalysisResult{}, err
		}
		values, err := take(logger, kind, groupNumerical, fields.NumericalColumns, 1)
		if err != nil {
			return models.AnalysisResult{}, err
		}
		r, err := TimeSeries(ds, dates[0], values[0])
		return models.AnalysisResult{TimeSeriesResult: r}, err

	case KindDescriptive:
		// fields does not restrict the summary; every column is described.
		r, err := Describe(ds)
		return models.AnalysisResult{DescriptiveResult: r}, err

	default:
		return models.AnalysisResult{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
}
