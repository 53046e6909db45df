package analysis

import (
	"fmt"
	"math"

	"github.com/kiranshivaraju/tabstats/internal/dataset"
	"github.com/kiranshivaraju/tabstats/pkg/models"
	"gonum.org/v1/gonum/stat"
)

// LinearRegression fits dependent = intercept + slope*independent by ordinary
// least squares and predicts every row. A constant independent column yields
// slope 0 and the mean of the dependent column as intercept.
func LinearRegression(ds *dataset.Dataset, dependent, independent string) (*models.RegressionResult, error) {
	y, err := numericColumn(ds, dependent)
	if err != nil {
		return nil, err
	}
	x, err := numericColumn(ds, independent)
	if err != nil {
		return nil, err
	}

	if len(x) < 2 {
		return nil, fmt.Errorf("%w: %s needs at least 2 rows, got %d", ErrInsufficientData, KindLinearRegression, len(x))
	}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			return nil, fmt.Errorf("%w: missing value at row %d", ErrInsufficientData, i)
		}
	}

	var intercept, slope float64
	if stat.Variance(x, nil) == 0 {
		intercept = stat.Mean(y, nil)
	} else {
		intercept, slope = stat.LinearRegression(x, y, nil, false)
	}

	predictions := make([]models.Float, len(x))
	for i, xi := range x {
		predictions[i] = models.Float(intercept + slope*xi)
	}

	return &models.RegressionResult{
		Slope:       models.Float(slope),
		Intercept:   models.Float(intercept),
		Predictions: predictions,
	}, nil
}
