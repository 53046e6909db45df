package analysis

import (
	"errors"

	"github.com/kiranshivaraju/tabstats/internal/dataset"
)

// Column lookup and coercion failures come from the dataset package.
var (
	ErrColumnNotFound = dataset.ErrColumnNotFound
	ErrNonNumeric     = dataset.ErrNonNumeric
	ErrInvalidDate    = dataset.ErrInvalidDate
)

var (
	// Capitalized on purpose: clients match "Unsupported analysis type: <name>"
	// verbatim.
	ErrUnsupportedKind  = errors.New("Unsupported analysis type")
	ErrMissingFields    = errors.New("missing required fields")
	ErrInsufficientData = errors.New("insufficient data")
	ErrDegenerateTable  = errors.New("degenerate contingency table")
	ErrEmptyDataset     = errors.New("dataset is empty")
)
