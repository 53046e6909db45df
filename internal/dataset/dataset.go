// Package dataset holds the immutable, column-oriented view of the rows
// submitted with an analyze request.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrColumnNotFound = errors.New("column not found")
	ErrNonNumeric     = errors.New("non-numeric value")
	ErrInvalidDate    = errors.New("invalid date value")
	ErrUnsupported    = errors.New("unsupported value type")
)

// Kind is the inferred type of a column.
type Kind int

const (
	KindCategorical Kind = iota
	KindNumeric
	KindDatetime
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindDatetime:
		return "datetime"
	default:
		return "categorical"
	}
}

// Dataset is a set of equally long named columns. It is never modified after
// FromRecords returns, so it may be shared by any number of readers.
type Dataset struct {
	rows    int
	names   []string
	columns map[string]*Column
}

// FromRecords builds a Dataset from row-oriented records. A key missing from a
// record and an explicit nil are both treated as a missing value. Values must
// be scalars: float64, int kinds, string or bool.
func FromRecords(records []map[string]any) (*Dataset, error) {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for name := range rec {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	columns := make(map[string]*Column, len(names))
	for _, name := range names {
		values := make([]any, len(records))
		for i, rec := range records {
			v, err := normalize(rec[name])
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
			}
			values[i] = v
		}
		columns[name] = &Column{name: name, kind: inferKind(values), values: values}
	}

	return &Dataset{rows: len(records), names: names, columns: columns}, nil
}

// NumRows returns the number of records the dataset was built from.
func (d *Dataset) NumRows() int { return d.rows }

// NumColumns returns the number of distinct column names.
func (d *Dataset) NumColumns() int { return len(d.names) }

// Names returns the column names in sorted order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Column looks up a column by exact name.
func (d *Dataset) Column(name string) (*Column, error) {
	col, ok := d.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return col, nil
}

// Column is a read-only sequence of scalar values; nil marks a missing value.
type Column struct {
	name   string
	kind   Kind
	values []any
}

func (c *Column) Name() string { return c.name }
func (c *Column) Kind() Kind   { return c.kind }
func (c *Column) Len() int     { return len(c.values) }

// Value returns the i-th value: float64, string, bool or nil.
func (c *Column) Value(i int) any { return c.values[i] }

// IsNull reports whether the i-th value is missing.
func (c *Column) IsNull(i int) bool { return c.values[i] == nil }

// Floats coerces the column to float64. Missing values become NaN. Strings
// are parsed as decimal numbers; any value that cannot be coerced fails the
// whole conversion.
func (c *Column) Floats() ([]float64, error) {
	out := make([]float64, len(c.values))
	for i, v := range c.values {
		switch x := v.(type) {
		case nil:
			out[i] = math.NaN()
		case float64:
			out[i] = x
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err != nil {
				return nil, fmt.Errorf("%w in column %q at row %d: %q", ErrNonNumeric, c.name, i, x)
			}
			out[i] = f
		default:
			return nil, fmt.Errorf("%w in column %q at row %d: %v", ErrNonNumeric, c.name, i, x)
		}
	}
	return out, nil
}

// Keys returns a category key per row. The second slice reports which rows
// are present. Strings are their own key; in a non-numeric column numbers and
// booleans get a type tag, so true and "true" stay distinct categories.
func (c *Column) Keys() ([]string, []bool) {
	keys := make([]string, len(c.values))
	present := make([]bool, len(c.values))
	for i, v := range c.values {
		if v == nil {
			continue
		}
		keys[i] = c.key(v)
		present[i] = true
	}
	return keys, present
}

func (c *Column) key(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if c.kind == KindNumeric {
			return Label(v)
		}
		return "\x00number:" + Label(v)
	case bool:
		return "\x00bool:" + Label(v)
	default:
		return "\x00other:" + Label(v)
	}
}

// Times parses every value as a timestamp in UTC. Missing values yield the zero
// time and false in the second slice. A single unparseable value fails the
// whole conversion.
func (c *Column) Times() ([]time.Time, []bool, error) {
	out := make([]time.Time, len(c.values))
	present := make([]bool, len(c.values))
	for i, v := range c.values {
		if v == nil {
			continue
		}
		t, err := ParseTime(v)
		if err != nil {
			return nil, nil, fmt.Errorf("column %q at row %d: %w", c.name, i, err)
		}
		out[i] = t
		present[i] = true
	}
	return out, present, nil
}

// Label formats a scalar the way it appears as a category.
func Label(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func normalize(v any) (any, error) {
	switch x := v.(type) {
	case nil, float64, string, bool:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, v)
	}
}

func inferKind(values []any) Kind {
	var numeric, dates, present int
	for _, v := range values {
		switch x := v.(type) {
		case nil:
			continue
		case float64:
			numeric++
		case string:
			if _, err := parseTimeString(x); err == nil {
				dates++
			}
		}
		present++
	}

	switch {
	case present == 0:
		return KindCategorical
	case numeric == present:
		return KindNumeric
	case dates == present:
		return KindDatetime
	default:
		return KindCategorical
	}
}
