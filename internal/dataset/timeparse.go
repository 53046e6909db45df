package dataset

import (
	"fmt"
	"math"
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2006",
	"Jan-2006",
	"2006-01",
}

// ParseTime converts a scalar to a UTC timestamp. Strings are tried against a
// fixed list of layouts; numbers are taken as Unix seconds.
func ParseTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case string:
		return parseTimeString(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, x)
		}
		sec, frac := math.Modf(x)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, v)
	}
}

func parseTimeString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
