// Package recency derives how long ago an IP was last reported.
package recency

import (
	"fmt"
	"time"

	"github.com/ppiankov/ipspectre/internal/models"
)

const (
	// Layout is the offset form without a colon, e.g. 2024-01-01T00:00:00+0000
	Layout = "2006-01-02T15:04:05-0700"
	// LayoutColon is the RFC 3339 offset form the reputation service emits
	LayoutColon = "2006-01-02T15:04:05-07:00"

	day = 24 * time.Hour
)

// TimestampError is returned when a last-reported value matches no known layout
type TimestampError struct {
	Value string
	Err   error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("unparseable last-reported timestamp %q: %v", e.Value, e.Err)
}

func (e *TimestampError) Unwrap() error {
	return e.Err
}

// Parse parses a last-reported timestamp in either accepted layout
func Parse(value string) (time.Time, error) {
	ts, err := time.Parse(Layout, value)
	if err == nil {
		return ts, nil
	}
	if ts, colonErr := time.Parse(LayoutColon, value); colonErr == nil {
		return ts, nil
	}
	return time.Time{}, &TimestampError{Value: value, Err: err}
}

// Calculate returns the elapsed time between lastReported and now.
// A nil timestamp yields a nil result.
func Calculate(lastReported *string, now time.Time) (*models.Elapsed, error) {
	if lastReported == nil {
		return nil, nil
	}

	ts, err := Parse(*lastReported)
	if err != nil {
		return nil, err
	}

	elapsed := now.Sub(ts)
	days := wholeDays(elapsed)

	return &models.Elapsed{
		Hours:  elapsed.Seconds() / 3600,
		Weeks:  float64(floorDiv(days, 7)),
		Months: float64(floorDiv(days, 30)),
	}, nil
}

// wholeDays floors d to a day count, so -1h is day -1
func wholeDays(d time.Duration) int64 {
	days := int64(d / day)
	if d < 0 && d%day != 0 {
		days--
	}
	return days
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
