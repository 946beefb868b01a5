package model

import (
	"fmt"
	"time"
)

// DateRange is an inclusive calendar date span.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Validate checks that the range is well formed.
func (r DateRange) Validate() error {
	if r.Start.After(r.End) {
		return fmt.Errorf("date range start %s after end %s",
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}
	return nil
}

// Page is one bounded sub-range of a DateRange, sized to stay under a
// source's per-request trading-day limit. Pages partition their parent
// range with no gaps or overlaps; the final page ends exactly at the
// parent's end date.
type Page struct {
	Start time.Time
	End   time.Time
}
