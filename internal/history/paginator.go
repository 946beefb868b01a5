package history

import (
	"fmt"
	"time"

	"RiskScreener/internal/model"
)

// DefaultPageSize is the trading-day row limit a single history page
// request can cover.
const DefaultPageSize = 100

// CountBusinessDays counts weekdays in [start, end). Market holidays are
// not excluded; the count is an upper bound on trading days, which is
// what page sizing needs.
func CountBusinessDays(start, end time.Time) int {
	if !start.Before(end) {
		return 0
	}
	count := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// Plan splits [start, end] into pages of at most maxTradingDays business
// days each. The calendar span is divided into equal increments rather
// than the business-day span; this approximation can shift page
// boundaries by a few days near page edges but never changes coverage,
// because the true end date is always appended as the last boundary.
// The pages partition the range with no gaps or overlaps.
func Plan(start, end time.Time, maxTradingDays int) ([]model.Page, error) {
	if maxTradingDays <= 0 {
		return nil, fmt.Errorf("plan: page size must be positive, got %d", maxTradingDays)
	}
	if err := (model.DateRange{Start: start, End: end}).Validate(); err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}

	busDays := CountBusinessDays(start, end)
	if busDays <= maxTradingDays {
		return []model.Page{{Start: start, End: end}}, nil
	}

	pages := (busDays + maxTradingDays - 1) / maxTradingDays
	increment := end.Sub(start) / time.Duration(pages)

	bounds := make([]time.Time, 0, pages+1)
	bounds = append(bounds, start)
	for i := 1; i < pages; i++ {
		bounds = append(bounds, start.Add(time.Duration(i)*increment))
	}
	bounds = append(bounds, end)

	plan := make([]model.Page, pages)
	for i := 0; i < pages; i++ {
		plan[i] = model.Page{Start: bounds[i], End: bounds[i+1]}
	}
	return plan, nil
}
