package history

import (
	"context"
	"time"

	"RiskScreener/internal/model"
)

// MockProvider returns controllable fixed data for development and
// testing.
type MockProvider struct {
	Series map[string]*model.PriceSeries
	Errs   map[string]error
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchHistory(_ context.Context, symbol string, _, _ time.Time) (*model.PriceSeries, error) {
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if s, ok := m.Series[symbol]; ok {
		return s, nil
	}
	return nil, &model.NotFoundError{Symbol: symbol}
}

// SeriesFromCloses builds a series with the given adjusted closes on
// consecutive weekdays, for tests.
func SeriesFromCloses(symbol string, start time.Time, closes []float64) *model.PriceSeries {
	s := &model.PriceSeries{Symbol: symbol}
	d := start
	for _, c := range closes {
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, 1)
		}
		s.Records = append(s.Records, model.PriceRecord{
			Date:     d,
			Open:     c,
			Close:    c,
			AdjClose: c,
		})
		d = d.AddDate(0, 0, 1)
	}
	return s
}
