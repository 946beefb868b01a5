package model

import "time"

// PriceRecord holds one trading day of history for a symbol.
// Open, Close, and AdjClose may be NaN when the source emitted a value
// that failed numeric coercion; such records are counted on the series
// and excluded from return calculations downstream.
type PriceRecord struct {
	Date     time.Time
	Open     float64
	Close    float64
	AdjClose float64
}

// PriceSeries is an assembled price history for one symbol, ordered
// ascending by date with no duplicate dates.
type PriceSeries struct {
	Symbol  string
	Records []PriceRecord

	// CoercedFields counts price fields that failed numeric coercion
	// during assembly. Reported as data-quality loss, not an error.
	CoercedFields int
}

// Len returns the number of records in the series.
func (s *PriceSeries) Len() int { return len(s.Records) }

// Lookup returns the record for a given calendar date.
func (s *PriceSeries) Lookup(date time.Time) (PriceRecord, bool) {
	y, m, d := date.Date()
	for _, r := range s.Records {
		ry, rm, rd := r.Date.Date()
		if ry == y && rm == m && rd == d {
			return r, true
		}
	}
	return PriceRecord{}, false
}
