package history

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"RiskScreener/internal/model"
)

// RawRow is one unparsed table row. Fields hold the source's original
// text so that event rows (dividends, splits) can be recognized by
// content before numeric coercion.
type RawRow struct {
	Date     string
	Open     string
	Close    string
	AdjClose string
}

// Fragment is the raw tabular result of a single page fetch, in the
// source's own row order.
type Fragment struct {
	Rows []RawRow
}

// TrailerPolicy controls removal of the synthetic footer row scraped
// tables include. Multi-page scrapes carry one trailer per page;
// single-call API retrievals carry at most one for the whole table.
type TrailerPolicy int

const (
	TrailerNone TrailerPolicy = iota
	TrailerPerFragment
	TrailerLast
)

// AssembleOptions parameterize Assemble for a given source.
type AssembleOptions struct {
	Trailer TrailerPolicy
	// ParseDate parses the source's native date representation.
	ParseDate func(string) (time.Time, error)
}

// Assemble concatenates page fragments in page order into one ordered
// price series. Trailer rows are dropped structurally according to the
// policy, event rows (a textual Open field such as "0.23 Dividend") are
// filtered out, and dates are parsed strictly: a malformed or duplicate
// date is a DataQualityError, never a silent drop. Price fields coerce
// leniently; failures become NaN and are counted on the series.
func Assemble(symbol string, fragments []Fragment, opts AssembleOptions) (*model.PriceSeries, error) {
	var rows []RawRow
	for _, frag := range fragments {
		fr := frag.Rows
		if opts.Trailer == TrailerPerFragment && len(fr) > 0 {
			fr = fr[:len(fr)-1]
		}
		rows = append(rows, fr...)
	}
	if opts.Trailer == TrailerLast && len(rows) > 0 {
		rows = rows[:len(rows)-1]
	}

	series := &model.PriceSeries{Symbol: symbol}
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		if isEventRow(row) {
			continue
		}
		date, err := opts.ParseDate(strings.TrimSpace(row.Date))
		if err != nil {
			return nil, &model.DataQualityError{
				Symbol: symbol,
				Reason: "malformed date " + strconv.Quote(row.Date),
			}
		}
		key := date.Format("2006-01-02")
		if seen[key] {
			return nil, &model.DataQualityError{
				Symbol: symbol,
				Reason: "duplicate date " + key,
			}
		}
		seen[key] = true

		rec := model.PriceRecord{Date: date}
		rec.Open = coerce(row.Open, &series.CoercedFields)
		rec.Close = coerce(row.Close, &series.CoercedFields)
		rec.AdjClose = coerce(row.AdjClose, &series.CoercedFields)
		series.Records = append(series.Records, rec)
	}

	sort.Slice(series.Records, func(i, j int) bool {
		return series.Records[i].Date.Before(series.Records[j].Date)
	})
	return series, nil
}

// isEventRow reports whether a row describes a corporate action rather
// than a trading day. Sources interleave these in the price table with
// the annotation in the Open column.
func isEventRow(row RawRow) bool {
	open := strings.ToLower(row.Open)
	return strings.Contains(open, "dividend") || strings.Contains(open, "split")
}

// coerce parses a price field, treating thousands separators as noise.
// Unparsable values become NaN and bump the loss counter.
func coerce(field string, lost *int) float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(field), ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		*lost++
		return math.NaN()
	}
	return v
}
