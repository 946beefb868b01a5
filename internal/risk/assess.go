package risk

import (
	"fmt"
	"log"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"RiskScreener/internal/model"
)

// Returns computes the fractional day-over-day change of adjusted
// closes. Records whose adjusted close failed numeric coercion (NaN)
// are skipped; the skip count is returned so callers can log the
// data-quality loss.
func Returns(series *model.PriceSeries) (returns []float64, skipped int) {
	prev := math.NaN()
	for _, rec := range series.Records {
		cur := rec.AdjClose
		if math.IsNaN(cur) {
			skipped++
			continue
		}
		if !math.IsNaN(prev) {
			returns = append(returns, (cur-prev)/prev)
		}
		prev = cur
	}
	return returns, skipped
}

// Assess returns the empirical (1-confidence) quantile of the symbol's
// historical daily returns: the value-at-risk statistic at the given
// confidence level. A negative value is the loss threshold not expected
// to be exceeded at that confidence.
func Assess(series *model.PriceSeries, confidence float64) (float64, error) {
	if confidence <= 0 || confidence >= 1 {
		return 0, fmt.Errorf("confidence must be in (0,1), got %v", confidence)
	}

	returns, skipped := Returns(series)
	if skipped > 0 {
		log.Printf("[WARN] %s: %d records excluded from return calculation (unparsable adjusted close)",
			series.Symbol, skipped)
	}
	if len(returns) == 0 {
		return 0, &model.DataQualityError{
			Symbol: series.Symbol,
			Reason: fmt.Sprintf("need at least 2 usable records, have %d", series.Len()-skipped),
		}
	}

	sorted := append([]float64(nil), returns...)
	sort.Float64s(sorted)
	return stat.Quantile(1-confidence, stat.Empirical, sorted, nil), nil
}
