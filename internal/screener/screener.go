package screener

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"RiskScreener/internal/history"
	"RiskScreener/internal/model"
	"RiskScreener/internal/risk"
)

// State is the terminal state of one symbol's pipeline run.
type State string

const (
	StateAccepted State = "accepted"
	StateRejected State = "rejected"
	StateSkipped  State = "skipped"
)

// Outcome is the typed per-symbol record of a screening run. Skipped
// outcomes carry the error and its taxonomy kind so logs and reports
// can say what actually happened instead of a bare exception.
type Outcome struct {
	Symbol    string
	State     State
	Statistic float64
	Elapsed   time.Duration
	Err       error
	Kind      model.ErrorKind
}

// Screener runs the fetch-assemble-assess pipeline over a symbol
// universe and collects the symbols whose risk statistic clears the
// threshold.
type Screener struct {
	Provider   history.Provider
	Confidence float64
	// Threshold is the acceptance bound on the return quantile,
	// typically negative (e.g. -0.03: loss no worse than 3% at the
	// configured confidence).
	Threshold float64
	// SymbolTimeout bounds one symbol's whole pipeline run. Zero means
	// no per-symbol deadline.
	SymbolTimeout time.Duration
	// HistogramDir, when set, receives one return-distribution PNG per
	// assessed symbol as a diagnostic.
	HistogramDir string
}

// Screen processes symbols sequentially and returns the accepted
// results sorted ascending by statistic (worst acceptable risk first),
// plus the full per-symbol outcome list. A failure on one symbol is
// logged and skipped; it never aborts the batch.
func (s *Screener) Screen(ctx context.Context, symbols []string, start, end time.Time) ([]model.ScreeningResult, []Outcome) {
	var results []model.ScreeningResult
	outcomes := make([]Outcome, 0, len(symbols))

	for _, symbol := range symbols {
		select {
		case <-ctx.Done():
			log.Printf("[WARN] screening interrupted: %v", ctx.Err())
			return sortResults(results), outcomes
		default:
		}

		log.Printf("[INFO] assessing %s", symbol)
		outcome := s.runSymbol(ctx, symbol, start, end)
		outcomes = append(outcomes, outcome)

		switch outcome.State {
		case StateAccepted:
			log.Printf("[INFO] %s accepted: %.5f (%.1fs)",
				symbol, outcome.Statistic, outcome.Elapsed.Seconds())
			results = append(results, model.ScreeningResult{
				Symbol:    symbol,
				Statistic: outcome.Statistic,
			})
		case StateRejected:
			log.Printf("[INFO] %s rejected: %.5f below threshold %.5f",
				symbol, outcome.Statistic, s.Threshold)
		case StateSkipped:
			log.Printf("[WARN] %s skipped (%s): %v", symbol, outcome.Kind, outcome.Err)
		}
	}

	log.Printf("[INFO] screening done: %d of %d symbols accepted", len(results), len(symbols))
	return sortResults(results), outcomes
}

// runSymbol drives one symbol through fetch and assessment and maps
// any failure to a skip.
func (s *Screener) runSymbol(ctx context.Context, symbol string, start, end time.Time) Outcome {
	t0 := time.Now()
	if s.SymbolTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.SymbolTimeout)
		defer cancel()
	}

	series, err := s.Provider.FetchHistory(ctx, symbol, start, end)
	if err != nil {
		return Outcome{
			Symbol: symbol, State: StateSkipped, Elapsed: time.Since(t0),
			Err: err, Kind: model.Classify(err),
		}
	}

	stat, err := risk.Assess(series, s.Confidence)
	if err != nil {
		return Outcome{
			Symbol: symbol, State: StateSkipped, Elapsed: time.Since(t0),
			Err: err, Kind: model.Classify(err),
		}
	}

	s.writeHistogram(series)

	state := StateRejected
	if stat >= s.Threshold {
		state = StateAccepted
	}
	return Outcome{Symbol: symbol, State: state, Statistic: stat, Elapsed: time.Since(t0)}
}

// writeHistogram emits the diagnostic PNG when a directory is
// configured. Failures are logged and otherwise ignored.
func (s *Screener) writeHistogram(series *model.PriceSeries) {
	if s.HistogramDir == "" {
		return
	}
	returns, _ := risk.Returns(series)
	png, err := risk.RenderHistogram(series.Symbol, returns, 40)
	if err != nil {
		log.Printf("[WARN] histogram for %s: %v", series.Symbol, err)
		return
	}
	path := filepath.Join(s.HistogramDir, fmt.Sprintf("%s_returns.png", series.Symbol))
	if err := os.WriteFile(path, png, 0644); err != nil {
		log.Printf("[WARN] write histogram %s: %v", path, err)
	}
}

func sortResults(results []model.ScreeningResult) []model.ScreeningResult {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Statistic < results[j].Statistic
	})
	return results
}
