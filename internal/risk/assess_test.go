package risk

import (
	"math"
	"testing"
	"time"

	"RiskScreener/internal/history"
	"RiskScreener/internal/model"
)

var t0 = time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)

func TestReturns(t *testing.T) {
	series := history.SeriesFromCloses("AAA", t0, []float64{100, 110, 99})
	returns, skipped := Returns(series)
	if skipped != 0 {
		t.Errorf("expected no skips, got %d", skipped)
	}
	if len(returns) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(returns))
	}
	if math.Abs(returns[0]-0.10) > 1e-12 {
		t.Errorf("first return: want 0.10, got %v", returns[0])
	}
	if math.Abs(returns[1]-(-0.10)) > 1e-12 {
		t.Errorf("second return: want -0.10, got %v", returns[1])
	}
}

func TestReturns_SkipsNaNRecords(t *testing.T) {
	series := history.SeriesFromCloses("AAA", t0, []float64{100, 110, 121})
	series.Records[1].AdjClose = math.NaN()
	returns, skipped := Returns(series)
	if skipped != 1 {
		t.Errorf("expected 1 skip, got %d", skipped)
	}
	// The return bridges the gap: 100 -> 121.
	if len(returns) != 1 || math.Abs(returns[0]-0.21) > 1e-12 {
		t.Errorf("expected bridged return 0.21, got %v", returns)
	}
}

func TestAssess_ConstantSeriesIsZero(t *testing.T) {
	closes := make([]float64, 50)
	for i := range closes {
		closes[i] = 42.0
	}
	series := history.SeriesFromCloses("FLAT", t0, closes)

	for _, confidence := range []float64{0.5, 0.9, 0.95, 0.99} {
		got, err := Assess(series, confidence)
		if err != nil {
			t.Fatalf("assess at %v: %v", confidence, err)
		}
		if got != 0 {
			t.Errorf("constant series at confidence %v: want 0, got %v", confidence, got)
		}
	}
}

func TestAssess_DecliningSeriesIsNonPositive(t *testing.T) {
	closes := make([]float64, 50)
	px := 100.0
	for i := range closes {
		closes[i] = px
		px *= 0.99
	}
	series := history.SeriesFromCloses("DOWN", t0, closes)

	for _, confidence := range []float64{0.05, 0.5, 0.95} {
		got, err := Assess(series, confidence)
		if err != nil {
			t.Fatalf("assess at %v: %v", confidence, err)
		}
		if got > 0 {
			t.Errorf("declining series at confidence %v: want <= 0, got %v", confidence, got)
		}
	}
}

func TestAssess_QuantileDoesNotMutateInput(t *testing.T) {
	series := history.SeriesFromCloses("AAA", t0, []float64{100, 90, 99, 95, 101})
	before, _ := Returns(series)
	if _, err := Assess(series, 0.95); err != nil {
		t.Fatalf("assess: %v", err)
	}
	after, _ := Returns(series)
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("assess mutated the series")
		}
	}
}

func TestAssess_ConfidenceBounds(t *testing.T) {
	series := history.SeriesFromCloses("AAA", t0, []float64{100, 101})
	for _, c := range []float64{0, 1, -0.5, 1.5} {
		if _, err := Assess(series, c); err == nil {
			t.Errorf("expected error for confidence %v", c)
		}
	}
}

func TestAssess_TooFewRecords(t *testing.T) {
	series := history.SeriesFromCloses("AAA", t0, []float64{100})
	_, err := Assess(series, 0.95)
	if err == nil {
		t.Fatal("expected error for a single-record series")
	}
	if model.Classify(err) != model.KindDataQuality {
		t.Errorf("expected data_quality kind, got %s", model.Classify(err))
	}
}
