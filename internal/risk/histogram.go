package risk

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderHistogram renders the return distribution as a PNG bar chart.
// This is a diagnostic side effect only; it never feeds back into the
// assessed statistic.
func RenderHistogram(symbol string, returns []float64, bins int) ([]byte, error) {
	if len(returns) == 0 {
		return nil, fmt.Errorf("no returns to plot for %s", symbol)
	}
	if bins <= 0 {
		bins = 40
	}

	lo, hi := returns[0], returns[0]
	for _, r := range returns[1:] {
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}
	if lo == hi {
		// Degenerate distribution; widen so the single bin is visible.
		lo -= 0.001
		hi += 0.001
	}

	width := (hi - lo) / float64(bins)
	counts := make([]int, bins)
	for _, r := range returns {
		idx := int(math.Floor((r - lo) / width))
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	bars := make([]chart.Value, bins)
	for i, c := range counts {
		center := lo + (float64(i)+0.5)*width
		label := ""
		if i%(bins/8+1) == 0 {
			label = fmt.Sprintf("%.1f%%", center*100)
		}
		bars[i] = chart.Value{
			Label: label,
			Value: float64(c),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("2563eb"),
				StrokeColor: drawing.ColorFromHex("2563eb"),
			},
		}
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Daily returns, %s", symbol),
		Width:    900,
		Height:   400,
		BarWidth: 900/bins - 2,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render histogram: %w", err)
	}
	return buf.Bytes(), nil
}
