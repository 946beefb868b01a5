package notifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"RiskScreener/internal/model"
	"RiskScreener/internal/screener"
)

// FormatScreenReport formats a screening run for delivery. Accepted
// symbols come first, ascending by statistic (worst acceptable risk at
// the top), followed by a skip summary grouped by error kind.
func FormatScreenReport(results []model.ScreeningResult, outcomes []screener.Outcome,
	start, end time.Time, confidence, threshold float64) string {

	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Risk screen</b> | %s\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Range %s → %s | VaR %.0f%% | threshold %+.2f%%\n\n",
		start.Format("2006-01-02"), end.Format("2006-01-02"),
		confidence*100, threshold*100))

	if len(results) == 0 {
		b.WriteString("No symbols cleared the threshold.\n")
	} else {
		b.WriteString(fmt.Sprintf("✅ <b>%d accepted:</b>\n", len(results)))
		for _, r := range results {
			b.WriteString(fmt.Sprintf("  %-6s %+.4f\n", r.Symbol, r.Statistic))
		}
	}

	skips := map[model.ErrorKind]int{}
	rejected := 0
	for _, o := range outcomes {
		switch o.State {
		case screener.StateSkipped:
			skips[o.Kind]++
		case screener.StateRejected:
			rejected++
		}
	}
	if rejected > 0 {
		b.WriteString(fmt.Sprintf("\nRejected: %d\n", rejected))
	}
	if len(skips) > 0 {
		b.WriteString("Skipped: ")
		parts := make([]string, 0, len(skips))
		for kind, n := range skips {
			parts = append(parts, fmt.Sprintf("%s=%d", kind, n))
		}
		sort.Strings(parts)
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	}

	return b.String()
}
