package dataprocessing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"registrydash/pkg/contracts/domain"
)

// ComputeMetrics summarizes filtered against the full table it came from.
// The capital average of an empty selection is 0.
func ComputeMetrics(filtered, full *domain.Table) domain.Metrics {
	total := decimal.Zero
	provinces := make(map[string]struct{})
	for _, r := range filtered.Records() {
		total = total.Add(decimal.NewFromFloat(r.Capital))
		if r.Province != "" {
			provinces[r.Province] = struct{}{}
		}
	}

	n := filtered.Len()
	average := decimal.Zero
	if n > 0 {
		average = total.Div(decimal.NewFromInt(int64(n)))
	}

	m := domain.Metrics{
		TotalCount:        n,
		TotalRaw:          full.Len(),
		CountDelta:        n - full.Len(),
		CapitalTotal:      total.InexactFloat64(),
		CapitalAverage:    average.InexactFloat64(),
		DistinctProvinces: len(provinces),
	}
	m.CapitalTotalDisplay = FormatCurrency(m.CapitalTotal)
	m.CapitalAverageDisplay = FormatCurrency(m.CapitalAverage)
	return m
}

// FormatCurrency renders a dollar amount compactly: millions with two decimals
// and an M suffix, thousands with one decimal and a K suffix, smaller amounts
// as whole dollars. The integer part is always grouped by thousands.
func FormatCurrency(v float64) string {
	p := message.NewPrinter(language.English)
	switch {
	case v >= 1_000_000:
		return "$" + p.Sprintf("%.2f", v/1_000_000) + "M"
	case v >= 1_000:
		return "$" + p.Sprintf("%.1f", v/1_000) + "K"
	default:
		return "$" + p.Sprintf("%.0f", v)
	}
}
