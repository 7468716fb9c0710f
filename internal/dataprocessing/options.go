package dataprocessing

import (
	"math"
	"slices"

	"registrydash/pkg/contracts/domain"
)

// BuildFilterOptions lists every selectable value of t. Provinces are narrowed
// to regions when any are given. The capital slider stops at the given quantile.
func BuildFilterOptions(t *domain.Table, regions []string, quantile float64) domain.FilterOptions {
	opts := domain.FilterOptions{
		LegalStatuses: DistinctValues(t, domain.FieldLegalStatus),
		Types:         DistinctValues(t, domain.FieldType),
		Regions:       DistinctValues(t, domain.FieldRegion),
		Provinces:     ProvinceOptionsForRegions(t, regions),
		Industries:    DistinctValues(t, domain.FieldIndustry),
		BalanceFiled:  append([]string{domain.BalanceAll}, DistinctValues(t, domain.FieldBalanceFiled)...),
		Capital:       CapitalBoundsOf(t, quantile),
		Years:         YearBoundsOf(t),
	}
	return opts
}

// CapitalBoundsOf returns min, quantile and max of subscribed capital.
func CapitalBoundsOf(t *domain.Table, quantile float64) domain.CapitalBounds {
	if t.IsEmpty() {
		return domain.CapitalBounds{}
	}
	values := make([]float64, 0, t.Len())
	for _, r := range t.Records() {
		values = append(values, r.Capital)
	}
	slices.Sort(values)
	return domain.CapitalBounds{
		Min:       values[0],
		SliderMax: quantileSorted(values, quantile),
		Max:       values[len(values)-1],
	}
}

// YearBoundsOf returns the span of known incorporation years, or nil when no
// record has one.
func YearBoundsOf(t *domain.Table) *domain.YearBounds {
	var b *domain.YearBounds
	for _, r := range t.Records() {
		if r.IncorporationYear == nil {
			continue
		}
		y := *r.IncorporationYear
		if b == nil {
			b = &domain.YearBounds{Min: y, Max: y}
			continue
		}
		b.Min = min(b.Min, y)
		b.Max = max(b.Max, y)
	}
	return b
}

// DefaultCriteria selects every option and the full capital and year spans.
func DefaultCriteria(opts domain.FilterOptions) domain.FilterCriteria {
	c := domain.FilterCriteria{
		LegalStatuses: slices.Clone(opts.LegalStatuses),
		Types:         slices.Clone(opts.Types),
		Regions:       slices.Clone(opts.Regions),
		Provinces:     slices.Clone(opts.Provinces),
		Industries:    slices.Clone(opts.Industries),
		Capital: &domain.CapitalRange{
			Min: domain.Float64(opts.Capital.Min),
			Max: domain.Float64(opts.Capital.SliderMax),
		},
		BalanceFiled: domain.BalanceAll,
	}
	if opts.Years != nil {
		c.Years = &domain.YearRange{
			Min: domain.Int(opts.Years.Min),
			Max: domain.Int(opts.Years.Max),
		}
	}
	return c
}

// ResolveCapitalCeiling widens a capital maximum equal to the slider ceiling
// to the true maximum, so the top percentile is not silently dropped. Any
// other maximum is kept as requested. The input criteria are not modified.
func ResolveCapitalCeiling(c domain.FilterCriteria, bounds domain.CapitalBounds) domain.FilterCriteria {
	if c.Capital == nil || c.Capital.Max == nil || *c.Capital.Max != bounds.SliderMax {
		return c
	}
	widened := *c.Capital
	widened.Max = domain.Float64(math.Max(*c.Capital.Max, bounds.Max))
	c.Capital = &widened
	return c
}

// Quantile returns the q-th quantile of values using linear interpolation
// between closest ranks. It returns 0 for no values.
func Quantile(values []float64, q float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return quantileSorted(sorted, q)
}

func quantileSorted(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	q = math.Min(math.Max(q, 0), 1)
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}
