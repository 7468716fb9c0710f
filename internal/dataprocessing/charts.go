package dataprocessing

import (
	"context"
	"math"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"

	"registrydash/pkg/contracts/domain"
)

// CountBy counts records per non-empty value of field, most frequent first.
// Equal counts keep the order in which the values first appear.
func CountBy(t *domain.Table, field domain.Field) []domain.CategoryCount {
	pos := make(map[string]int)
	counts := []domain.CategoryCount{}
	for _, r := range t.Records() {
		v := r.Value(field)
		if v == "" {
			continue
		}
		i, ok := pos[v]
		if !ok {
			i = len(counts)
			pos[v] = i
			counts = append(counts, domain.CategoryCount{Label: v})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

func head[T any](s []T, n int) []T {
	if n >= 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// TopIndustries returns the n most common industries ordered by ascending count,
// the layout of a horizontal bar chart that puts the largest bar on top.
func TopIndustries(t *domain.Table, n int) []domain.CategoryCount {
	top := slices.Clone(head(CountBy(t, domain.FieldIndustry), n))
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count < top[j].Count
	})
	return top
}

// TopProvinces returns the n provinces with most records, descending.
func TopProvinces(t *domain.Table, n int) []domain.CategoryCount {
	return head(CountBy(t, domain.FieldProvince), n)
}

// LegalStatusDistribution counts every legal status, descending.
func LegalStatusDistribution(t *domain.Table) []domain.CategoryCount {
	return CountBy(t, domain.FieldLegalStatus)
}

// TypeDistribution counts every company type, descending.
func TypeDistribution(t *domain.Table) []domain.CategoryCount {
	return CountBy(t, domain.FieldType)
}

// CapitalHistogram splits strictly positive capital into equal-width bins
// spanning its min and max. It returns nil when no record has positive capital.
// A single distinct value is centred in a range one dollar wide.
func CapitalHistogram(t *domain.Table, bins int) []domain.HistogramBin {
	if bins <= 0 {
		return nil
	}

	values := make([]float64, 0, t.Len())
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range t.Records() {
		if r.Capital > 0 {
			values = append(values, r.Capital)
			lo = math.Min(lo, r.Capital)
			hi = math.Max(hi, r.Capital)
		}
	}
	if len(values) == 0 {
		return nil
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	width := (hi - lo) / float64(bins)
	out := make([]domain.HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// TopCompaniesByCapital returns the n largest companies by capital, ordered by
// ascending capital. Among equal capital the earlier record ranks higher.
func TopCompaniesByCapital(t *domain.Table, n int) []domain.CapitalEntry {
	entries := make([]domain.CapitalEntry, 0, t.Len())
	for _, r := range t.Records() {
		entries = append(entries, domain.CapitalEntry{Name: r.Name, Capital: r.Capital})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Capital > entries[j].Capital
	})
	top := slices.Clone(head(entries, n))
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Capital < top[j].Capital
	})
	return top
}

// BuildChartSet computes all six views concurrently. t is shared read-only.
func BuildChartSet(ctx context.Context, t *domain.Table, limits domain.ChartLimits) (domain.ChartSet, error) {
	var set domain.ChartSet
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		set.TopIndustries = TopIndustries(t, limits.TopIndustries)
		return ctx.Err()
	})
	g.Go(func() error {
		set.Provinces = TopProvinces(t, limits.TopProvinces)
		return ctx.Err()
	})
	g.Go(func() error {
		set.LegalStatus = LegalStatusDistribution(t)
		return ctx.Err()
	})
	g.Go(func() error {
		set.Types = TypeDistribution(t)
		return ctx.Err()
	})
	g.Go(func() error {
		set.CapitalBins = CapitalHistogram(t, limits.HistogramBins)
		return ctx.Err()
	})
	g.Go(func() error {
		set.TopCompanies = TopCompaniesByCapital(t, limits.TopCompanies)
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return domain.ChartSet{}, err
	}
	set.HistogramEmpty = len(set.CapitalBins) == 0
	return set, nil
}
