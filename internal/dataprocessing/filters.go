package dataprocessing

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"registrydash/pkg/contracts/domain"
)

// predicate is a compiled FilterCriteria.
type predicate struct {
	legalStatuses map[string]struct{}
	types         map[string]struct{}
	regions       map[string]struct{}
	provinces     map[string]struct{}
	industries    map[string]struct{}
	capital       *domain.CapitalRange
	years         *domain.YearRange
	balance       string
	nameTerm      string
	folder        cases.Caser
}

func newPredicate(c domain.FilterCriteria) *predicate {
	p := &predicate{
		legalStatuses: toSet(c.LegalStatuses),
		types:         toSet(c.Types),
		regions:       toSet(c.Regions),
		provinces:     toSet(c.Provinces),
		industries:    toSet(c.Industries),
		capital:       c.Capital,
		years:         c.Years,
		folder:        cases.Fold(),
	}
	if c.BalanceFiled != domain.BalanceAll {
		p.balance = c.BalanceFiled
	}
	if term := strings.TrimSpace(c.NameQuery); term != "" {
		p.nameTerm = p.folder.String(term)
	}
	return p
}

// toSet returns nil for an empty selection, meaning "no constraint".
func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func inSet(set map[string]struct{}, v string) bool {
	if set == nil {
		return true
	}
	_, ok := set[v]
	return ok
}

func (p *predicate) match(r domain.Record) bool {
	if !inSet(p.legalStatuses, r.LegalStatus) ||
		!inSet(p.types, r.Type) ||
		!inSet(p.regions, r.Region) ||
		!inSet(p.provinces, r.Province) ||
		!inSet(p.industries, r.Industry) {
		return false
	}
	if !p.capital.Contains(r.Capital) {
		return false
	}
	if !p.years.Contains(r.IncorporationYear) {
		return false
	}
	if p.balance != "" && r.BalanceFiled != p.balance {
		return false
	}
	if p.nameTerm != "" {
		if r.Name == "" || !strings.Contains(p.folder.String(r.Name), p.nameTerm) {
			return false
		}
	}
	return true
}

// ApplyFilters returns the records of t that satisfy every criterion, in their
// original order. t is not modified.
func ApplyFilters(t *domain.Table, c domain.FilterCriteria) *domain.Table {
	p := newPredicate(c)
	out := make([]domain.Record, 0, t.Len()/4)
	for _, r := range t.Records() {
		if p.match(r) {
			out = append(out, r)
		}
	}
	return t.Derive(slices.Clip(out))
}

// ProvinceOptionsForRegions returns the sorted distinct provinces found in the
// given regions, or in the whole table when no region is selected.
func ProvinceOptionsForRegions(t *domain.Table, regions []string) []string {
	set := toSet(regions)
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range t.Records() {
		if r.Province == "" || !inSet(set, r.Region) {
			continue
		}
		if _, ok := seen[r.Province]; ok {
			continue
		}
		seen[r.Province] = struct{}{}
		out = append(out, r.Province)
	}
	slices.Sort(out)
	return out
}

// DistinctValues returns the sorted distinct non-empty values of a field.
func DistinctValues(t *domain.Table, field domain.Field) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range t.Records() {
		v := r.Value(field)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
