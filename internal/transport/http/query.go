package http

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	apierrors "registrydash/internal/errors"
	"registrydash/pkg/contracts/domain"
)

// Query parameters understood by the dashboard endpoints. Multi-valued
// criteria repeat the key: legal_status=A&legal_status=B.
const (
	paramLegalStatus = "legal_status"
	paramType        = "type"
	paramRegion      = "region"
	paramProvince    = "province"
	paramIndustry    = "industry"
	paramCapitalMin  = "capital_min"
	paramCapitalMax  = "capital_max"
	paramYearMin     = "year_min"
	paramYearMax     = "year_max"
	paramYears       = "years"
	paramBalance     = "balance"
	paramQuery       = "q"
	paramLimit       = "limit"
	paramShowAll     = "show_all"
	paramFormat      = "format"
	paramBOM         = "bom"
)

// yearsAny requests an unbounded year range, which still drops records
// without a known year.
const yearsAny = "any"

// ParseCriteria decodes filter criteria and paging from query parameters.
// Values are not checked against the registry; unknown values match nothing.
func ParseCriteria(q url.Values) (domain.FilterCriteria, domain.Page, error) {
	c := domain.FilterCriteria{
		LegalStatuses: values(q, paramLegalStatus),
		Types:         values(q, paramType),
		Regions:       values(q, paramRegion),
		Provinces:     values(q, paramProvince),
		Industries:    values(q, paramIndustry),
		BalanceFiled:  strings.TrimSpace(q.Get(paramBalance)),
		NameQuery:     q.Get(paramQuery),
	}

	capMin, err := floatParam(q, paramCapitalMin)
	if err != nil {
		return c, domain.Page{}, err
	}
	capMax, err := floatParam(q, paramCapitalMax)
	if err != nil {
		return c, domain.Page{}, err
	}
	if capMin != nil || capMax != nil {
		c.Capital = &domain.CapitalRange{Min: capMin, Max: capMax}
	}

	yearMin, err := intParam(q, paramYearMin)
	if err != nil {
		return c, domain.Page{}, err
	}
	yearMax, err := intParam(q, paramYearMax)
	if err != nil {
		return c, domain.Page{}, err
	}
	years := q.Get(paramYears)
	if years != "" && years != yearsAny {
		return c, domain.Page{}, apierrors.InvalidParameter(paramYears, years)
	}
	if yearMin != nil || yearMax != nil || years == yearsAny {
		c.Years = &domain.YearRange{Min: yearMin, Max: yearMax}
	}

	var page domain.Page
	if limit, err := intParam(q, paramLimit); err != nil {
		return c, domain.Page{}, err
	} else if limit != nil {
		page.Limit = *limit
	}
	if page.ShowAll, err = boolParam(q, paramShowAll); err != nil {
		return c, domain.Page{}, err
	}

	return c, page, nil
}

// values returns the non-blank values of a repeated key, or nil.
func values(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func floatParam(q url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, apierrors.InvalidParameter(key, raw)
	}
	return &v, nil
}

func intParam(q url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apierrors.InvalidParameter(key, raw)
	}
	return &v, nil
}

func boolParam(q url.Values, key string) (bool, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apierrors.InvalidParameter(key, raw)
	}
	return v, nil
}
