package domain

// BalanceAll is the balance-filed option that disables the balance filter.
const BalanceAll = "Todos"

// NotInformed replaces missing neighborhoods.
const NotInformed = "No informado"

// FilterCriteria is the set of user selections applied to the registry.
// Every criterion is combined with AND; an empty selection imposes no constraint.
type FilterCriteria struct {
	LegalStatuses []string      `json:"legal_statuses,omitempty" validate:"max=500,dive,max=200"`
	Types         []string      `json:"types,omitempty" validate:"max=500,dive,max=200"`
	Regions       []string      `json:"regions,omitempty" validate:"max=500,dive,max=200"`
	Provinces     []string      `json:"provinces,omitempty" validate:"max=500,dive,max=200"`
	Industries    []string      `json:"industries,omitempty" validate:"max=500,dive,max=300"`
	Capital       *CapitalRange `json:"capital,omitempty"`
	Years         *YearRange    `json:"years,omitempty"`
	BalanceFiled  string        `json:"balance_filed,omitempty" validate:"max=200"`
	NameQuery     string        `json:"name_query,omitempty" validate:"max=200"`
}

// CapitalRange is an inclusive subscribed-capital interval. A nil bound is open.
type CapitalRange struct {
	Min *float64 `json:"min,omitempty" validate:"omitempty,gte=0"`
	Max *float64 `json:"max,omitempty" validate:"omitempty,gte=0"`
}

// Contains reports whether v lies within the range.
func (r *CapitalRange) Contains(v float64) bool {
	if r == nil {
		return true
	}
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// YearRange is an inclusive incorporation-year interval. A nil bound is open,
// but records without a year never fall inside any YearRange.
type YearRange struct {
	Min *int `json:"min,omitempty" validate:"omitempty,gte=1800,lte=2200"`
	Max *int `json:"max,omitempty" validate:"omitempty,gte=1800,lte=2200"`
}

// Contains reports whether year lies within the range.
func (r *YearRange) Contains(year *int) bool {
	if r == nil {
		return true
	}
	if year == nil {
		return false
	}
	if r.Min != nil && *year < *r.Min {
		return false
	}
	if r.Max != nil && *year > *r.Max {
		return false
	}
	return true
}

// FilterOptions lists the values a caller can choose from.
type FilterOptions struct {
	LegalStatuses []string      `json:"legal_statuses"`
	Types         []string      `json:"types"`
	Regions       []string      `json:"regions"`
	Provinces     []string      `json:"provinces"`
	Industries    []string      `json:"industries"`
	BalanceFiled  []string      `json:"balance_filed"`
	Capital       CapitalBounds `json:"capital"`
	Years         *YearBounds   `json:"years,omitempty"`
}

// CapitalBounds describes the capital slider. SliderMax is the high quantile
// of the data; Max is the true maximum used when the slider is pushed to the end.
type CapitalBounds struct {
	Min       float64 `json:"min"`
	SliderMax float64 `json:"slider_max"`
	Max       float64 `json:"max"`
}

// YearBounds is the span of known incorporation years.
type YearBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
