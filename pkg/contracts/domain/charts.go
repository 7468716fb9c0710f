package domain

import (
	"errors"
	"fmt"
)

// ChartKind identifies one of the dashboard views.
type ChartKind string

const (
	ChartIndustries       ChartKind = "industries"
	ChartProvinces        ChartKind = "provinces"
	ChartLegalStatus      ChartKind = "legal-status"
	ChartTypes            ChartKind = "types"
	ChartCapitalHistogram ChartKind = "capital-histogram"
	ChartTopCapital       ChartKind = "top-capital"
)

// ChartKinds lists every view in display order.
var ChartKinds = []ChartKind{
	ChartIndustries,
	ChartProvinces,
	ChartLegalStatus,
	ChartTypes,
	ChartCapitalHistogram,
	ChartTopCapital,
}

// ErrUnknownChartKind is returned for an identifier outside ChartKinds.
var ErrUnknownChartKind = errors.New("unknown chart kind")

// ParseChartKind validates a chart identifier.
func ParseChartKind(s string) (ChartKind, error) {
	for _, k := range ChartKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownChartKind, s)
}

// Title returns the display title of the view.
func (k ChartKind) Title() string {
	switch k {
	case ChartIndustries:
		return "Top 10 Industrias"
	case ChartProvinces:
		return "Empresas por Provincia (Top 15)"
	case ChartLegalStatus:
		return "Distribución por Situación Legal"
	case ChartTypes:
		return "Distribución por Tipo de Empresa"
	case ChartCapitalHistogram:
		return "Distribución de Capital Suscrito"
	case ChartTopCapital:
		return "Top 10 Empresas por Capital Suscrito"
	default:
		return string(k)
	}
}

// CategoryCount is the number of records carrying one category value.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HistogramBin counts values in [Lower, Upper); the last bin also includes Upper.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// CapitalEntry pairs a company name with its subscribed capital.
type CapitalEntry struct {
	Name    string  `json:"name"`
	Capital float64 `json:"capital"`
}

// ChartSet holds the six aggregate views for a filtered table.
type ChartSet struct {
	TopIndustries  []CategoryCount `json:"top_industries"`
	Provinces      []CategoryCount `json:"provinces"`
	LegalStatus    []CategoryCount `json:"legal_status"`
	Types          []CategoryCount `json:"types"`
	CapitalBins    []HistogramBin  `json:"capital_histogram"`
	TopCompanies   []CapitalEntry  `json:"top_companies"`
	HistogramEmpty bool            `json:"histogram_empty"`
}

// IsEmpty reports whether the view for kind has nothing to draw.
func (c ChartSet) IsEmpty(kind ChartKind) bool {
	switch kind {
	case ChartIndustries:
		return len(c.TopIndustries) == 0
	case ChartProvinces:
		return len(c.Provinces) == 0
	case ChartLegalStatus:
		return len(c.LegalStatus) == 0
	case ChartTypes:
		return len(c.Types) == 0
	case ChartCapitalHistogram:
		return len(c.CapitalBins) == 0
	case ChartTopCapital:
		return len(c.TopCompanies) == 0
	default:
		return true
	}
}

// ChartLimits sizes the top-N and histogram views.
type ChartLimits struct {
	TopIndustries int
	TopProvinces  int
	TopCompanies  int
	HistogramBins int
}

// DefaultChartLimits returns the standard dashboard sizes.
func DefaultChartLimits() ChartLimits {
	return ChartLimits{
		TopIndustries: 10,
		TopProvinces:  15,
		TopCompanies:  10,
		HistogramBins: 40,
	}
}
