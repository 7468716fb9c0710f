package commands

import (
	"github.com/spf13/cobra"

	"registrydash/pkg/contracts/domain"
)

// criteriaFlags mirrors domain.FilterCriteria on the command line.
type criteriaFlags struct {
	legalStatuses []string
	types         []string
	regions       []string
	provinces     []string
	industries    []string
	capitalMin    float64
	capitalMax    float64
	yearMin       int
	yearMax       int
	balance       string
	name          string
}

func (f *criteriaFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringSliceVar(&f.legalStatuses, "legal-status", nil, "legal status to include (repeatable)")
	fl.StringSliceVar(&f.types, "type", nil, "company type to include (repeatable)")
	fl.StringSliceVar(&f.regions, "region", nil, "region to include (repeatable)")
	fl.StringSliceVar(&f.provinces, "province", nil, "province to include (repeatable)")
	fl.StringSliceVar(&f.industries, "industry", nil, "industry to include (repeatable)")
	fl.Float64Var(&f.capitalMin, "capital-min", 0, "minimum subscribed capital")
	fl.Float64Var(&f.capitalMax, "capital-max", 0, "maximum subscribed capital")
	fl.IntVar(&f.yearMin, "year-min", 0, "earliest incorporation year")
	fl.IntVar(&f.yearMax, "year-max", 0, "latest incorporation year")
	fl.StringVar(&f.balance, "balance", "", "initial balance filed: SI, NO or Todos")
	fl.StringVar(&f.name, "name", "", "case-insensitive company name substring")
}

// criteria builds the filter from the flags that were set. Unset bounds stay open.
func (f *criteriaFlags) criteria(cmd *cobra.Command) domain.FilterCriteria {
	fl := cmd.Flags()
	c := domain.FilterCriteria{
		LegalStatuses: f.legalStatuses,
		Types:         f.types,
		Regions:       f.regions,
		Provinces:     f.provinces,
		Industries:    f.industries,
		BalanceFiled:  f.balance,
		NameQuery:     f.name,
	}

	if fl.Changed("capital-min") || fl.Changed("capital-max") {
		c.Capital = &domain.CapitalRange{}
		if fl.Changed("capital-min") {
			c.Capital.Min = domain.Float64(f.capitalMin)
		}
		if fl.Changed("capital-max") {
			c.Capital.Max = domain.Float64(f.capitalMax)
		}
	}
	if fl.Changed("year-min") || fl.Changed("year-max") {
		c.Years = &domain.YearRange{}
		if fl.Changed("year-min") {
			c.Years.Min = domain.Int(f.yearMin)
		}
		if fl.Changed("year-max") {
			c.Years.Max = domain.Int(f.yearMax)
		}
	}
	return c
}
