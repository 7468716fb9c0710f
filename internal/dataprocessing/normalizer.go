package dataprocessing

import (
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"registrydash/pkg/contracts/domain"
)

// NormalizeReport summarizes what normalization had to repair.
type NormalizeReport struct {
	Rows             int  `json:"rows"`
	DateFailures     int  `json:"date_failures"`
	MissingDates     int  `json:"missing_dates"`
	CapitalCoerced   int  `json:"capital_coerced"`
	NeighborhoodFill int  `json:"neighborhood_filled"`
	IndustryFallback bool `json:"industry_fallback"`
}

// ParseWarnings is the number of cells replaced because they could not be parsed.
func (r NormalizeReport) ParseWarnings() int {
	return r.DateFailures + r.CapitalCoerced
}

// CanonicalHeader returns the canonical name of a sheet header.
func CanonicalHeader(header string) string {
	h := norm.NFC.String(strings.TrimSpace(header))
	if renamed, ok := ColumnRename[h]; ok {
		return renamed
	}
	return h
}

// Normalize renames, validates and types a raw sheet.
// Schema problems are fatal; unparseable cells are replaced and counted.
func Normalize(raw *RawTable, logger *slog.Logger) (*domain.Table, NormalizeReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var report NormalizeReport

	if raw == nil || len(raw.Headers) == 0 {
		return nil, report, ErrEmptySheet
	}

	idx := make(map[string]int, len(raw.Headers))
	columns := make([]string, 0, len(raw.Headers)+1)
	for i, h := range raw.Headers {
		name := CanonicalHeader(h)
		if name == "" {
			continue
		}
		if _, dup := idx[name]; dup {
			logger.Warn("Duplicate column ignored",
				slog.String("column", name),
				slog.Int("position", i))
			continue
		}
		idx[name] = i
		columns = append(columns, name)
	}

	if _, ok := idx[ColIndustry]; !ok {
		pos, fallback := idx[ColCIIULevel1]
		if !fallback {
			return nil, report, &SchemaError{
				Column: ColIndustry,
				Reason: "column and its fallback CIIU NIVEL 1 are both absent",
			}
		}
		logger.Warn("Column INDUSTRIA not found; falling back to CIIU NIVEL 1",
			slog.String("source", raw.Source))
		idx[ColIndustry] = pos
		columns = append(columns, ColIndustry)
		report.IndustryFallback = true
	}

	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, report, &SchemaError{Column: col}
		}
	}

	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]domain.Record, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		rec := domain.Record{
			Name:           cell(row, ColName),
			LegalStatus:    cell(row, ColLegalStatus),
			Type:           cell(row, ColType),
			Region:         cell(row, ColRegion),
			Province:       cell(row, ColProvince),
			Industry:       cell(row, ColIndustry),
			Representative: cell(row, ColRepresentative),
			BalanceFiled:   cell(row, ColBalanceFiled),
			Neighborhood:   cell(row, ColNeighborhood),
			FileNumber:     cell(row, ColFileNumber),
			TaxID:          cell(row, ColTaxID),
			Canton:         cell(row, ColCanton),
			City:           cell(row, ColCity),
		}

		dateCell := cell(row, ColIncorporationDate)
		if t, ok := parseDate(dateCell); ok {
			year := t.Year()
			rec.IncorporationDate = &t
			rec.IncorporationYear = &year
		} else if dateCell == "" {
			report.MissingDates++
		} else {
			report.DateFailures++
		}

		capital, coerced := parseCapital(cell(row, ColCapital))
		rec.Capital = capital
		if coerced {
			report.CapitalCoerced++
		}

		if rec.Neighborhood == "" {
			rec.Neighborhood = domain.NotInformed
			report.NeighborhoodFill++
		}

		records = append(records, rec)
	}
	report.Rows = len(records)

	logger.Info("Registry normalized",
		slog.String("source", raw.Source),
		slog.Int("rows", report.Rows),
		slog.Int("date_failures", report.DateFailures),
		slog.Int("missing_dates", report.MissingDates),
		slog.Int("capital_coerced", report.CapitalCoerced),
		slog.Bool("industry_fallback", report.IndustryFallback))

	return domain.NewTable(records, columns), report, nil
}

