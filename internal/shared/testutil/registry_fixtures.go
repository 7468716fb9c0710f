package testutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"registrydash/pkg/contracts/domain"
)

// FixtureSheet is the worksheet name used by generated workbooks.
const FixtureSheet = "Directorio"

// SourceHeaders are the headers of the published registry workbook, in order.
var SourceHeaders = []string{
	"No. FILA", "EXPEDIENTE", "RUC", "NOMBRE", "SITUACIÓN LEGAL",
	"FECHA_CONSTITUCION", "TIPO", "PAÍS", "REGIÓN", "PROVINCIA",
	"CANTÓN", "CIUDAD", "CALLE", "NÚMERO", "INTERSECCIÓN",
	"BARRIO", "TELÉFONO", "REPRESENTANTE", "CARGO", "CAPITAL SUSCRITO",
	"CIIU NIVEL 1", "INDUSTRIA", "CIIU NIVEL 6", "ÚLTIMO BALANCE",
	"PRESENTÓ BALANCE INICIAL", "FECHA PRESENTACIÓN BALANCE INICIAL",
}

// SourceRow maps a source header to a cell value. Missing headers stay blank.
type SourceRow map[string]any

// WithoutHeaders returns SourceHeaders minus the given names.
func WithoutHeaders(names ...string) []string {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	out := make([]string, 0, len(SourceHeaders))
	for _, h := range SourceHeaders {
		if !drop[h] {
			out = append(out, h)
		}
	}
	return out
}

// CompanyRow returns a complete source row.
func CompanyRow(name, region, province string, capital any, founded any) SourceRow {
	return SourceRow{
		"NOMBRE":                   name,
		"SITUACIÓN LEGAL":          "ACTIVA",
		"FECHA_CONSTITUCION":       founded,
		"TIPO":                     "ANÓNIMA",
		"PAÍS":                     "ECUADOR",
		"REGIÓN":                   region,
		"PROVINCIA":                province,
		"CIUDAD":                   province,
		"BARRIO":                   "CENTRO",
		"REPRESENTANTE":            "PEREZ JUAN",
		"CAPITAL SUSCRITO":         capital,
		"CIIU NIVEL 1":             "G - COMERCIO",
		"INDUSTRIA":                "COMERCIO AL POR MAYOR",
		"PRESENTÓ BALANCE INICIAL": "SI",
	}
}

// WriteWorkbook writes an xlsx file with one header row and returns its path.
func WriteWorkbook(t *testing.T, headers []string, rows []SourceRow) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", FixtureSheet))

	for c, h := range headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(FixtureSheet, cell, h))
	}

	for r, row := range rows {
		for c, h := range headers {
			v, ok := row[h]
			if !ok || v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(FixtureSheet, cell, v))
		}
	}

	path := filepath.Join(t.TempDir(), "directorio.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// WriteCSV writes the rows as a UTF-8 csv file and returns its path.
func WriteCSV(t *testing.T, headers []string, rows []SourceRow, withBOM bool) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "directorio.csv")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	if withBOM {
		_, err = file.Write([]byte{0xEF, 0xBB, 0xBF})
		require.NoError(t, err)
	}

	w := csv.NewWriter(file)
	require.NoError(t, w.Write(headers))
	for _, row := range rows {
		record := make([]string, len(headers))
		for i, h := range headers {
			if v, ok := row[h]; ok && v != nil {
				record[i] = fmt.Sprint(v)
			}
		}
		require.NoError(t, w.Write(record))
	}
	w.Flush()
	require.NoError(t, w.Error())
	return path
}

// RecordOption customizes a fixture record.
type RecordOption func(*domain.Record)

// NewRecord builds a normalized record with sensible defaults.
func NewRecord(name string, opts ...RecordOption) domain.Record {
	year := 2010
	date := time.Date(year, time.March, 15, 0, 0, 0, 0, time.UTC)
	r := domain.Record{
		Name:              name,
		LegalStatus:       "ACTIVA",
		Type:              "ANÓNIMA",
		Region:            "SIERRA",
		Province:          "PICHINCHA",
		Industry:          "COMERCIO",
		Capital:           800,
		IncorporationDate: &date,
		IncorporationYear: &year,
		Representative:    "PEREZ JUAN",
		BalanceFiled:      "SI",
		Neighborhood:      domain.NotInformed,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithCapital sets the subscribed capital.
func WithCapital(v float64) RecordOption {
	return func(r *domain.Record) { r.Capital = v }
}

// WithYear sets the incorporation date to January 1st of year.
func WithYear(year int) RecordOption {
	return func(r *domain.Record) {
		y := year
		d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		r.IncorporationYear = &y
		r.IncorporationDate = &d
	}
}

// WithoutYear clears the incorporation date.
func WithoutYear() RecordOption {
	return func(r *domain.Record) {
		r.IncorporationYear = nil
		r.IncorporationDate = nil
	}
}

// WithLocation sets region and province.
func WithLocation(region, province string) RecordOption {
	return func(r *domain.Record) {
		r.Region = region
		r.Province = province
	}
}

// WithStatus sets the legal status.
func WithStatus(status string) RecordOption {
	return func(r *domain.Record) { r.LegalStatus = status }
}

// WithType sets the company type.
func WithType(typ string) RecordOption {
	return func(r *domain.Record) { r.Type = typ }
}

// WithIndustry sets the industry.
func WithIndustry(industry string) RecordOption {
	return func(r *domain.Record) { r.Industry = industry }
}

// WithBalance sets the balance-filed flag.
func WithBalance(v string) RecordOption {
	return func(r *domain.Record) { r.BalanceFiled = v }
}

// NewTable wraps records in a table.
func NewTable(records ...domain.Record) *domain.Table {
	return domain.NewTable(records, nil)
}

// SampleTable is a small registry spanning three regions.
func SampleTable() *domain.Table {
	return NewTable(
		NewRecord("PETROECUADOR EP", WithLocation("SIERRA", "PICHINCHA"), WithCapital(2_000_000),
			WithIndustry("EXPLOTACIÓN DE MINAS"), WithType("ECONOMÍA MIXTA"), WithYear(1989)),
		NewRecord("Comercial Andina S.A.", WithLocation("SIERRA", "AZUAY"), WithCapital(500), WithYear(2005)),
		NewRecord("PESQUERA DEL PACIFICO", WithLocation("COSTA", "MANABI"), WithCapital(0),
			WithIndustry("PESCA"), WithoutYear(), WithBalance("NO")),
		NewRecord("EXPORTADORA GUAYAS", WithLocation("COSTA", "GUAYAS"), WithCapital(10_000),
			WithStatus("DISOLUC. LIQUIDAC. OFICIO INSC. EN RM"), WithYear(2015)),
		NewRecord("AMAZONIA VERDE CIA. LTDA.", WithLocation("AMAZONIA", "NAPO"), WithCapital(400),
			WithType("RESPONSABILIDAD LIMITADA"), WithIndustry("AGRICULTURA"), WithYear(2019), WithBalance("NO")),
		NewRecord("Constructora Quito", WithLocation("SIERRA", "PICHINCHA"), WithCapital(1_500),
			WithIndustry("CONSTRUCCIÓN"), WithYear(2012)),
	)
}
