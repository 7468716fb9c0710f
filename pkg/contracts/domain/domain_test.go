package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapitalRangeContains(t *testing.T) {
	tests := []struct {
		name string
		r    *CapitalRange
		v    float64
		want bool
	}{
		{"nil range", nil, 5, true},
		{"open bounds", &CapitalRange{}, -1, true},
		{"inside", &CapitalRange{Min: Float64(1), Max: Float64(10)}, 5, true},
		{"lower bound inclusive", &CapitalRange{Min: Float64(1)}, 1, true},
		{"upper bound inclusive", &CapitalRange{Max: Float64(10)}, 10, true},
		{"below", &CapitalRange{Min: Float64(1)}, 0.99, false},
		{"above", &CapitalRange{Max: Float64(10)}, 10.01, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Contains(tt.v))
		})
	}
}

func TestYearRangeContains(t *testing.T) {
	tests := []struct {
		name string
		r    *YearRange
		year *int
		want bool
	}{
		{"nil range keeps unknown year", nil, nil, true},
		{"unbounded range drops unknown year", &YearRange{}, nil, false},
		{"unbounded range keeps known year", &YearRange{}, Int(1950), true},
		{"inside", &YearRange{Min: Int(2000), Max: Int(2010)}, Int(2005), true},
		{"bounds inclusive", &YearRange{Min: Int(2000), Max: Int(2010)}, Int(2010), true},
		{"before", &YearRange{Min: Int(2000)}, Int(1999), false},
		{"after", &YearRange{Max: Int(2010)}, Int(2011), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Contains(tt.year))
		})
	}
}

func TestTable(t *testing.T) {
	t.Run("nil table", func(t *testing.T) {
		var tbl *Table
		assert.Equal(t, 0, tbl.Len())
		assert.True(t, tbl.IsEmpty())
		assert.Nil(t, tbl.Records())
		assert.Nil(t, tbl.Columns())
		assert.Equal(t, 1, tbl.Derive([]Record{{Name: "A"}}).Len())
	})

	t.Run("records cannot grow the source", func(t *testing.T) {
		tbl := NewTable([]Record{{Name: "A"}, {Name: "B"}}, []string{"NOMBRE"})
		rows := tbl.Records()
		_ = append(rows, Record{Name: "C"})
		assert.Equal(t, 2, tbl.Len())
	})

	t.Run("columns are copied", func(t *testing.T) {
		tbl := NewTable(nil, []string{"NOMBRE", "TIPO"})
		cols := tbl.Columns()
		cols[0] = "X"
		assert.Equal(t, []string{"NOMBRE", "TIPO"}, tbl.Columns())
		assert.NotNil(t, tbl.Records())
	})

	t.Run("derive keeps columns", func(t *testing.T) {
		tbl := NewTable([]Record{{Name: "A"}}, []string{"NOMBRE"})
		d := tbl.Derive([]Record{{Name: "B"}, {Name: "C"}})
		assert.Equal(t, 2, d.Len())
		assert.Equal(t, []string{"NOMBRE"}, d.Columns())
		assert.Equal(t, 1, tbl.Len())
	})
}

func TestRecordValue(t *testing.T) {
	r := Record{
		Name: "ALFA", LegalStatus: "ACTIVA", Type: "ANÓNIMA", Region: "SIERRA",
		Province: "PICHINCHA", Industry: "COMERCIO", Representative: "PEREZ",
		BalanceFiled: "SI", Neighborhood: "CENTRO",
	}
	assert.Equal(t, "ALFA", r.Value(FieldName))
	assert.Equal(t, "ACTIVA", r.Value(FieldLegalStatus))
	assert.Equal(t, "ANÓNIMA", r.Value(FieldType))
	assert.Equal(t, "SIERRA", r.Value(FieldRegion))
	assert.Equal(t, "PICHINCHA", r.Value(FieldProvince))
	assert.Equal(t, "COMERCIO", r.Value(FieldIndustry))
	assert.Equal(t, "PEREZ", r.Value(FieldRepresentative))
	assert.Equal(t, "SI", r.Value(FieldBalanceFiled))
	assert.Equal(t, "CENTRO", r.Value(FieldNeighborhood))
	assert.Equal(t, "", r.Value(Field("OTRO")))
}

func TestNewRecordPage(t *testing.T) {
	tbl := NewTable([]Record{{Name: "A"}, {Name: "B"}, {Name: "C"}}, nil)

	tests := []struct {
		name      string
		table     *Table
		limit     int
		wantRows  int
		truncated bool
	}{
		{"under limit", tbl, 5, 3, false},
		{"at limit", tbl, 3, 3, false},
		{"over limit", tbl, 2, 2, true},
		{"no limit", tbl, 0, 3, false},
		{"empty table", NewTable(nil, nil), 5, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewRecordPage(tt.table, tt.limit)
			require.NotNil(t, page.Rows)
			assert.Len(t, page.Rows, tt.wantRows)
			assert.Equal(t, tt.wantRows, page.RowCount)
			assert.Equal(t, tt.table.Len(), page.Total)
			assert.Equal(t, tt.truncated, page.Truncated)
		})
	}
}

func TestParseChartKind(t *testing.T) {
	for _, k := range ChartKinds {
		got, err := ParseChartKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
		assert.NotEmpty(t, k.Title())
	}

	_, err := ParseChartKind("radar")
	assert.True(t, errors.Is(err, ErrUnknownChartKind))
	assert.Contains(t, err.Error(), `"radar"`)
}

func TestChartSetIsEmpty(t *testing.T) {
	var empty ChartSet
	for _, k := range ChartKinds {
		assert.True(t, empty.IsEmpty(k), k)
	}

	full := ChartSet{
		TopIndustries: []CategoryCount{{Label: "A", Count: 1}},
		Provinces:     []CategoryCount{{Label: "A", Count: 1}},
		LegalStatus:   []CategoryCount{{Label: "A", Count: 1}},
		Types:         []CategoryCount{{Label: "A", Count: 1}},
		CapitalBins:   []HistogramBin{{Lower: 0, Upper: 1, Count: 1}},
		TopCompanies:  []CapitalEntry{{Name: "A", Capital: 1}},
	}
	for _, k := range ChartKinds {
		assert.False(t, full.IsEmpty(k), k)
	}
	assert.True(t, full.IsEmpty(ChartKind("radar")))
}

func TestDefaultChartLimits(t *testing.T) {
	assert.Equal(t, ChartLimits{TopIndustries: 10, TopProvinces: 15, TopCompanies: 10, HistogramBins: 40}, DefaultChartLimits())
}
