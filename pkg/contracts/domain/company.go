package domain

import (
	"time"
)

// Record is one normalized row of the company registry.
// An empty string marks a cell that was blank in the source sheet.
type Record struct {
	Name              string     `json:"nombre"`
	LegalStatus       string     `json:"situacion_legal"`
	Type              string     `json:"tipo"`
	Region            string     `json:"region"`
	Province          string     `json:"provincia"`
	Industry          string     `json:"industria"`
	Capital           float64    `json:"capital_suscrito"`
	IncorporationDate *time.Time `json:"fecha_constitucion,omitempty"`
	IncorporationYear *int       `json:"anio_constitucion,omitempty"`
	Representative    string     `json:"representante"`
	BalanceFiled      string     `json:"presento_balance"`
	Neighborhood      string     `json:"barrio"`

	FileNumber string `json:"expediente,omitempty"`
	TaxID      string `json:"ruc,omitempty"`
	Canton     string `json:"canton,omitempty"`
	City       string `json:"ciudad,omitempty"`
}

// Field names a categorical column of a Record.
type Field string

const (
	FieldName           Field = "NOMBRE"
	FieldLegalStatus    Field = "SITUACION_LEGAL"
	FieldType           Field = "TIPO"
	FieldRegion         Field = "REGION"
	FieldProvince       Field = "PROVINCIA"
	FieldIndustry       Field = "INDUSTRIA"
	FieldRepresentative Field = "REPRESENTANTE"
	FieldBalanceFiled   Field = "PRESENTO_BALANCE"
	FieldNeighborhood   Field = "BARRIO"
)

// Value returns the string value of a categorical field.
func (r Record) Value(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldLegalStatus:
		return r.LegalStatus
	case FieldType:
		return r.Type
	case FieldRegion:
		return r.Region
	case FieldProvince:
		return r.Province
	case FieldIndustry:
		return r.Industry
	case FieldRepresentative:
		return r.Representative
	case FieldBalanceFiled:
		return r.BalanceFiled
	case FieldNeighborhood:
		return r.Neighborhood
	default:
		return ""
	}
}

// Table is an ordered, read-only collection of records.
// Filtering always produces a new Table; the receiver is never modified.
type Table struct {
	records []Record
	columns []string
}

// NewTable wraps records and the canonical column names they were built from.
func NewTable(records []Record, columns []string) *Table {
	if records == nil {
		records = []Record{}
	}
	return &Table{records: records, columns: columns}
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// IsEmpty reports whether the table has no records.
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// Records returns the records in source order. The slice must be treated as read-only.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	return t.records[:len(t.records):len(t.records)]
}

// Columns returns the canonical column names present in the source.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.columns...)
}

// Derive builds a table with the same columns and a different record set.
func (t *Table) Derive(records []Record) *Table {
	var cols []string
	if t != nil {
		cols = t.columns
	}
	return NewTable(records, cols)
}
