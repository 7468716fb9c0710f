package domain

// EmptyResultMessage is shown when no record survives the filters.
const EmptyResultMessage = "No hay registros con los filtros actuales. Ajusta los filtros del panel lateral."

// NoCapitalMessage replaces the capital histogram when no record has positive capital.
const NoCapitalMessage = "No hay datos de capital para mostrar el histograma."

// Page controls how many filtered rows are returned.
type Page struct {
	Limit   int  `json:"limit,omitempty" validate:"gte=0,lte=1000000"`
	ShowAll bool `json:"show_all,omitempty"`
}

// RecordPage is the slice of filtered records shown in the table view.
// Total counts every filtered record; RowCount only those in Rows.
type RecordPage struct {
	Rows      []Record `json:"rows"`
	RowCount  int      `json:"row_count"`
	Total     int      `json:"total"`
	Truncated bool     `json:"truncated"`
}

// NewRecordPage returns the first limit records of t, or all of them when
// limit is not positive.
func NewRecordPage(t *Table, limit int) RecordPage {
	rows := t.Records()
	total := len(rows)
	if limit > 0 && total > limit {
		rows = rows[:limit]
	}
	if rows == nil {
		rows = []Record{}
	}
	return RecordPage{
		Rows:      rows,
		RowCount:  len(rows),
		Total:     total,
		Truncated: len(rows) < total,
	}
}

// Dashboard is the outcome of one filter evaluation.
type Dashboard struct {
	Empty   bool      `json:"empty"`
	Message string    `json:"message,omitempty"`
	Metrics *Metrics  `json:"metrics,omitempty"`
	Charts  *ChartSet `json:"charts,omitempty"`
	RecordPage
}
