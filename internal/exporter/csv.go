package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"registrydash/internal/infrastructure"
	"registrydash/pkg/contracts/domain"
)

// utf8BOM helps Excel recognize UTF-8 output.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Column projects one record field into the export.
type Column struct {
	Header string
	Value  func(domain.Record) string
}

// TableColumns is the export projection, in output order.
var TableColumns = []Column{
	{Header: "Nombre", Value: func(r domain.Record) string { return r.Name }},
	{Header: "Situación Legal", Value: func(r domain.Record) string { return r.LegalStatus }},
	{Header: "Tipo", Value: func(r domain.Record) string { return r.Type }},
	{Header: "Provincia", Value: func(r domain.Record) string { return r.Province }},
	{Header: "Industria", Value: func(r domain.Record) string { return r.Industry }},
	{Header: "Capital Suscrito (USD)", Value: func(r domain.Record) string { return formatFloat(r.Capital) }},
	{Header: "Representante", Value: func(r domain.Record) string { return r.Representative }},
}

// Headers returns the display labels of TableColumns.
func Headers() []string {
	out := make([]string, len(TableColumns))
	for i, c := range TableColumns {
		out[i] = c.Header
	}
	return out
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: infrastructure.WithComponent(logger, "csv_writer")}
}

// WriteTable writes the projected records of t, preceded by a header row.
func (w *CSVWriter) WriteTable(out io.Writer, t *domain.Table, opts WriteOptions) error {
	if opts.BOMPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(Headers()); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	row := make([]string, len(TableColumns))
	for i, record := range t.Records() {
		for j, c := range TableColumns {
			row[j] = c.Value(record)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	w.logger.Debug("CSV written",
		slog.Int("record_count", t.Len()),
		slog.Bool("bom", opts.BOMPrefix))
	return nil
}

// WriteFile writes t to path, creating parent directories as needed.
func (w *CSVWriter) WriteFile(path string, t *domain.Table, opts WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", path),
		slog.Int("record_count", t.Len()))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := w.WriteTable(file, t, opts); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
