package dataprocessing

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"registrydash/internal/infrastructure"
	"registrydash/internal/validation"
	"registrydash/pkg/contracts/domain"
)

const utf8BOM = "\ufeff"

// RawTable is a sheet as read from disk: one header row and string cells.
// Rows are padded to the header width.
type RawTable struct {
	Source  string
	Sheet   string
	Headers []string
	Rows    [][]string
}

// LoadOptions selects what to read from the source file.
type LoadOptions struct {
	// Sheet is the worksheet name; empty means the first sheet.
	Sheet string
}

// Loader reads registry workbooks from disk.
type Loader struct {
	logger    *slog.Logger
	validator *validation.FileValidator
}

// NewLoader creates a loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "loader")
	return &Loader{
		logger:    logger,
		validator: validation.NewFileValidator(logger),
	}
}

// LoadTable reads and normalizes the registry in one step.
func (l *Loader) LoadTable(ctx context.Context, path string, opts LoadOptions) (*domain.Table, NormalizeReport, error) {
	raw, err := l.Load(ctx, path, opts)
	if err != nil {
		return nil, NormalizeReport{}, err
	}
	return Normalize(raw, l.logger)
}

// Load reads the header row and data rows of an xlsx or csv file.
func (l *Loader) Load(ctx context.Context, path string, opts LoadOptions) (*RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	if err := l.validator.ValidateFile(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	var (
		raw *RawTable
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		raw, err = l.loadWorkbook(ctx, path, opts)
	case ".csv":
		raw, err = l.loadCSV(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "Source file read",
		slog.String("file", path),
		slog.String("sheet", raw.Sheet),
		slog.Int("columns", len(raw.Headers)),
		slog.Int("rows", len(raw.Rows)),
		slog.Duration("elapsed", time.Since(start)))

	return raw, nil
}

func (l *Loader) loadWorkbook(ctx context.Context, path string, opts LoadOptions) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptySheet
		}
		sheet = sheets[0]
	}

	// Raw values keep dates as serial numbers and capital unformatted.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	return l.buildRawTable(ctx, path, sheet, rows)
}

func (l *Loader) loadCSV(ctx context.Context, path string) (*RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		rows = append(rows, record)
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	}

	return l.buildRawTable(ctx, path, "", rows)
}

func (l *Loader) buildRawTable(ctx context.Context, path, sheet string, rows [][]string) (*RawTable, error) {
	if len(rows) == 0 || isBlankRow(rows[0]) {
		return nil, fmt.Errorf("%w: %s", ErrEmptySheet, path)
	}

	headers := rows[0]
	raw := &RawTable{
		Source:  path,
		Sheet:   sheet,
		Headers: headers,
		Rows:    make([][]string, 0, len(rows)-1),
	}

	skipped := 0
	for i, row := range rows[1:] {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if isBlankRow(row) {
			skipped++
			continue
		}
		raw.Rows = append(raw.Rows, padRow(row, len(headers)))
	}

	if skipped > 0 {
		l.logger.DebugContext(ctx, "Skipped blank rows",
			slog.String("file", path),
			slog.Int("count", skipped))
	}

	return raw, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
