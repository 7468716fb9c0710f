package exporter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrydash/internal/shared/testutil"
	"registrydash/pkg/contracts/domain"
)

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVWriter_WriteTable(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	writer := NewCSVWriter(logger)

	table := testutil.NewTable(
		testutil.NewRecord("Comercial Andina, S.A.", testutil.WithCapital(1234.5), testutil.WithLocation("SIERRA", "AZUAY")),
		testutil.NewRecord("PESQUERA \"EL FARO\"", testutil.WithCapital(0), testutil.WithIndustry("PESCA")),
	)

	var buf bytes.Buffer
	require.NoError(t, writer.WriteTable(&buf, table, WriteOptions{}))

	rows := readCSV(t, buf.Bytes())
	require.Len(t, rows, 3)
	assert.Equal(t, []string{
		"Nombre", "Situación Legal", "Tipo", "Provincia", "Industria", "Capital Suscrito (USD)", "Representante",
	}, rows[0])
	assert.Equal(t, []string{
		"Comercial Andina, S.A.", "ACTIVA", "ANÓNIMA", "AZUAY", "COMERCIO", "1234.50", "PEREZ JUAN",
	}, rows[1])
	assert.Equal(t, "PESQUERA \"EL FARO\"", rows[2][0])
	assert.Equal(t, "PESCA", rows[2][4])
	assert.Equal(t, "0.00", rows[2][5])
	assert.False(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))
}

func TestCSVWriter_WriteTable_BOM(t *testing.T) {
	writer := NewCSVWriter(nil)

	var buf bytes.Buffer
	require.NoError(t, writer.WriteTable(&buf, testutil.SampleTable(), WriteOptions{BOMPrefix: true}))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, utf8BOM))

	rows := readCSV(t, data[len(utf8BOM):])
	assert.Len(t, rows, testutil.SampleTable().Len()+1)
	assert.Equal(t, "Nombre", rows[0][0])
}

func TestCSVWriter_WriteTable_Empty(t *testing.T) {
	writer := NewCSVWriter(nil)

	var buf bytes.Buffer
	require.NoError(t, writer.WriteTable(&buf, domain.NewTable(nil, nil), WriteOptions{}))

	rows := readCSV(t, buf.Bytes())
	require.Len(t, rows, 1)
	assert.Equal(t, Headers(), rows[0])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCSVWriter_WriteTable_WriterError(t *testing.T) {
	writer := NewCSVWriter(nil)

	err := writer.WriteTable(failingWriter{}, testutil.SampleTable(), WriteOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	err = writer.WriteTable(failingWriter{}, testutil.SampleTable(), WriteOptions{BOMPrefix: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOM")
}

func TestCSVWriter_WriteFile(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	writer := NewCSVWriter(logger)

	path := filepath.Join(t.TempDir(), "reports", "nested", "directorio_filtrado.csv")
	require.NoError(t, writer.WriteFile(path, testutil.SampleTable(), WriteOptions{BOMPrefix: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, utf8BOM))
	assert.Equal(t, testutil.SampleTable().Len()+1, strings.Count(string(data), "\n"))
	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Writing CSV file")
}

func TestCSVWriter_WriteFile_InvalidPath(t *testing.T) {
	writer := NewCSVWriter(nil)

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := writer.WriteFile(filepath.Join(blocker, "out.csv"), testutil.SampleTable(), WriteOptions{})
	assert.Error(t, err)
}
