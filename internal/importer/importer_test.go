package importer

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sheetOf(t *testing.T, lines [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	for i, cells := range lines {
		for j, cell := range cells {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", name, cell))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestParse_SpanishHeadings(t *testing.T) {
	buf := sheetOf(t, [][]string{
		{"Fecha", "Nombre", "Cantidad", "Categoría", "Descripción", "Total"},
		{"2025-03-05", "Supermercado", "-42.50", "Comida", "compra semanal", "957.50"},
	})

	rows, rowErrs, err := Parse(buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 2, row.Line)
	assert.Equal(t, "2025-03-05", row.Date.Format("2006-01-02"))
	assert.Equal(t, "Supermercado", row.Name)
	assert.Equal(t, "-42.5", row.Amount.String())
	assert.Equal(t, "Comida", row.Category)
	assert.Equal(t, "compra semanal", row.Description)
	require.True(t, row.Balance.Valid)
	assert.Equal(t, "957.5", row.Balance.Decimal.String())
}

func TestParse_EnglishHeadings(t *testing.T) {
	buf := sheetOf(t, [][]string{
		{"Date", "Name", "Amount", "Category"},
		{"15/03/2025", "Rent", "-800", "Housing"},
	})

	rows, rowErrs, err := Parse(buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, "2025-03-15", rows[0].Date.Format("2006-01-02"))
	assert.False(t, rows[0].Balance.Valid)
}

func TestParse_SerialDate(t *testing.T) {
	buf := sheetOf(t, [][]string{
		{"fecha", "nombre", "cantidad", "categoria"},
		{"45731", "Luz", "-60", "Servicios"},
	})

	rows, rowErrs, err := Parse(buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	// 45731 days after 1899-12-30.
	assert.Equal(t, "2025-03-15", rows[0].Date.Format("2006-01-02"))
}

func TestParse_BadRowsReportedNotFatal(t *testing.T) {
	buf := sheetOf(t, [][]string{
		{"Fecha", "Nombre", "Cantidad", "Categoría"},
		{"2025-03-01", "Ok", "10", "A"},
		{"", "MissingDate", "10", "A"},
		{"2025-03-02", "BadAmount", "diez", "A"},
		{"not-a-date", "BadDate", "10", "A"},
	})

	rows, rowErrs, err := Parse(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rowErrs, 3)
	assert.Equal(t, 3, rowErrs[0].Line)
	assert.Contains(t, rowErrs[0].Error, "missing required fields")
	assert.Contains(t, rowErrs[1].Error, "invalid amount")
	assert.Contains(t, rowErrs[2].Error, "invalid date")
}

func TestParse_UnparsableTotalDropped(t *testing.T) {
	buf := sheetOf(t, [][]string{
		{"Fecha", "Nombre", "Cantidad", "Categoría", "Total"},
		{"2025-03-01", "Ok", "10", "A", "n/a"},
	})

	rows, rowErrs, err := Parse(buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Balance.Valid, fmt.Sprintf("balance: %v", rows[0].Balance))
}

func TestParse_BlankLinesSkipped(t *testing.T) {
	buf := sheetOf(t, [][]string{
		{"Fecha", "Nombre", "Cantidad", "Categoría"},
		{"", "", "", ""},
		{"2025-03-01", "Ok", "10", "A"},
	})

	rows, rowErrs, err := Parse(buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Line)
}
