// Package importer parses xlsx spreadsheets of ledger entries. Sheets come
// from exported bank statements with Spanish or English headings; headings
// are normalized before the rows are read.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// columnMap folds the heading variants seen in real sheets onto the fields a
// row carries. Unknown headings are ignored.
var columnMap = map[string]string{
	"fecha":       "date",
	"date":        "date",
	"nombre":      "name",
	"name":        "name",
	"concepto":    "name",
	"cantidad":    "amount",
	"importe":     "amount",
	"amount":      "amount",
	"categoría":   "category",
	"categoria":   "category",
	"category":    "category",
	"descripción": "description",
	"descripcion": "description",
	"description": "description",
	"total":       "balance",
}

// Row is one parsed entry. Line is the 1-based spreadsheet line it came from.
// Balance is valid only when the sheet carried a usable running total.
type Row struct {
	Line        int
	Date        time.Time
	Name        string
	Amount      decimal.Decimal
	Balance     decimal.NullDecimal
	Category    string
	Description string
}

// RowError reports one line that could not be imported.
type RowError struct {
	Line  int    `json:"row"`
	Error string `json:"error"`
}

// Parse reads the first sheet. Malformed lines become RowErrors rather than
// aborting the import; only an unreadable workbook returns an error.
func Parse(r io.Reader) ([]Row, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("Parse: open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("Parse: workbook has no sheets")
	}
	lines, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("Parse: read sheet %q: %w", sheets[0], err)
	}
	if len(lines) == 0 {
		return nil, nil, nil
	}

	fields := headerFields(lines[0])

	var rows []Row
	var rowErrs []RowError
	for i, cells := range lines[1:] {
		line := i + 2
		row, err := parseLine(line, fields, cells)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Error: err.Error()})
			continue
		}
		if row == nil {
			continue
		}
		rows = append(rows, *row)
	}
	return rows, rowErrs, nil
}

// headerFields maps column index to normalized field name.
func headerFields(header []string) map[int]string {
	fields := map[int]string{}
	for i, h := range header {
		normalized := strings.ToLower(strings.TrimSpace(h))
		if field, ok := columnMap[normalized]; ok {
			fields[i] = field
		}
	}
	return fields
}

func parseLine(line int, fields map[int]string, cells []string) (*Row, error) {
	values := map[string]string{}
	empty := true
	for i, cell := range cells {
		field, ok := fields[i]
		if !ok {
			continue
		}
		cell = strings.TrimSpace(cell)
		if cell != "" {
			empty = false
		}
		values[field] = cell
	}
	if empty {
		return nil, nil
	}

	if values["date"] == "" || values["name"] == "" || values["amount"] == "" || values["category"] == "" {
		return nil, fmt.Errorf("missing required fields: date, name, amount, or category")
	}

	date, err := parseDate(values["date"])
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(values["amount"])
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", values["amount"])
	}

	// An unparsable running total is dropped, not rejected; the engine
	// recomputes the balance anyway.
	var balance decimal.NullDecimal
	if v := values["balance"]; v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			balance = decimal.NewNullDecimal(d)
		}
	}

	return &Row{
		Line:        line,
		Date:        date,
		Name:        values["name"],
		Amount:      amount,
		Balance:     balance,
		Category:    values["category"],
		Description: values["description"],
	}, nil
}

// excelEpoch anchors serial date numbers, which count days from 1899-12-30.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseDate accepts ISO dates, day-first dates with / or - separators, and
// raw Excel serial numbers.
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "02/01/2006", "02-01-2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		return excelEpoch.AddDate(0, 0, int(serial)), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
