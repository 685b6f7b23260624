package extractor

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is one sheet (or the single logical sheet of a CSV) as a cell grid.
type Sheet struct {
	Name string
	Rows [][]string
}

// TabularSheets reads spreadsheet bytes into cell grids. XLSX workbooks are
// recognized by their zip magic; anything else is treated as CSV. Sheet
// order follows the workbook, so multi-sheet documents concatenate in
// document order downstream.
func TabularSheets(data []byte) ([]Sheet, error) {
	if isZip(data) {
		return xlsxSheets(data)
	}
	return csvSheet(data)
}

// TabularPreview flattens the first n rows of every sheet into one string
// for detection.
func TabularPreview(data []byte, n int) string {
	sheets, err := TabularSheets(data)
	if err != nil {
		return ""
	}
	var b strings.Builder
	for _, sheet := range sheets {
		rows := sheet.Rows
		if len(rows) > n {
			rows = rows[:n]
		}
		for _, row := range rows {
			b.WriteString(strings.Join(row, " "))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func isZip(data []byte) bool {
	return len(data) >= 4 && data[0] == 'P' && data[1] == 'K'
}

func xlsxSheets(data []byte) ([]Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", name, err)
		}
		for i := range rows {
			for j := range rows[i] {
				rows[i][j] = strings.TrimSpace(rows[i][j])
			}
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return sheets, nil
}

func csvSheet(data []byte) ([]Sheet, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // statement exports pad rows unevenly
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	for i := range records {
		for j := range records[i] {
			records[i][j] = strings.TrimSpace(records[i][j])
		}
	}
	return []Sheet{{Name: "csv", Rows: records}}, nil
}
