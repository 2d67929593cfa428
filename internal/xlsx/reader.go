// Package xlsx decodes .xlsx workbooks into tabular in-memory data.
package xlsx

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet holds the raw cell grid of a single worksheet.
type Sheet struct {
	Name string     `json:"name"`
	Rows [][]string `json:"rows"`
}

// Workbook is a fully decoded .xlsx file.
type Workbook struct {
	Sheets []Sheet `json:"sheets"`
}

// Table is a loaded worksheet with the header row split off. The first
// non-empty row of the sheet becomes the column names and every following
// row is a data row, padded or clipped to the column count.
type Table struct {
	SheetName string     `json:"sheetName"`
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
}

// ReadFile decodes an .xlsx file from disk.
func ReadFile(path string) (*Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s — check that the path is correct", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	defer f.Close()

	return readWorkbook(f)
}

// ReadBytes decodes an .xlsx file from memory, e.g. a Drive export.
func ReadBytes(data []byte) (*Workbook, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty spreadsheet export")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode spreadsheet data: %w", err)
	}
	defer f.Close()

	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) (*Workbook, error) {
	wb := &Workbook{}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("could not read sheet %q: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: rows})
	}

	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("workbook contains no sheets")
	}

	return wb, nil
}

// SheetNames returns the worksheet names in workbook order.
func (wb *Workbook) SheetNames() []string {
	names := make([]string, len(wb.Sheets))
	for i, s := range wb.Sheets {
		names[i] = s.Name
	}
	return names
}

// Table loads one worksheet as a Table. An empty selector picks the first
// sheet. A sheet without a header row cannot be loaded.
func (wb *Workbook) Table(selector string) (*Table, error) {
	var sheet *Sheet
	if selector == "" {
		sheet = &wb.Sheets[0]
	} else {
		for i := range wb.Sheets {
			if wb.Sheets[i].Name == selector {
				sheet = &wb.Sheets[i]
				break
			}
		}
		if sheet == nil {
			return nil, fmt.Errorf("sheet %q not found — available sheets: %v", selector, wb.SheetNames())
		}
	}

	header := -1
	for i, row := range sheet.Rows {
		if !rowEmpty(row) {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet.Name)
	}

	cols := make([]string, len(sheet.Rows[header]))
	for i, c := range sheet.Rows[header] {
		c = strings.TrimSpace(c)
		if c == "" {
			c = fmt.Sprintf("Column%d", i+1)
		}
		cols[i] = c
	}

	t := &Table{SheetName: sheet.Name, Columns: cols}
	for _, row := range sheet.Rows[header+1:] {
		if rowEmpty(row) {
			continue
		}
		data := make([]string, len(cols))
		for i := range cols {
			if i < len(row) {
				data[i] = row[i]
			}
		}
		t.Rows = append(t.Rows, data)
	}

	return t, nil
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// ColumnCount returns the number of named columns.
func (t *Table) ColumnCount() int { return len(t.Columns) }
