//go:build ignore

// This program generates the sample spreadsheet used by the benchmarks.
package main

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	if err := generateXlsx(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.xlsx: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Test fixtures generated successfully.")
}

func generateXlsx() error {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Revenue")

	rows := [][]interface{}{
		{"Month", "Region", "Revenue", "Units", "Returns"},
	}
	regions := []string{"North", "South", "East", "West"}
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}
	for _, m := range months {
		for i, r := range regions {
			rows = append(rows, []interface{}{
				m, r, 10000 + i*2500, 120 + i*15, i,
			})
		}
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Revenue", cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet("Headcount"); err != nil {
		return err
	}
	hc := [][]interface{}{
		{"Team", "Heads", "Open Roles"},
		{"Engineering", 24, 3},
		{"Sales", 11, 1},
		{"Support", 8, 0},
	}
	for i, row := range hc {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Headcount", cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs("testdata/sample.xlsx")
}
