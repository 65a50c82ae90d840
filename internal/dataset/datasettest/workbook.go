// Package datasettest builds small sales workbooks for tests.
package datasettest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"sales-dashboard/internal/dataset"
)

// Header is the full source header, B4:R4.
func Header() []any {
	out := make([]any, len(dataset.Columns))
	for i, c := range dataset.Columns {
		out[i] = c
	}
	return out
}

// Row builds a full 17-column row. Date and clock are written as text.
func Row(invoice, city, customerType, gender, productLine string, total, rating float64, date, clock, payment string) []any {
	return []any{
		invoice, "A", city, customerType, gender, productLine,
		total / 1.05, 1, total - total/1.05, total, date, clock, payment,
		total / 1.05, 4.761904762, total - total/1.05, rating,
	}
}

// ScenarioRows is the three-transaction fixture used across the test suites.
func ScenarioRows() [][]any {
	return [][]any{
		Row("100-00-0001", "CityA", "Member", "Male", "Health", 100, 8, "2023-01-01", "09:15:00", "Cash"),
		Row("100-00-0002", "CityA", "Normal", "Female", "Food", 50, 6, "2023-01-02", "14:30:00", "Card"),
		Row("100-00-0003", "CityB", "Member", "Male", "Health", 200, 9, "2023-01-03", "09:45:00", "Cash"),
	}
}

// WriteWorkbook writes header and rows into sheet "Sales" starting at B4 with a
// banner in B1, the way the published workbook is laid out, and returns the
// file path.
func WriteWorkbook(t testing.TB, header []any, rows [][]any) string {
	t.Helper()
	return WriteSheet(t, "Sales", header, rows)
}

// WriteSheet is WriteWorkbook with a custom sheet name.
func WriteSheet(t testing.TB, sheet string, header []any, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	f.SetActiveSheet(idx)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			t.Fatalf("delete default sheet: %v", err)
		}
	}

	if err := f.SetCellValue(sheet, "B1", "Supermarket Sales"); err != nil {
		t.Fatalf("banner: %v", err)
	}
	if err := f.SetSheetRow(sheet, "B4", &header); err != nil {
		t.Fatalf("header: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(2, 5+i)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("row %d: %v", i, err)
		}
	}

	path := filepath.Join(t.TempDir(), "supermarkt_sales.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// Load writes rows below the full header and loads them with the default
// layout.
func Load(t testing.TB, rows [][]any) *dataset.Dataset {
	t.Helper()

	path := WriteWorkbook(t, Header(), rows)
	ds, err := dataset.Load(context.Background(), path, dataset.DefaultLayout())
	if err != nil {
		t.Fatalf("load workbook: %v", err)
	}
	return ds
}

// Scenario loads ScenarioRows.
func Scenario(t testing.TB) *dataset.Dataset {
	t.Helper()
	return Load(t, ScenarioRows())
}
