package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Layout pins down where the transactions live inside the workbook.
type Layout struct {
	Sheet       string
	HeaderRow   int // 1-based
	FirstColumn string
	LastColumn  string
	RowCap      int
}

// DefaultLayout matches the published supermarket sales workbook: sheet
// "Sales", three banner rows above the header, columns B through R and at most
// 1000 data rows.
func DefaultLayout() Layout {
	return Layout{
		Sheet:       "Sales",
		HeaderRow:   4,
		FirstColumn: "B",
		LastColumn:  "R",
		RowCap:      1000,
	}
}

// ParseColumnRange splits a range such as "B:R".
func ParseColumnRange(s string) (first, last string, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("column range %q must look like B:R", s)
	}
	return strings.ToUpper(parts[0]), strings.ToUpper(parts[1]), nil
}

func (l Layout) Validate() error {
	if strings.TrimSpace(l.Sheet) == "" {
		return fmt.Errorf("sheet name cannot be empty")
	}
	if l.HeaderRow < 1 {
		return fmt.Errorf("header row must be at least 1, got %d", l.HeaderRow)
	}
	if l.RowCap < 1 {
		return fmt.Errorf("row cap must be positive, got %d", l.RowCap)
	}
	first, last, err := l.columnBounds()
	if err != nil {
		return err
	}
	if last < first {
		return fmt.Errorf("column range %s:%s is reversed", l.FirstColumn, l.LastColumn)
	}
	return nil
}

// columnBounds returns the zero-based, half-open column window.
func (l Layout) columnBounds() (int, int, error) {
	first, err := excelize.ColumnNameToNumber(l.FirstColumn)
	if err != nil {
		return 0, 0, fmt.Errorf("first column: %w", err)
	}
	last, err := excelize.ColumnNameToNumber(l.LastColumn)
	if err != nil {
		return 0, 0, fmt.Errorf("last column: %w", err)
	}
	return first - 1, last, nil
}
