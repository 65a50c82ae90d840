package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"sales-dashboard/internal/models"
)

// Load reads the transactions region of the workbook at source. The read is
// synchronous; ctx is only consulted before the file is opened.
func Load(ctx context.Context, source string, layout Layout) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := layout.Validate(); err != nil {
		return nil, &LoadError{Source: source, Kind: SchemaMismatch, Err: fmt.Errorf("layout: %w", err)}
	}

	if _, err := os.Stat(source); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Source: source, Kind: SourceMissing, Err: err}
		}
		return nil, &LoadError{Source: source, Kind: SourceMissing, Err: fmt.Errorf("stat: %w", err)}
	}

	f, err := excelize.OpenFile(source)
	if err != nil {
		return nil, &LoadError{Source: source, Kind: SchemaMismatch, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	rows, err := f.GetRows(layout.Sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &LoadError{Source: source, Kind: SchemaMismatch, Err: fmt.Errorf("read sheet %q: %w", layout.Sheet, err)}
	}

	txs, err := decodeSheet(rows, layout)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Source = source
			return nil, le
		}
		return nil, &LoadError{Source: source, Kind: SchemaMismatch, Err: err}
	}

	return New(source, txs), nil
}

// decodeSheet turns the raw rows of a sheet into transactions according to the
// layout. Returned LoadErrors carry no Source.
func decodeSheet(rows [][]string, layout Layout) ([]models.Transaction, error) {
	first, last, err := layout.columnBounds()
	if err != nil {
		return nil, &LoadError{Kind: SchemaMismatch, Err: err}
	}

	headerIdx := layout.HeaderRow - 1
	if len(rows) <= headerIdx {
		return nil, &LoadError{Kind: SchemaMismatch, Err: fmt.Errorf("sheet has %d rows, header expected on row %d", len(rows), layout.HeaderRow)}
	}

	index, err := HeaderIndex(window(rows[headerIdx], first, last))
	if err != nil {
		return nil, &LoadError{Kind: SchemaMismatch, Row: layout.HeaderRow, Err: err}
	}

	txs := make([]models.Transaction, 0, min(layout.RowCap, len(rows)-headerIdx-1))
	for i := headerIdx + 1; i < len(rows) && len(txs) < layout.RowCap; i++ {
		cells := window(rows[i], first, last)
		if blank(cells) {
			break
		}

		tx, col, err := DecodeRecord(func(name string) (string, bool) {
			pos, ok := index[name]
			if !ok {
				return "", false
			}
			return cells[pos], true
		})
		if err != nil {
			return nil, &LoadError{Kind: BadValue, Row: i + 1, Column: col, Err: err}
		}
		txs = append(txs, tx)
	}

	if len(txs) == 0 {
		return nil, &LoadError{Kind: SchemaMismatch, Err: fmt.Errorf("no data rows below header row %d", layout.HeaderRow)}
	}
	return txs, nil
}

// window returns row[lo:hi], padded with empty cells where the row is short.
func window(row []string, lo, hi int) []string {
	out := make([]string, hi-lo)
	for i := lo; i < hi && i < len(row); i++ {
		out[i-lo] = row[i]
	}
	return out
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
