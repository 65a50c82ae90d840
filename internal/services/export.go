package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"sales-dashboard/internal/dataset"
	"sales-dashboard/internal/models"
)

const (
	ExportFilename    = "filtered_sales_data.csv"
	ExportContentType = "text/csv"
)

// ErrNoData is returned when an export is requested for an empty subset.
var ErrNoData = errors.New("no data for current filters")

func exportHeader() []string {
	return append(append([]string(nil), dataset.Columns...), dataset.ColHour)
}

// WriteCSV writes rows with a header line. Columns follow the source sheet,
// with the derived hour last.
func WriteCSV(w io.Writer, rows []models.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, 0, len(dataset.Columns)+1)
	for _, tx := range rows {
		record = append(record[:0],
			tx.InvoiceID,
			tx.Branch,
			tx.City,
			tx.CustomerType,
			tx.Gender,
			tx.ProductLine,
			formatFloat(tx.UnitPrice),
			strconv.Itoa(tx.Quantity),
			formatFloat(tx.Tax),
			formatFloat(tx.Total),
			tx.Date.Format(models.DateLayout),
			tx.Time,
			tx.Payment,
			formatFloat(tx.COGS),
			formatFloat(tx.GrossMarginPct),
			formatFloat(tx.GrossIncome),
			formatFloat(tx.Rating),
			strconv.Itoa(tx.Hour),
		)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", tx.InvoiceID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file produced by WriteCSV. Hour is recomputed from Time.
func ReadCSV(r io.Reader) ([]models.Transaction, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index, err := dataset.HeaderIndex(header)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	cr.FieldsPerRecord = len(header)

	rows := make([]models.Transaction, 0)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		tx, col, err := dataset.DecodeRecord(func(name string) (string, bool) {
			pos, ok := index[name]
			if !ok {
				return "", false
			}
			return record[pos], true
		})
		if err != nil {
			return nil, fmt.Errorf("line %d column %q: %w", line, col, err)
		}
		rows = append(rows, tx)
	}
	return rows, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
