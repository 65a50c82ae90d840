package dataset

import (
	"fmt"
	"strings"

	"sales-dashboard/internal/models"
)

// Header names exactly as they appear in the workbook.
const (
	ColInvoiceID    = "Invoice ID"
	ColBranch       = "Branch"
	ColCity         = "City"
	ColCustomerType = "Customer_type"
	ColGender       = "Gender"
	ColProductLine  = "Product line"
	ColUnitPrice    = "Unit price"
	ColQuantity     = "Quantity"
	ColTax          = "Tax 5%"
	ColTotal        = "Total"
	ColDate         = "Date"
	ColTime         = "Time"
	ColPayment      = "Payment"
	ColCOGS         = "cogs"
	ColGrossMargin  = "gross margin percentage"
	ColGrossIncome  = "gross income"
	ColRating       = "Rating"
	ColHour         = "hour"
)

// Columns is the source column order, used for exports.
var Columns = []string{
	ColInvoiceID, ColBranch, ColCity, ColCustomerType, ColGender, ColProductLine,
	ColUnitPrice, ColQuantity, ColTax, ColTotal, ColDate, ColTime, ColPayment,
	ColCOGS, ColGrossMargin, ColGrossIncome, ColRating,
}

var requiredColumns = []string{
	ColCity, ColCustomerType, ColGender, ColProductLine,
	ColTotal, ColRating, ColDate, ColTime, ColPayment,
}

// CellFunc returns the text of the named column for the current row and
// whether that column exists at all.
type CellFunc func(column string) (string, bool)

// DecodeRecord builds a Transaction from one row. On failure it also returns
// the offending column name.
func DecodeRecord(cell CellFunc) (models.Transaction, string, error) {
	var tx models.Transaction
	var err error

	text := func(col string) string {
		v, _ := cell(col)
		return strings.TrimSpace(v)
	}

	tx.City = text(ColCity)
	tx.CustomerType = text(ColCustomerType)
	tx.Gender = text(ColGender)
	tx.ProductLine = text(ColProductLine)
	tx.Payment = text(ColPayment)
	tx.InvoiceID = text(ColInvoiceID)
	tx.Branch = text(ColBranch)

	if tx.Total, err = parseAmount(text(ColTotal)); err != nil {
		return tx, ColTotal, err
	}
	if tx.Rating, err = parseAmount(text(ColRating)); err != nil {
		return tx, ColRating, err
	}
	if tx.Date, err = ParseDate(text(ColDate)); err != nil {
		return tx, ColDate, err
	}
	if tx.Time, tx.Hour, err = ParseClock(text(ColTime)); err != nil {
		return tx, ColTime, err
	}

	optional := []struct {
		col string
		dst *float64
	}{
		{ColUnitPrice, &tx.UnitPrice},
		{ColTax, &tx.Tax},
		{ColCOGS, &tx.COGS},
		{ColGrossMargin, &tx.GrossMarginPct},
		{ColGrossIncome, &tx.GrossIncome},
	}
	for _, o := range optional {
		v := text(o.col)
		if v == "" {
			continue
		}
		if *o.dst, err = parseAmount(v); err != nil {
			return tx, o.col, err
		}
	}
	if v := text(ColQuantity); v != "" {
		if tx.Quantity, err = parseCount(v); err != nil {
			return tx, ColQuantity, err
		}
	}

	return tx, "", nil
}

// missingColumns reports which required headers are absent.
func missingColumns(index map[string]int) []string {
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// HeaderIndex maps header names to positions and fails when a required column
// is absent.
func HeaderIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, dup := index[h]; dup {
			return nil, fmt.Errorf("duplicate header %q", h)
		}
		index[h] = i
	}
	if missing := missingColumns(index); len(missing) > 0 {
		return nil, fmt.Errorf("missing %s; got headers=%v", strings.Join(missing, ","), header)
	}
	return index, nil
}
