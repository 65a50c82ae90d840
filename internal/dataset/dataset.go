package dataset

import (
	"iter"
	"slices"
	"time"

	"github.com/samber/lo"

	"sales-dashboard/internal/models"
)

// Dataset is the loaded sheet. It is immutable once constructed and safe for
// concurrent readers.
type Dataset struct {
	source   string
	rows     []models.Transaction
	options  models.FilterOptions
	loadedAt time.Time
}

// New wraps rows that were already decoded. The slice is copied.
func New(source string, rows []models.Transaction) *Dataset {
	ds := &Dataset{
		source:   source,
		rows:     slices.Clone(rows),
		loadedAt: time.Now(),
	}
	ds.options = buildOptions(ds.rows)
	return ds
}

func buildOptions(rows []models.Transaction) models.FilterOptions {
	opts := models.FilterOptions{
		Cities:        lo.Uniq(lo.Map(rows, func(tx models.Transaction, _ int) string { return tx.City })),
		CustomerTypes: lo.Uniq(lo.Map(rows, func(tx models.Transaction, _ int) string { return tx.CustomerType })),
		Genders:       lo.Uniq(lo.Map(rows, func(tx models.Transaction, _ int) string { return tx.Gender })),
	}
	if len(rows) == 0 {
		return opts
	}
	opts.MinDate = lo.MinBy(rows, func(a, b models.Transaction) bool { return a.Date.Before(b.Date) }).Date
	opts.MaxDate = lo.MaxBy(rows, func(a, b models.Transaction) bool { return a.Date.After(b.Date) }).Date
	return opts
}

func (d *Dataset) Source() string { return d.source }

func (d *Dataset) Len() int { return len(d.rows) }

func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// All yields every row in sheet order. Rows are yielded by value.
func (d *Dataset) All() iter.Seq[models.Transaction] {
	return func(yield func(models.Transaction) bool) {
		for _, tx := range d.rows {
			if !yield(tx) {
				return
			}
		}
	}
}

// Rows returns a copy of every row in sheet order.
func (d *Dataset) Rows() []models.Transaction {
	return slices.Clone(d.rows)
}

// Options returns the distinct category values in first-appearance order and
// the date span.
func (d *Dataset) Options() models.FilterOptions {
	o := d.options
	o.Cities = slices.Clone(o.Cities)
	o.CustomerTypes = slices.Clone(o.CustomerTypes)
	o.Genders = slices.Clone(o.Genders)
	return o
}

func (d *Dataset) DateRange() (time.Time, time.Time) {
	return d.options.MinDate, d.options.MaxDate
}

// DefaultSelection selects every value present and the full date range.
func (d *Dataset) DefaultSelection() models.Selection {
	return d.options.DefaultSelection()
}
