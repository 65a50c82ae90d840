package services

import (
	"time"

	"github.com/samber/lo"

	"sales-dashboard/internal/dataset"
	"sales-dashboard/internal/models"
)

// Filter returns the rows of ds that satisfy sel, in sheet order. It never
// modifies ds. An empty category list in sel matches no rows, and the date
// bounds are inclusive. No match yields an empty, non-nil slice.
func Filter(ds *dataset.Dataset, sel models.Selection) []models.Transaction {
	m := newMatcher(sel)

	out := make([]models.Transaction, 0)
	for tx := range ds.All() {
		if m.match(tx) {
			out = append(out, tx)
		}
	}
	return out
}

type matcher struct {
	cities        map[string]struct{}
	customerTypes map[string]struct{}
	genders       map[string]struct{}
	start, end    time.Time
}

func newMatcher(sel models.Selection) matcher {
	return matcher{
		cities:        toSet(sel.Cities),
		customerTypes: toSet(sel.CustomerTypes),
		genders:       toSet(sel.Genders),
		start:         calendarDay(sel.Start),
		end:           calendarDay(sel.End),
	}
}

func (m matcher) match(tx models.Transaction) bool {
	if _, ok := m.cities[tx.City]; !ok {
		return false
	}
	if _, ok := m.customerTypes[tx.CustomerType]; !ok {
		return false
	}
	if _, ok := m.genders[tx.Gender]; !ok {
		return false
	}
	return !tx.Date.Before(m.start) && !tx.Date.After(m.end)
}

func toSet(values []string) map[string]struct{} {
	return lo.Associate(values, func(v string) (string, struct{}) {
		return v, struct{}{}
	})
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
