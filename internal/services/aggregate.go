package services

import (
	"cmp"
	"errors"
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
)

// ErrEmptySubset is the panic value of Summarize when it is handed no rows.
var ErrEmptySubset = errors.New("summarize: empty subset")

type cityGender struct {
	city, gender string
}

// Summarize computes the KPIs and the four breakdowns of subset. Amounts are
// summed exactly, so every breakdown adds up to the same total. The subset must
// not be empty; callers check for that first.
func Summarize(subset []models.Transaction) models.Summary {
	if len(subset) == 0 {
		panic(ErrEmptySubset)
	}

	var total, rating decimal.Decimal
	byLine := make(map[string]decimal.Decimal)
	byCityGender := make(map[cityGender]decimal.Decimal)
	byHour := make(map[int]decimal.Decimal)
	byPayment := make(map[string]decimal.Decimal)

	for _, tx := range subset {
		amount := decimal.NewFromFloat(tx.Total)
		total = total.Add(amount)
		rating = rating.Add(decimal.NewFromFloat(tx.Rating))

		byLine[tx.ProductLine] = byLine[tx.ProductLine].Add(amount)
		k := cityGender{tx.City, tx.Gender}
		byCityGender[k] = byCityGender[k].Add(amount)
		byHour[tx.Hour] = byHour[tx.Hour].Add(amount)
		byPayment[tx.Payment] = byPayment[tx.Payment].Add(amount)
	}

	n := decimal.NewFromInt(int64(len(subset)))

	return models.Summary{
		TotalSales:         total.IntPart(),
		AverageRating:      rating.Div(n).RoundBank(1).InexactFloat64(),
		AverageSale:        total.Div(n).RoundBank(2).InexactFloat64(),
		Transactions:       len(subset),
		SalesByProductLine: groupTotals(byLine),
		SalesByCityGender:  cityGenderTotals(byCityGender),
		SalesByHour:        hourTotals(byHour),
		SalesByPayment:     groupTotals(byPayment),
	}
}

func groupTotals(m map[string]decimal.Decimal) []models.GroupTotal {
	out := make([]models.GroupTotal, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		out = append(out, models.GroupTotal{Key: k, Total: m[k].InexactFloat64()})
	}
	return out
}

func hourTotals(m map[int]decimal.Decimal) []models.HourTotal {
	out := make([]models.HourTotal, 0, len(m))
	for _, h := range slices.Sorted(maps.Keys(m)) {
		out = append(out, models.HourTotal{Hour: h, Total: m[h].InexactFloat64()})
	}
	return out
}

func cityGenderTotals(m map[cityGender]decimal.Decimal) []models.CityGenderTotal {
	keys := slices.SortedFunc(maps.Keys(m), func(a, b cityGender) int {
		if c := cmp.Compare(a.city, b.city); c != 0 {
			return c
		}
		return cmp.Compare(a.gender, b.gender)
	})

	out := make([]models.CityGenderTotal, 0, len(keys))
	for _, k := range keys {
		out = append(out, models.CityGenderTotal{City: k.city, Gender: k.gender, Total: m[k].InexactFloat64()})
	}
	return out
}
