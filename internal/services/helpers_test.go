package services_test

import (
	"fmt"
	"time"

	"sales-dashboard/internal/dataset"
	"sales-dashboard/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func selection(cities, customerTypes, genders []string, start, end string) models.Selection {
	return models.Selection{
		Cities:        cities,
		CustomerTypes: customerTypes,
		Genders:       genders,
		Start:         day(start),
		End:           day(end),
	}
}

// generated builds n transactions cycling through three cities, two customer
// types, two genders, four product lines and three payment methods over ten
// days of January 2023.
func generated(n int) *dataset.Dataset {
	cities := []string{"Yangon", "Naypyitaw", "Mandalay"}
	customerTypes := []string{"Member", "Normal"}
	genders := []string{"Female", "Male"}
	lines := []string{"Health and beauty", "Electronic accessories", "Food and beverages", "Sports and travel"}
	payments := []string{"Ewallet", "Cash", "Credit card"}

	rows := make([]models.Transaction, 0, n)
	for i := range n {
		hour := 10 + i%11
		rows = append(rows, models.Transaction{
			InvoiceID:    fmt.Sprintf("750-67-%04d", i),
			Branch:       string(rune('A' + i%3)),
			City:         cities[i%len(cities)],
			CustomerType: customerTypes[i%len(customerTypes)],
			Gender:       genders[(i/2)%len(genders)],
			ProductLine:  lines[i%len(lines)],
			Quantity:     1 + i%10,
			Total:        float64(10+i*7%500) + 0.37*float64(i%5),
			Date:         day("2023-01-01").AddDate(0, 0, i%10),
			Time:         fmt.Sprintf("%02d:%02d:00", hour, i%60),
			Hour:         hour,
			Payment:      payments[i%len(payments)],
			Rating:       4 + float64(i%61)/10,
		})
	}
	return dataset.New("generated", rows)
}
