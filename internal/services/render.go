package services

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sales-dashboard/internal/dataset"
	"sales-dashboard/internal/models"
)

const NoDataNotice = "No data available based on the current filter settings!"

const (
	ChartProductLine = "product-line-chart"
	ChartCityGender  = "city-gender-chart"
	ChartHourly      = "hourly-chart"
	ChartPayment     = "payment-chart"
)

var (
	// plotly sequential Reds
	redsPalette = []string{
		"rgb(255,245,240)", "rgb(254,224,210)", "rgb(252,187,161)",
		"rgb(252,146,114)", "rgb(251,106,74)", "rgb(239,59,44)",
		"rgb(203,24,29)", "rgb(165,15,21)", "rgb(103,0,13)",
	}
	// plotly qualitative Set1
	set1Palette = []string{
		"rgb(228,26,28)", "rgb(55,126,184)", "rgb(77,175,74)",
		"rgb(152,78,163)", "rgb(255,127,0)", "rgb(255,255,51)",
		"rgb(166,86,40)", "rgb(247,129,191)", "rgb(153,153,153)",
	}
	hourlyColor = "#FF6347"
)

var printer = message.NewPrinter(language.English)

// Render runs one full pass: filter, then either the empty notice or KPIs and
// charts for the subset.
func Render(ds *dataset.Dataset, sel models.Selection) models.ViewModel {
	vm := models.ViewModel{
		Selection: sel,
		Options:   ds.Options(),
	}

	subset := Filter(ds, sel)
	vm.RowCount = len(subset)
	if len(subset) == 0 {
		vm.Empty = true
		vm.Notice = NoDataNotice
		return vm
	}

	summary := Summarize(subset)
	vm.Summary = &summary
	vm.KPIs = BuildKPIs(summary)
	vm.Charts = BuildCharts(summary)
	return vm
}

// BuildKPIs formats the three headline figures.
func BuildKPIs(s models.Summary) []models.KPI {
	return []models.KPI{
		{Label: "Total Sales", Value: FormatCurrencyInt(s.TotalSales)},
		{Label: "Average Rating", Value: strconv.FormatFloat(s.AverageRating, 'f', 1, 64), Extra: Stars(s.AverageRating)},
		{Label: "Average Sales per Transaction", Value: FormatCurrency(s.AverageSale)},
	}
}

func FormatCurrencyInt(v int64) string {
	return printer.Sprintf("US $ %d", v)
}

func FormatCurrency(v float64) string {
	return printer.Sprintf("US $ %.2f", v)
}

// Stars renders a rating as a row of stars, rounding half to even.
func Stars(rating float64) string {
	n := int(math.RoundToEven(rating))
	if n < 0 {
		n = 0
	}
	return strings.Repeat("⭐", n)
}

// BuildCharts lays the breakdowns out as the four dashboard charts.
func BuildCharts(s models.Summary) []models.ChartConfig {
	return []models.ChartConfig{
		productLineChart(s.SalesByProductLine),
		cityGenderChart(s.SalesByCityGender),
		hourlyChart(s.SalesByHour),
		paymentChart(s.SalesByPayment),
	}
}

func productLineChart(rows []models.GroupTotal) models.ChartConfig {
	return models.ChartConfig{
		ID:        ChartProductLine,
		ChartType: "donut",
		Title:     "Sales Distribution by Product Line",
		Series:    []models.ChartSeries{{Name: "Total", Data: groupPoints(rows)}},
		Colors:    redsPalette,
		Hole:      0.4,
	}
}

func paymentChart(rows []models.GroupTotal) models.ChartConfig {
	return models.ChartConfig{
		ID:        ChartPayment,
		ChartType: "donut",
		Title:     "Sales by Payment Method",
		Series:    []models.ChartSeries{{Name: "Total", Data: groupPoints(rows)}},
		Colors:    redsPalette,
		Hole:      0.4,
	}
}

// cityGenderChart places one series per gender; x is the city and both y and
// bubble size carry the total.
func cityGenderChart(rows []models.CityGenderTotal) models.ChartConfig {
	var series []models.ChartSeries
	index := make(map[string]int)
	for _, r := range rows {
		i, ok := index[r.Gender]
		if !ok {
			i = len(series)
			index[r.Gender] = i
			series = append(series, models.ChartSeries{
				Name:  r.Gender,
				Color: set1Palette[i%len(set1Palette)],
			})
		}
		v := roundTo2(r.Total)
		series[i].Data = append(series[i].Data, models.ChartPoint{Label: r.City, Value: v, Size: v})
	}

	return models.ChartConfig{
		ID:        ChartCityGender,
		ChartType: "bubble",
		Title:     "Sales Distribution by City and Gender",
		XAxis:     "City",
		YAxis:     "Total",
		Series:    series,
		Colors:    set1Palette,
	}
}

func hourlyChart(rows []models.HourTotal) models.ChartConfig {
	points := make([]models.ChartPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, models.ChartPoint{Label: strconv.Itoa(r.Hour), Value: roundTo2(r.Total)})
	}
	return models.ChartConfig{
		ID:        ChartHourly,
		ChartType: "area",
		Title:     "Hourly Sales Trend",
		XAxis:     "hour",
		YAxis:     "Total",
		Series:    []models.ChartSeries{{Name: "Total", Data: points, Color: hourlyColor}},
		Colors:    []string{hourlyColor},
		Markers:   true,
	}
}

func groupPoints(rows []models.GroupTotal) []models.ChartPoint {
	points := make([]models.ChartPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, models.ChartPoint{Label: r.Key, Value: roundTo2(r.Total)})
	}
	return points
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
