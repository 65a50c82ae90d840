package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-dashboard/internal/dataset/datasettest"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
)

func TestRender_Scenario(t *testing.T) {
	ds := datasettest.Scenario(t)
	sel := selection([]string{"CityA"}, []string{"Member", "Normal"}, []string{"Male", "Female"}, "2023-01-01", "2023-01-02")

	vm := services.Render(ds, sel)

	require.False(t, vm.Empty)
	assert.Empty(t, vm.Notice)
	assert.Equal(t, 2, vm.RowCount)
	require.NotNil(t, vm.Summary)
	assert.Equal(t, []models.KPI{
		{Label: "Total Sales", Value: "US $ 150"},
		{Label: "Average Rating", Value: "7.0", Extra: "⭐⭐⭐⭐⭐⭐⭐"},
		{Label: "Average Sales per Transaction", Value: "US $ 75.00"},
	}, vm.KPIs)
	assert.Equal(t, []string{"CityA", "CityB"}, vm.Options.Cities)

	require.Len(t, vm.Charts, 4)
	ids := []string{vm.Charts[0].ID, vm.Charts[1].ID, vm.Charts[2].ID, vm.Charts[3].ID}
	assert.Equal(t, []string{services.ChartProductLine, services.ChartCityGender, services.ChartHourly, services.ChartPayment}, ids)
}

func TestRender_EmptySelection(t *testing.T) {
	ds := datasettest.Scenario(t)
	sel := ds.DefaultSelection()
	sel.Cities = []string{"Atlantis"}

	vm := services.Render(ds, sel)

	assert.True(t, vm.Empty)
	assert.Equal(t, services.NoDataNotice, vm.Notice)
	assert.Equal(t, "No data available based on the current filter settings!", vm.Notice)
	assert.Zero(t, vm.RowCount)
	assert.Nil(t, vm.Summary)
	assert.Empty(t, vm.KPIs)
	assert.Empty(t, vm.Charts)
	assert.Equal(t, ds.Options(), vm.Options)
}

func TestRender_Idempotent(t *testing.T) {
	ds := generated(150)
	sel := ds.DefaultSelection()

	assert.Equal(t, services.Render(ds, sel), services.Render(ds, sel))
}

func TestBuildCharts(t *testing.T) {
	ds := datasettest.Scenario(t)
	charts := services.BuildCharts(services.Summarize(ds.Rows()))
	require.Len(t, charts, 4)

	t.Run("product line donut", func(t *testing.T) {
		c := charts[0]
		assert.Equal(t, "donut", c.ChartType)
		assert.Equal(t, 0.4, c.Hole)
		require.Len(t, c.Series, 1)
		assert.Equal(t, []models.ChartPoint{{Label: "Food", Value: 50}, {Label: "Health", Value: 300}}, c.Series[0].Data)
	})

	t.Run("city gender bubbles", func(t *testing.T) {
		c := charts[1]
		assert.Equal(t, "bubble", c.ChartType)
		require.Len(t, c.Series, 2)
		assert.Equal(t, "Female", c.Series[0].Name)
		assert.Equal(t, []models.ChartPoint{{Label: "CityA", Value: 50, Size: 50}}, c.Series[0].Data)
		assert.Equal(t, "Male", c.Series[1].Name)
		assert.Equal(t, []models.ChartPoint{
			{Label: "CityA", Value: 100, Size: 100},
			{Label: "CityB", Value: 200, Size: 200},
		}, c.Series[1].Data)
		assert.NotEqual(t, c.Series[0].Color, c.Series[1].Color)
	})

	t.Run("hourly area", func(t *testing.T) {
		c := charts[2]
		assert.Equal(t, "area", c.ChartType)
		assert.True(t, c.Markers)
		require.Len(t, c.Series, 1)
		assert.Equal(t, "#FF6347", c.Series[0].Color)
		assert.Equal(t, []models.ChartPoint{{Label: "9", Value: 300}, {Label: "14", Value: 50}}, c.Series[0].Data)
	})

	t.Run("payment donut", func(t *testing.T) {
		c := charts[3]
		assert.Equal(t, "donut", c.ChartType)
		assert.Equal(t, []models.ChartPoint{{Label: "Card", Value: 50}, {Label: "Cash", Value: 300}}, c.Series[0].Data)
	})
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"int small", services.FormatCurrencyInt(150), "US $ 150"},
		{"int grouped", services.FormatCurrencyInt(322966), "US $ 322,966"},
		{"int millions", services.FormatCurrencyInt(1234567), "US $ 1,234,567"},
		{"float", services.FormatCurrency(75), "US $ 75.00"},
		{"float grouped", services.FormatCurrency(1234.5), "US $ 1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestStars(t *testing.T) {
	tests := []struct {
		rating float64
		want   int
	}{
		{0, 0},
		{4.4, 4},
		{6.5, 6},
		{7.0, 7},
		{7.5, 8},
		{9.96, 10},
	}

	for _, tt := range tests {
		got := services.Stars(tt.rating)
		assert.Equal(t, tt.want, len([]rune(got)), "rating %v", tt.rating)
	}
}
