package services_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-dashboard/internal/dataset/datasettest"
	"sales-dashboard/internal/services"
)

func TestWriteCSV_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, services.WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{
		"Invoice ID", "Branch", "City", "Customer_type", "Gender", "Product line",
		"Unit price", "Quantity", "Tax 5%", "Total", "Date", "Time", "Payment",
		"cogs", "gross margin percentage", "gross income", "Rating", "hour",
	}, records[0])
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	ds := datasettest.Scenario(t)
	sel := selection([]string{"CityA"}, []string{"Member", "Normal"}, []string{"Male", "Female"}, "2023-01-01", "2023-01-02")
	subset := services.Filter(ds, sel)

	var buf bytes.Buffer
	require.NoError(t, services.WriteCSV(&buf, subset))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], ",2023-01-01,09:15:00,Cash,")
	assert.True(t, strings.HasSuffix(lines[2], ",14"), "hour is the last column: %s", lines[2])

	got, err := services.ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, subset, got)
}

func TestWriteCSV_RoundTripGenerated(t *testing.T) {
	rows := generated(250).Rows()

	var buf bytes.Buffer
	require.NoError(t, services.WriteCSV(&buf, rows))

	got, err := services.ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty input", "", "read header"},
		{"missing column", "City,Gender\nA,Male\n", "missing"},
		{"bad total", "City,Customer_type,Gender,Product line,Total,Rating,Date,Time,Payment\nA,Member,Male,Food,abc,7,2023-01-01,10:00:00,Cash\n", `line 2 column "Total"`},
		{"short row", "City,Customer_type,Gender,Product line,Total,Rating,Date,Time,Payment\nA,Member\n", "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.ReadCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
