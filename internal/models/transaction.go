package models

import "time"

// Transaction is one row of the sales sheet. Hour is derived from Time at load.
type Transaction struct {
	InvoiceID      string    `json:"invoice_id"`
	Branch         string    `json:"branch"`
	City           string    `json:"city"`
	CustomerType   string    `json:"customer_type"`
	Gender         string    `json:"gender"`
	ProductLine    string    `json:"product_line"`
	UnitPrice      float64   `json:"unit_price"`
	Quantity       int       `json:"quantity"`
	Tax            float64   `json:"tax"`
	Total          float64   `json:"total"`
	Date           time.Time `json:"date"`
	Time           string    `json:"time"`
	Payment        string    `json:"payment"`
	COGS           float64   `json:"cogs"`
	GrossMarginPct float64   `json:"gross_margin_pct"`
	GrossIncome    float64   `json:"gross_income"`
	Rating         float64   `json:"rating"`
	Hour           int       `json:"hour"`
}

type GroupTotal struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
}

type CityGenderTotal struct {
	City   string  `json:"city"`
	Gender string  `json:"gender"`
	Total  float64 `json:"total"`
}

type HourTotal struct {
	Hour  int     `json:"hour"`
	Total float64 `json:"total"`
}

type Summary struct {
	TotalSales         int64             `json:"total_sales"`
	AverageRating      float64           `json:"average_rating"`
	AverageSale        float64           `json:"average_sale"`
	Transactions       int               `json:"transactions"`
	SalesByProductLine []GroupTotal      `json:"sales_by_product_line"`
	SalesByCityGender  []CityGenderTotal `json:"sales_by_city_gender"`
	SalesByHour        []HourTotal       `json:"sales_by_hour"`
	SalesByPayment     []GroupTotal      `json:"sales_by_payment"`
}
