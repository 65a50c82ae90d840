package models

// ChartConfig describes one dashboard chart. The browser hands it to the chart
// library as-is.
type ChartConfig struct {
	ID        string        `json:"id"`
	ChartType string        `json:"chart_type"` // "donut", "bubble", "area"
	Title     string        `json:"title"`
	XAxis     string        `json:"x_axis,omitempty"`
	YAxis     string        `json:"y_axis,omitempty"`
	Series    []ChartSeries `json:"series"`
	Colors    []string      `json:"colors,omitempty"`
	Hole      float64       `json:"hole,omitempty"`
	Markers   bool          `json:"markers,omitempty"`
}

type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint is a labelled value. Size is only set for bubble charts.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Size  float64 `json:"size,omitempty"`
}

type KPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Extra string `json:"extra,omitempty"`
}

// ViewModel is everything one render pass produces. When Empty is set only
// Selection, Options and Notice are populated.
type ViewModel struct {
	Selection Selection     `json:"selection"`
	Options   FilterOptions `json:"options"`
	Empty     bool          `json:"empty"`
	Notice    string        `json:"notice,omitempty"`
	RowCount  int           `json:"row_count"`
	KPIs      []KPI         `json:"kpis,omitempty"`
	Summary   *Summary      `json:"summary,omitempty"`
	Charts    []ChartConfig `json:"charts,omitempty"`
}
