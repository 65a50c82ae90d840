package models

import "time"

// DateLayout is the calendar-day format used on the wire and in exports.
const DateLayout = "2006-01-02"

// Selection is the user's current filter state. An empty category slice selects
// nothing; the date bounds are inclusive.
type Selection struct {
	Cities        []string  `json:"cities"`
	CustomerTypes []string  `json:"customer_types"`
	Genders       []string  `json:"genders"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
}

// FilterOptions lists the distinct category values present in a dataset and its
// date span. It drives both the filter controls and the default Selection.
type FilterOptions struct {
	Cities        []string  `json:"cities"`
	CustomerTypes []string  `json:"customer_types"`
	Genders       []string  `json:"genders"`
	MinDate       time.Time `json:"min_date"`
	MaxDate       time.Time `json:"max_date"`
}

func (o FilterOptions) DefaultSelection() Selection {
	return Selection{
		Cities:        append([]string(nil), o.Cities...),
		CustomerTypes: append([]string(nil), o.CustomerTypes...),
		Genders:       append([]string(nil), o.Genders...),
		Start:         o.MinDate,
		End:           o.MaxDate,
	}
}
