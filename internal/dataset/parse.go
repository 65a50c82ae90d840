package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const secondsPerDay = 24 * 60 * 60

// Numeric dates are accepted from 1927-05-18 to 9999-12-31. Earlier dates must
// be written as text.
const (
	minDateSerial = 10000
	maxDateSerial = 2958465
)

var (
	dateLayouts = []string{
		"2006-01-02",
		"1/2/2006",
		"01/02/2006",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	clockLayouts = []string{
		"15:04:05",
		"15:04",
		"3:04:05 PM",
		"3:04 PM",
	}
)

// ParseDate accepts an Excel serial number or a textual date and returns the
// calendar day at midnight UTC.
func ParseDate(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if serial, ok := parseSerial(cell); ok {
		if serial < minDateSerial || serial > maxDateSerial {
			return time.Time{}, fmt.Errorf("date serial %q out of range", cell)
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("date serial %q: %w", cell, err)
		}
		return day(t), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q matches no known layout", cell)
}

// ParseClock accepts an Excel day fraction or a textual time of day and returns
// it normalized to HH:MM:SS together with the 24-hour hour.
func ParseClock(cell string) (string, int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return "", 0, fmt.Errorf("empty time")
	}

	if frac, ok := parseSerial(cell); ok {
		if frac < 0 {
			return "", 0, fmt.Errorf("negative time %q", cell)
		}
		// A bare integer such as "13" is an hour written as text, not a serial.
		if frac == math.Trunc(frac) && frac != 0 && frac < minDateSerial {
			return "", 0, fmt.Errorf("time %q is a bare number, not a time of day", cell)
		}
		_, frac = math.Modf(frac)
		secs := int(math.Round(frac * secondsPerDay))
		if secs >= secondsPerDay {
			secs = secondsPerDay - 1
		}
		t := time.Date(0, 1, 1, 0, 0, secs, 0, time.UTC)
		return t.Format("15:04:05"), t.Hour(), nil
	}

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t.Format("15:04:05"), t.Hour(), nil
		}
	}
	return "", 0, fmt.Errorf("time %q matches no known layout", cell)
}

// parseSerial reports whether cell is a finite decimal number.
func parseSerial(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseAmount(cell string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("amount %q is not finite", cell)
	}
	return v, nil
}

func parseCount(cell string) (int, error) {
	v, err := parseAmount(cell)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("quantity %q is not a whole number", cell)
	}
	return int(v), nil
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
