package dataprocessing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order; ambiguous numeric dates are read day first.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04:05",
	"2/1/2006 15:04:05",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
}

// Excel serials outside this window are not treated as dates.
const (
	minExcelSerial = 1
	maxExcelSerial = 2958465 // 9999-12-31
)

var groupedNumber = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)

// parseDate converts a cell to a date. ok is false for blank or unparseable cells.
func parseDate(cell string) (t time.Time, ok bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		if serial < minExcelSerial || serial > maxExcelSerial {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseCapital converts a cell to a non-negative amount.
// coerced is true when a non-blank cell could not be used as is.
func parseCapital(cell string) (value float64, coerced bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}

	s := strings.TrimSpace(strings.TrimPrefix(cell, "$"))
	if groupedNumber.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, true
	}
	if v < 0 {
		return 0, true
	}
	return v, false
}
