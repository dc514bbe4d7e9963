package calendar

import (
	"fmt"
	"strings"
	"time"

	"absence-tracker/internal/models"
)

// DateLayout is the ISO calendar-date layout used for every stored date.
const DateLayout = "2006-01-02"

// now is swapped in tests.
var now = time.Now

// Today returns the current local date at midnight.
func Today() time.Time {
	t := now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// CurrentYear returns the current local year.
func CurrentYear() int {
	return now().Year()
}

// NormalizeDate converts t to its UTC calendar day (YYYY-MM-DD).
func NormalizeDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses YYYY-MM-DD, DD.MM.YYYY, DD-MM-YYYY or DD.MM (current
// year). The result is midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		DateLayout,
		"02.01.2006",
		"02-01-2006",
		"02.01",
	}

	dateStr = strings.TrimSpace(dateStr)
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			if !strings.Contains(format, "2006") {
				t = time.Date(CurrentYear(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			}
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD, DD.MM.YYYY or DD.MM", dateStr)
}

// YearDates returns every day of year, January 1 through December 31.
func YearDates(year int) []models.DateItem {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return datesBetween(start, end)
}

// MonthDates returns every day of the given month.
func MonthDates(year int, month time.Month) []models.DateItem {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return datesBetween(start, end)
}

func datesBetween(start, end time.Time) []models.DateItem {
	var dates []models.DateItem
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, models.DateItem{
			Date:       d,
			DateString: d.Format(DateLayout),
		})
	}
	return dates
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DaysInclusive counts the days of [start, end]; zero when either date is
// malformed or end precedes start.
func DaysInclusive(start, end string) int {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil || e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
