// Package valueobject contains domain value objects for the budget insights service.
package valueobject

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidMonth is returned when a month label or date cannot be interpreted.
var ErrInvalidMonth = errors.New("invalid month")

// MonthLabels is the fixed ordered list of month labels for a calendar year.
var MonthLabels = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// entryDateLayouts are the date shapes delivered by the upstream API.
var entryDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z",
	"2006-01",
}

// MonthLabel returns the label for the given month.
func MonthLabel(m time.Month) string {
	return MonthLabels[int(m)-1]
}

// ParseMonthLabel accepts "Mar", "march" or "3" and returns the month.
func ParseMonthLabel(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
		}
		return time.Month(n), nil
	}
	for i, label := range MonthLabels {
		if len(s) >= 3 && strings.EqualFold(s[:3], label) {
			full := time.Month(i + 1).String()
			if len(s) == 3 || strings.EqualFold(s, full) {
				return time.Month(i + 1), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
}

// ParseEntryMonth extracts the month component of an entry date.
func ParseEntryMonth(date string) (time.Month, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return 0, fmt.Errorf("%w: empty date", ErrInvalidMonth)
	}
	for _, layout := range entryDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Month(), nil
		}
	}
	return 0, fmt.Errorf("%w: unparseable date %q", ErrInvalidMonth, date)
}

// Quarter returns the 1-based quarter containing the month.
func Quarter(m time.Month) int {
	return (int(m)-1)/3 + 1
}

// QuarterLabel returns "Q1".."Q4" for the month.
func QuarterLabel(m time.Month) string {
	return fmt.Sprintf("Q%d", Quarter(m))
}
