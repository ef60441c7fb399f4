package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the dd/MM/yyyy layout used for task dates.
const DateLayout = "02/01/2006"

// FormatTaskDate renders day, month and year the way the date picker does.
func FormatTaskDate(day, month, year int) string {
	return fmt.Sprintf("%02d/%02d/%04d", day, month, year)
}

// FormatTime renders t as a task date.
func FormatTime(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseTaskDate splits a dd/MM/yyyy string and checks field ranges only:
// day 1-31, month 1-12, four-digit year. No calendar validation is done, so
// 31/02/2025 is accepted.
func ParseTaskDate(s string) (day, month, year int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 || len(parts[0]) != 2 || len(parts[1]) != 2 || len(parts[2]) != 4 {
		return 0, 0, 0, fmt.Errorf("date %q must use dd/mm/yyyy", s)
	}
	if day, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, fmt.Errorf("date %q: invalid day", s)
	}
	if month, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, fmt.Errorf("date %q: invalid month", s)
	}
	if year, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, 0, fmt.Errorf("date %q: invalid year", s)
	}
	if day < 1 || day > 31 {
		return 0, 0, 0, fmt.Errorf("date %q: day out of range", s)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("date %q: month out of range", s)
	}
	if year < 1 {
		return 0, 0, 0, fmt.Errorf("date %q: year out of range", s)
	}
	return day, month, year, nil
}
