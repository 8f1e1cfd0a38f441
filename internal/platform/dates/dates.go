// Package dates concentra el manejo de fechas de calendario (UTC) y horas "HH:MM".
package dates

import (
	"strings"
	"time"
)

const (
	DayLayout   = "2006-01-02"
	ClockLayout = "15:04"
)

// Day trunca t a la medianoche UTC de su fecha de calendario.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay interpreta "YYYY-MM-DD" como fecha UTC.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, strings.TrimSpace(s), time.UTC)
}

func FormatDay(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// ValidClock acepta exactamente "HH:MM" en 24h.
func ValidClock(s string) bool {
	if len(s) != len(ClockLayout) {
		return false
	}
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

// ParseDate acepta "YYYY-MM-DD" o RFC3339 (se toma la fecha UTC).
func ParseDate(s string) (time.Time, error) {
	if d, err := ParseDay(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}
