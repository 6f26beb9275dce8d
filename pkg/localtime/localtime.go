// Package localtime formats clock times for Spanish-speaking users: 24h
// and 12h clocks, moment-of-day labels, weekday and long date names, and
// GMT offset display. All formatters are pure functions over time.Time so
// callers control the instant under test.
package localtime

import (
	"fmt"
	"strings"
	"time"
)

var weekdaysES = [...]string{
	time.Sunday:    "domingo",
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábado",
}

var monthsES = [...]string{
	time.January:   "enero",
	time.February:  "febrero",
	time.March:     "marzo",
	time.April:     "abril",
	time.May:       "mayo",
	time.June:      "junio",
	time.July:      "julio",
	time.August:    "agosto",
	time.September: "septiembre",
	time.October:   "octubre",
	time.November:  "noviembre",
	time.December:  "diciembre",
}

// NowIn returns the current time in the named IANA zone.
func NowIn(zone string) (time.Time, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("loading timezone %q: %w", zone, err)
	}
	return time.Now().In(loc), nil
}

// Clock formats t as a 24-hour HH:MM string.
func Clock(t time.Time) string {
	return t.Format("15:04")
}

// Clock12 formats t as a 12-hour clock with lowercase dotted meridiem,
// for example "04:30 p.m.".
func Clock12(t time.Time) string {
	s := strings.ToLower(t.Format("03:04 PM"))
	s = strings.ReplaceAll(s, "pm", "p.m.")
	s = strings.ReplaceAll(s, "am", "a.m.")
	return s
}

// Moment returns the day-part label for t's local hour:
// 05:00-11:59 "de la mañana", 12:00-19:59 "de la tarde", otherwise
// "de la noche".
func Moment(t time.Time) string {
	switch hour := t.Hour(); {
	case hour >= 5 && hour < 12:
		return "de la mañana"
	case hour >= 12 && hour < 20:
		return "de la tarde"
	default:
		return "de la noche"
	}
}

// Weekday returns the Spanish weekday name for t.
func Weekday(t time.Time) string {
	return weekdaysES[t.Weekday()]
}

// LongDate formats t like "sábado, 8 de junio de 2024".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d", weekdaysES[t.Weekday()], t.Day(), monthsES[t.Month()], t.Year())
}

// OffsetDisplay formats t's zone offset as "GMT±HH:MM".
func OffsetDisplay(t time.Time) string {
	_, seconds := t.Zone()
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("GMT%s%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}
