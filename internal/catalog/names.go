// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Month is a calendar month, 1 (enero) through 12 (diciembre).
type Month int

// Weekday is a day of the week with Monday as 0 and Sunday as 6.
type Weekday int

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var weekdayNames = [...]string{
	"lunes", "martes", "miércoles", "jueves", "viernes", "sábado", "domingo",
}

// monthIndex and weekdayIndex are keyed by the folded name.
var (
	monthIndex   = make(map[string]Month, len(monthNames))
	weekdayIndex = make(map[string]Weekday, len(weekdayNames))
)

func init() {
	for i, name := range monthNames {
		monthIndex[foldName(name)] = Month(i + 1)
	}
	// "setiembre" is the accepted spelling in several Spanish-speaking countries.
	monthIndex["setiembre"] = 9
	for i, name := range weekdayNames {
		weekdayIndex[foldName(name)] = Weekday(i)
	}
}

// foldName lower-cases s and strips combining marks, so "Miércoles",
// "MIERCOLES" and "miercoles" compare equal.
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return cases.Fold().String(out)
}

// ParseMonth resolves a Spanish month name.
func ParseMonth(name string) (Month, error) {
	if m, ok := monthIndex[foldName(name)]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, name)
}

// ParseWeekday resolves a Spanish weekday name.
func ParseWeekday(name string) (Weekday, error) {
	if d, ok := weekdayIndex[foldName(name)]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
}

// Valid reports whether m is in 1..12.
func (m Month) Valid() bool { return m >= 1 && m <= 12 }

// String returns the Spanish month name.
func (m Month) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m-1]
}

// Valid reports whether d is in 0..6.
func (d Weekday) Valid() bool { return d >= 0 && d <= 6 }

// String returns the Spanish weekday name with its accent.
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ISO returns the ISO 8601 day number, Monday=1 through Sunday=7.
func (d Weekday) ISO() int { return int(d) + 1 }
