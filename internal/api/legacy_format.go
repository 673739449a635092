// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"math"
	"strconv"
	"strings"
)

// formatLegacyFloat renders a float the way the legacy messages always have:
// shortest round-trip digits, a trailing ".0" on integral values, and
// exponent notation below 1e-4 or from 1e16 up.
func formatLegacyFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// formatLegacyInt renders counts and years.
func formatLegacyInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

// legacyLower lower-cases user input before it is echoed in a message.
func legacyLower(s string) string {
	return strings.ToLower(s)
}
