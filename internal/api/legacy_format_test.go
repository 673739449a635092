// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"math"
	"testing"
)

func TestFormatLegacyFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{5415, "5415.0"},
		{7.7, "7.7"},
		{21.946943, "21.946943"},
		{-3.5, "-3.5"},
		{0.1 + 0.2, "0.30000000000000004"},
		{1e-4, "0.0001"},
		{1.5e-5, "1.5e-05"},
		{1e16, "1e+16"},
		{123456789012345.0, "123456789012345.0"},
		{math.NaN(), "nan"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}
	for _, tt := range tests {
		if got := formatLegacyFloat(tt.in); got != tt.want {
			t.Errorf("formatLegacyFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatLegacyInt(t *testing.T) {
	if got := formatLegacyInt(1995); got != "1995" {
		t.Errorf("formatLegacyInt(1995) = %q", got)
	}
	if got := formatLegacyInt(0); got != "0" {
		t.Errorf("formatLegacyInt(0) = %q", got)
	}
}

func TestLegacyLower(t *testing.T) {
	if got := legacyLower("MIÉRCOLES"); got != "miércoles" {
		t.Errorf("legacyLower = %q", got)
	}
}
