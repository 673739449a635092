// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

import (
	"strings"
	"testing"
)

type nameRequest struct {
	Name string `param:"name" validate:"required,notblank,nocontrol,max=20"`
}

func TestValidator_Shared(t *testing.T) {
	if Validator() == nil || Validator() != Validator() {
		t.Error("Validator() should return one shared instance")
	}
}

func TestCheck_Valid(t *testing.T) {
	for _, name := range []string{"Tom Hanks", "Penélope Cruz", "sábado", strings.Repeat("x", 20)} {
		if err := Check(&nameRequest{Name: name}); err != nil {
			t.Errorf("Check(%q) = %v, want nil", name, err)
		}
	}
}

func TestCheck_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantTag string
		wantMsg string
	}{
		{"empty", "", "required", "name must not be blank"},
		{"whitespace", "   \t", "notblank", "name must not be blank"},
		{"control char", "a\x00b", "nocontrol", "name must not contain control characters"},
		{"newline", "tom\nhanks", "nocontrol", "name must not contain control characters"},
		{"too long", strings.Repeat("x", 21), "max", "name must be at most 20 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(&nameRequest{Name: tt.value})
			if err == nil {
				t.Fatal("Check() = nil, want error")
			}
			if len(err.Fields) != 1 {
				t.Fatalf("got %d failures, want 1: %v", len(err.Fields), err)
			}
			f := err.Fields[0]
			if f.Param != "name" || f.Tag != tt.wantTag {
				t.Errorf("failure = %+v, want param name and tag %s", f, tt.wantTag)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
			if d := err.Details(); d["param"] != "name" || d["tag"] != tt.wantTag || d["value"] != tt.value {
				t.Errorf("Details() = %v", d)
			}
		})
	}
}

func TestCheck_SeveralParams(t *testing.T) {
	type pair struct {
		Title string `param:"title" validate:"notblank"`
		Name  string `validate:"notblank"`
	}
	err := Check(&pair{})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "title must not be blank; Name must not be blank" {
		t.Errorf("Error() = %q", err.Error())
	}
	fields, ok := err.Details()["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 || fields[0]["param"] != "title" {
		t.Errorf("Details()[fields] = %v", err.Details()["fields"])
	}
}

func TestError_Empty(t *testing.T) {
	e := &Error{}
	if e.Error() != "validation failed" || e.Details() != nil {
		t.Errorf("empty Error = %q, %v", e.Error(), e.Details())
	}
}
