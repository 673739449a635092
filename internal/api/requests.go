// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

// Path parameter structs validated with go-playground/validator before any
// query runs. Month and weekday names are further checked by the catalog
// dictionaries; the tags here only bound their shape.

// MonthRequest is the {month} parameter.
type MonthRequest struct {
	Month string `param:"month" validate:"required,notblank,nocontrol,max=32"`
}

// WeekdayRequest is the {weekday} parameter.
type WeekdayRequest struct {
	Weekday string `param:"weekday" validate:"required,notblank,nocontrol,max=32"`
}

// TitleRequest is the {title} parameter.
type TitleRequest struct {
	Title string `param:"title" validate:"required,notblank,nocontrol,max=500"`
}

// PersonRequest is the {name} parameter of actor and director lookups.
type PersonRequest struct {
	Name string `param:"name" validate:"required,notblank,nocontrol,max=200"`
}
