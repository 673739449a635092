// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"errors"
	"io"
)

var (
	// ErrUnsupportedSchema means a CSV header lacks the columns needed to load it.
	ErrUnsupportedSchema = errors.New("unsupported catalog schema")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("database is closed")
)

// closeQuietly closes a resource and explicitly ignores any error.
// Use this for cleanup in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
