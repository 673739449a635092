// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogHandler_WritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf)))

	logger.Info("service started", "service", "http-server", "attempt", 2)

	out := buf.String()
	for _, want := range []string{`"message":"service started"`, `"service":"http-server"`, `"attempt":2`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %s", want, out)
		}
	}
}

func TestSlogHandler_GroupsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf))).WithGroup("supervisor")

	logger.Error("service failed", "error", errors.New("boom"), slog.Group("restart", "backoff", true))

	out := buf.String()
	if !strings.Contains(out, `"supervisor.error":"boom"`) {
		t.Errorf("grouped error missing: %s", out)
	}
	if !strings.Contains(out, `"supervisor.restart.backoff":true`) {
		t.Errorf("nested group missing: %s", out)
	}
	if !strings.Contains(out, `"level":"error"`) {
		t.Errorf("level missing: %s", out)
	}
}
