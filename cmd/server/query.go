// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/catalog"
)

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "query {" + strings.Join(queryOps(), "|") + "} <argument>",
		Short:     "Load the catalog once and print one legacy query result as JSON",
		Example:   "  marquee query month enero\n  marquee query director \"Sofia Coppola\"",
		Args:      cobra.MatchAll(cobra.ExactArgs(2), validQueryOp),
		ValidArgs: queryOps(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func queryOps() []string {
	return api.LegacyOps
}

func validQueryOp(_ *cobra.Command, args []string) error {
	for _, op := range queryOps() {
		if args[0] == op {
			return nil
		}
	}
	return fmt.Errorf("unknown query %q, want one of %s", args[0], strings.Join(queryOps(), ", "))
}

func runQuery(ctx context.Context, out io.Writer, op, arg string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if _, err := a.reloader.Reload(ctx, catalog.TriggerCLI); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	status, body, err := a.handler.LegacyQuery(ctx, op, arg)
	if err != nil {
		return err
	}
	if err := writeQueryResult(out, body); err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("query failed with status %d", status)
	}
	return nil
}

func writeQueryResult(out io.Writer, body interface{}) error {
	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
