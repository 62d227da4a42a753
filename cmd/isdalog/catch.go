package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/isdalog/isdalog/internal/api"
	"github.com/isdalog/isdalog/internal/config"
	"github.com/isdalog/isdalog/internal/store"
)

var (
	catchDBOverride string
	catchJSONOutput bool
)

var catchCmd = &cobra.Command{
	Use:   "catch",
	Short: "Manage catch records",
	Long:  "List, inspect, record, and delete catches without running the server.",
}

func init() {
	catchCmd.PersistentFlags().StringVar(&catchDBOverride, "db", "",
		"SQLite database path (overrides config and ISDALOG_DB_PATH)")
	catchCmd.PersistentFlags().BoolVar(&catchJSONOutput, "json", false,
		"Output in JSON format")

	catchCmd.AddCommand(catchListCmd)
	catchCmd.AddCommand(catchShowCmd)
	catchCmd.AddCommand(catchAddCmd)
	catchCmd.AddCommand(catchDeleteCmd)
	catchCmd.AddCommand(catchStatsCmd)
}

// resolveDatabase loads the database settings, applying --db.
func resolveDatabase() (config.DatabaseConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.DatabaseConfig{}, fmt.Errorf("load config: %w", err)
	}
	db := cfg.Database
	if catchDBOverride != "" {
		db.Driver = config.DriverSQLite
		db.Path = catchDBOverride
	}
	return db, nil
}

// withStore opens the database, acquires one connection, and runs fn on it.
func withStore(ctx context.Context, fn func(s store.Store) error) error {
	dbCfg, err := resolveDatabase()
	if err != nil {
		return err
	}

	pool, err := openPool(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	s, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(s)
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// parseCatchID parses a record id argument.
func parseCatchID(arg string) (int64, error) {
	id, ok := api.ParseID(arg)
	if !ok {
		return 0, fmt.Errorf("invalid catch id %q: must be a positive integer", arg)
	}
	return id, nil
}
