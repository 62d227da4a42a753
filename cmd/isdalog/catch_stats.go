package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/isdalog/isdalog/internal/catch"
	"github.com/isdalog/isdalog/internal/config"
	"github.com/isdalog/isdalog/internal/query"
	"github.com/isdalog/isdalog/internal/store"
)

var catchStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catch totals and database size",
	Args:  cobra.NoArgs,
	RunE:  runCatchStats,
}

func runCatchStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	dbCfg, err := resolveDatabase()
	if err != nil {
		return err
	}

	var records []catch.Record
	err = withStore(ctx, func(s store.Store) error {
		var err error
		records, err = s.ListCatches(ctx, "", query.DefaultSort())
		return err
	})
	if err != nil {
		return fmt.Errorf("read catches: %w", err)
	}
	totals := catch.Summarize(records)
	size, sizeKnown := databaseSize(dbCfg)

	if catchJSONOutput {
		out := map[string]any{
			"driver": dbCfg.Driver,
			"totals": totals,
		}
		if sizeKnown {
			out["size_bytes"] = size
		}
		return printJSON(cmd.OutOrStdout(), out)
	}

	sizeText := "-"
	if sizeKnown {
		sizeText = humanize.Bytes(uint64(size))
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintf(w, "Driver:\t%s\n", dbCfg.Driver)
	fmt.Fprintf(w, "Database size:\t%s\n", sizeText)
	fmt.Fprintf(w, "Total records:\t%s\n", humanize.Comma(int64(totals.Count)))
	fmt.Fprintf(w, "Total weight:\t%s kg\n", catch.FormatAmount(totals.WeightKg))
	fmt.Fprintf(w, "Estimated value:\t%s\n", catch.FormatAmount(totals.Value))
	w.Flush()

	return nil
}

// databaseSize reports the SQLite file size, including its WAL file.
// It has no answer for a server database or an in-memory one.
func databaseSize(cfg config.DatabaseConfig) (int64, bool) {
	if cfg.Driver != config.DriverSQLite || cfg.Path == ":memory:" {
		return 0, false
	}
	info, err := os.Stat(cfg.Path)
	if err != nil {
		return 0, false
	}
	size := info.Size()
	if wal, err := os.Stat(cfg.Path + "-wal"); err == nil {
		size += wal.Size()
	}
	return size, true
}
