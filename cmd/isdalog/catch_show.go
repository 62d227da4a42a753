package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/isdalog/isdalog/internal/catch"
	"github.com/isdalog/isdalog/internal/store"
	"github.com/isdalog/isdalog/internal/types"
)

var catchShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one catch",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatchShow,
}

func runCatchShow(cmd *cobra.Command, args []string) error {
	id, err := parseCatchID(args[0])
	if err != nil {
		return err
	}
	ctx := context.Background()

	var rec *catch.Record
	err = withStore(ctx, func(s store.Store) error {
		var err error
		rec, err = s.GetCatch(ctx, id)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("catch %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("get catch: %w", err)
	}

	if catchJSONOutput {
		return printJSON(cmd.OutOrStdout(), types.NewCatch(*rec))
	}

	notes := rec.FishermanNotes
	if notes == "" {
		notes = "-"
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintf(w, "ID:\t%d\n", rec.ID)
	fmt.Fprintf(w, "Species:\t%s\n", rec.SpeciesName)
	fmt.Fprintf(w, "Date:\t%s\n", rec.CatchDate)
	fmt.Fprintf(w, "Method:\t%s\n", rec.CatchMethod)
	fmt.Fprintf(w, "Location:\t%s\n", rec.Location)
	fmt.Fprintf(w, "Weight:\t%s kg\n", rec.WeightKg.String())
	fmt.Fprintf(w, "Price/kg:\t%s\n", catch.FormatAmount(rec.PricePerKg))
	fmt.Fprintf(w, "Value:\t%s\n", catch.FormatAmount(rec.Value()))
	fmt.Fprintf(w, "Notes:\t%s\n", notes)
	w.Flush()

	return nil
}
