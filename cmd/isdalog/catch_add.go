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

var addFields catch.RawFields

// errInvalidCatch is returned after the field errors have been printed.
var errInvalidCatch = errors.New("catch not recorded: invalid fields")

var catchAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new catch",
	Long:  "Record a new catch. Fields are validated exactly as the web form validates them.",
	Args:  cobra.NoArgs,
	RunE:  runCatchAdd,
}

func init() {
	catchAddCmd.Flags().StringVar(&addFields.SpeciesName, "species", "", "Fish species (required)")
	catchAddCmd.Flags().StringVar(&addFields.WeightKg, "weight", "", "Weight in kg, greater than zero (required)")
	catchAddCmd.Flags().StringVar(&addFields.PricePerKg, "price", "", "Price per kg, zero or more (required)")
	catchAddCmd.Flags().StringVar(&addFields.CatchDate, "date", "", "Date caught, YYYY-MM-DD (required)")
	catchAddCmd.Flags().StringVar(&addFields.CatchMethod, "method", "", "Net, Line, Trap, Spear or Trawl (required)")
	catchAddCmd.Flags().StringVar(&addFields.Location, "location", "", "Location or fishing zone (required)")
	catchAddCmd.Flags().StringVar(&addFields.FishermanNotes, "notes", "", "Optional notes")
}

func runCatchAdd(cmd *cobra.Command, args []string) error {
	res := catch.Validate(addFields)
	if !res.Valid() {
		errOut := cmd.ErrOrStderr()
		for _, e := range res.FieldErrors() {
			fmt.Fprintf(errOut, "  %s\n", catch.Describe(e.Field, e.Message))
		}
		return errInvalidCatch
	}

	ctx := context.Background()
	rec := *res.Record
	err := withStore(ctx, func(s store.Store) error {
		id, err := s.CreateCatch(ctx, rec)
		rec.ID = id
		return err
	})
	if err != nil {
		return fmt.Errorf("record catch: %w", err)
	}

	if catchJSONOutput {
		return printJSON(cmd.OutOrStdout(), types.NewCatch(rec))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded catch %d: %s, %s kg at %s\n",
		rec.ID, rec.SpeciesName, rec.WeightKg.String(), rec.Location)
	return nil
}
