package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/isdalog/isdalog/internal/catch"
	"github.com/isdalog/isdalog/internal/query"
	"github.com/isdalog/isdalog/internal/store"
	"github.com/isdalog/isdalog/internal/types"
)

var (
	listSearch string
	listSort   string
	listOrder  string
)

var catchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catches with totals",
	Args:  cobra.NoArgs,
	RunE:  runCatchList,
}

func init() {
	catchListCmd.Flags().StringVar(&listSearch, "search", "",
		"Only catches whose species or location contains this text")
	catchListCmd.Flags().StringVar(&listSort, "sort", string(query.SortCatchDate),
		"Sort column: catch_date, species_name, weight_kg or price_per_kg")
	catchListCmd.Flags().StringVar(&listOrder, "order", string(query.Desc),
		"Sort direction: ASC or DESC")
}

func runCatchList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	sort := query.ParseSort(listSort, listOrder)

	var records []catch.Record
	err := withStore(ctx, func(s store.Store) error {
		var err error
		records, err = s.ListCatches(ctx, listSearch, sort)
		return err
	})
	if err != nil {
		return fmt.Errorf("list catches: %w", err)
	}

	if catchJSONOutput {
		return printJSON(cmd.OutOrStdout(), types.NewCatchList(records, listSearch, types.SortInfo{
			Column: string(sort.Column),
			Order:  string(sort.Direction),
		}))
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No catches found.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tDATE\tSPECIES\tMETHOD\tWEIGHT (KG)\tPRICE/KG\tVALUE\tLOCATION")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.CatchDate,
			r.SpeciesName,
			r.CatchMethod,
			r.WeightKg.String(),
			catch.FormatAmount(r.PricePerKg),
			catch.FormatAmount(r.Value()),
			r.Location,
		)
	}
	w.Flush()

	totals := catch.Summarize(records)
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d records, %s kg, estimated value %s\n",
		totals.Count, catch.FormatAmount(totals.WeightKg), catch.FormatAmount(totals.Value))
	return nil
}
