package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/isdalog/isdalog/internal/store"
)

var deleteForce bool

var catchDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a catch permanently",
	Long:  "Permanently delete one catch record. Requires --force or interactive confirmation.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatchDelete,
}

func init() {
	catchDeleteCmd.Flags().BoolVar(&deleteForce, "force", false,
		"Skip confirmation prompt")
}

func runCatchDelete(cmd *cobra.Command, args []string) error {
	id, err := parseCatchID(args[0])
	if err != nil {
		return err
	}
	ctx := context.Background()

	// Interactive confirmation unless --force
	if !deleteForce {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "WARNING: This will permanently delete catch %d.\n", id)
		fmt.Fprint(errOut, "Type the catch id to confirm: ")

		reader := bufio.NewReader(cmd.InOrStdin())
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}

		if strings.TrimSpace(input) != strconv.FormatInt(id, 10) {
			fmt.Fprintln(errOut, "Aborted. Catch id did not match.")
			return nil
		}
	}

	err = withStore(ctx, func(s store.Store) error {
		return s.DeleteCatch(ctx, id)
	})
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("catch %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("delete catch: %w", err)
	}

	if catchJSONOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"id":      id,
			"deleted": true,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted catch %d\n", id)
	return nil
}
