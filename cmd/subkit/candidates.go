package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/subkitapp/subkit/internal/cli"
)

func candidatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "candidates",
		Short: "List cancellation candidates",
		Long:  `Show the items the engine scores as worth cancelling, with reasons.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			overview, err := loadSnapshot(ctx, store, time.Now())
			if err != nil {
				return err
			}

			if len(overview.Candidates) == 0 {
				fmt.Println(cli.FormatSuccess("No cancellation candidates."))
				return nil
			}

			items, err := store.ListItems(ctx, false)
			if err != nil {
				return fmt.Errorf("failed to list items: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "ITEM\tSCORE\tREASON")
			for _, c := range overview.Candidates {
				fmt.Fprintf(w, "%s\t%.2f\t%s\n", itemName(items, c.ItemID), c.Score, c.Reason)
			}
			return nil
		},
	}
}
