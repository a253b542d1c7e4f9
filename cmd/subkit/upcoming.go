package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/subkitapp/subkit/internal/cli"
)

func upcomingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upcoming",
		Short: "Show payments due in the next seven days",
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

			if len(overview.Upcoming) == 0 {
				fmt.Println(cli.FormatSuccess("Nothing due in the next 7 days."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "DUE\tNAME\tAMOUNT\tTYPE")
			for _, p := range overview.Upcoming {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					cli.FormatDDay(p.DaysUntil), p.Name, cli.FormatKRW(p.Amount), p.Kind)
			}
			return nil
		},
	}
}
