package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/subkitapp/subkit/internal/cli"
	"github.com/subkitapp/subkit/internal/model"
)

func overviewCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show the finance overview and what to look at next",
		Long: `Run the decision engine over the current records and show aggregate
spend, risk, and the single recommended next step.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			overview, err := loadSnapshot(ctx, store, time.Now())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(overview)
			}

			fmt.Println(cli.FormatTitle("Overview"))
			fmt.Printf("Fixed cost this month:  %s\n", cli.FormatKRW(overview.Metrics.FixedCostThisMonth))
			fmt.Printf("Due in the next 7 days: %s\n", cli.FormatKRW(overview.Metrics.Upcoming7DaysAmount))
			fmt.Printf("Risk:                   %s\n\n", cli.FormatRisk(overview.Summary.Risk))

			fmt.Printf("Duplicate groups:        %d\n", overview.Summary.Overlaps.CountGroups)
			fmt.Printf("Cancellation candidates: %d\n", overview.Summary.Candidates.CountItems)
			if nearest := overview.Summary.Upcoming.NearestDDay; nearest != nil {
				fmt.Printf("Upcoming payments:       %d (nearest %s)\n", overview.Summary.Upcoming.CountPayments, cli.FormatDDay(*nearest))
			} else {
				fmt.Printf("Upcoming payments:       0\n")
			}

			fmt.Println()
			fmt.Println(recommendationLine(overview.Recommended))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the overview as JSON")
	return cmd
}

func recommendationLine(state model.FinanceState) string {
	switch state {
	case model.StateOverlaps:
		return cli.FormatWarning("Next: review duplicate subscriptions (subkit duplicates list)")
	case model.StateCandidates:
		return cli.FormatWarning("Next: review cancellation candidates (subkit candidates)")
	case model.StateUpcoming:
		return cli.FormatWarning("Next: check this week's payments (subkit upcoming)")
	default:
		return cli.FormatSuccess("All clear. Nothing needs your attention right now.")
	}
}
