package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/subkitapp/subkit/internal/cli"
	"github.com/subkitapp/subkit/internal/model"
	"github.com/subkitapp/subkit/internal/service"
)

func usageCheckCmd() *cobra.Command {
	var (
		frequency    string
		duplicateAck bool
		wantsCancel  bool
	)

	cmd := &cobra.Command{
		Use:   "usage-check <itemID>",
		Short: "Answer a usage check for an item",
		Long: `Record how often you actually use an item. The answer updates the
item's usage signal and feeds the next candidate scoring run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			response := service.UsageCheckResponse{
				ItemID:          args[0],
				Frequency:       model.UsageFrequency(frequency),
				HasDuplicateAck: duplicateAck,
			}
			if wantsCancel {
				response.RetentionIntent = model.RetentionCancelCandidate
			}

			if err := store.SubmitUsageCheck(ctx, response); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded usage check for %s (%s)", args[0], frequency)))
			return nil
		},
	}

	cmd.Flags().StringVar(&frequency, "frequency", "", "usage frequency: rarely, sometimes, often (required)")
	cmd.Flags().BoolVar(&duplicateAck, "duplicate-ack", false, "acknowledge the item overlaps another subscription")
	cmd.Flags().BoolVar(&wantsCancel, "cancel-candidate", false, "also flag the item for cancellation review")
	_ = cmd.MarkFlagRequired("frequency")

	return cmd
}
