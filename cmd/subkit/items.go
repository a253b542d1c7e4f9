package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/subkitapp/subkit/internal/cli"
	"github.com/subkitapp/subkit/internal/model"
)

func itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage recurring items",
		Long:  `List, add, and modify the subscriptions and memberships subkit tracks.`,
	}

	cmd.AddCommand(listItemsCmd())
	cmd.AddCommand(addItemCmd())
	cmd.AddCommand(removeItemCmd())
	cmd.AddCommand(workLifeCmd())
	cmd.AddCommand(markCandidateCmd())
	cmd.AddCommand(clearCandidateCmd())

	return cmd
}

func listItemsCmd() *cobra.Command {
	var includeInactive bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recurring items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			items, err := store.ListItems(ctx, includeInactive)
			if err != nil {
				return fmt.Errorf("failed to list items: %w", err)
			}

			if len(items) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No items yet. Use 'subkit items add' or 'subkit import csv'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "ID\tNAME\tAMOUNT\tCYCLE\tCATEGORY\tWORK/LIFE\tNEXT PAYMENT")
			for _, item := range items {
				next := "-"
				if !item.NextPaymentDate.IsZero() {
					next = item.NextPaymentDate.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					shortID(item.ID), item.Name, cli.FormatKRW(item.Amount),
					item.BillingCycle, item.CategoryL1, item.WorkLife, next)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeInactive, "all", false, "include inactive items")
	return cmd
}

func addItemCmd() *cobra.Command {
	var (
		name     string
		amount   float64
		cycle    string
		day      int
		category string
		workLife string
		nextDate string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recurring item",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			item := model.RecurringItem{
				ID:               uuid.NewString(),
				Name:             name,
				Amount:           amount,
				BillingCycle:     model.BillingCycle(strings.ToLower(cycle)),
				BillingDay:       day,
				CategoryL1:       strings.ToLower(category),
				WorkLife:         model.WorkLifeLife,
				UsageSignalScore: 0.5,
				Active:           true,
			}
			if strings.EqualFold(workLife, string(model.WorkLifeWork)) {
				item.WorkLife = model.WorkLifeWork
			}
			if nextDate != "" {
				due, err := time.Parse("2006-01-02", nextDate)
				if err != nil {
					return fmt.Errorf("invalid --next date %q (want YYYY-MM-DD): %w", nextDate, err)
				}
				item.NextPaymentDate = due
				if item.BillingDay == 0 {
					item.BillingDay = due.Day()
				}
			}

			if err := store.SaveItem(ctx, &item); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s (%s)", item.Name, shortID(item.ID))))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "service name (required)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "billed amount in KRW (required)")
	cmd.Flags().StringVar(&cycle, "cycle", "monthly", "billing cycle (monthly, yearly)")
	cmd.Flags().IntVar(&day, "day", 1, "billing day of month")
	cmd.Flags().StringVar(&category, "category", "", "service category (e.g. entertainment)")
	cmd.Flags().StringVar(&workLife, "work-life", "Life", "Work or Life")
	cmd.Flags().StringVar(&nextDate, "next", "", "next payment date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func removeItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <itemID>",
		Short: "Remove a recurring item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteItem(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Removed " + args[0]))
			return nil
		},
	}
}

func workLifeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worklife <itemID> <Work|Life>",
		Short: "Toggle the work/life classification of an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			wl := model.WorkLifeLife
			if strings.EqualFold(args[1], string(model.WorkLifeWork)) {
				wl = model.WorkLifeWork
			} else if !strings.EqualFold(args[1], string(model.WorkLifeLife)) {
				return fmt.Errorf("invalid classification %q (want Work or Life)", args[1])
			}

			if err := store.SetWorkLife(ctx, args[0], wl); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Marked %s as %s", args[0], wl)))
			return nil
		},
	}
}

func markCandidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-candidate <itemID>",
		Short: "Flag an item for cancellation review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.MarkCancelCandidate(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Flagged " + args[0] + " for cancellation review"))
			return nil
		},
	}
}

func clearCandidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-candidate <itemID>",
		Short: "Clear the cancellation-review flag from an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ClearCancelCandidate(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Cleared flag from " + args[0]))
			return nil
		},
	}
}

// shortID trims UUIDs for table display; explicit ids pass through.
func shortID(id string) string {
	if len(id) > 8 && strings.Count(id, "-") == 4 {
		return id[:8]
	}
	return id
}
