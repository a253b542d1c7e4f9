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

func commitmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commitments",
		Short: "Manage installments, insurance, and savings",
		Long: `Commitments are obligations with their own due dates. They show up in
the upcoming-payment window but are never cancellation candidates.`,
	}

	cmd.AddCommand(listCommitmentsCmd())
	cmd.AddCommand(addCommitmentCmd())
	cmd.AddCommand(removeCommitmentCmd())

	return cmd
}

func listCommitmentsCmd() *cobra.Command {
	var includeInactive bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List commitments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			commitments, err := store.ListCommitments(ctx, includeInactive)
			if err != nil {
				return fmt.Errorf("failed to list commitments: %w", err)
			}
			if len(commitments) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No commitments yet. Use 'subkit commitments add'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "ID\tNAME\tKIND\tAMOUNT\tNEXT DUE\tREMAINING")
			for _, c := range commitments {
				due := "-"
				if !c.NextDueDate.IsZero() {
					due = c.NextDueDate.Format("2006-01-02")
				}
				remaining := "-"
				if c.RemainingPayments > 0 {
					remaining = fmt.Sprintf("%d", c.RemainingPayments)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					shortID(c.ID), c.Name, c.Kind, cli.FormatKRW(c.Amount), due, remaining)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeInactive, "all", false, "include inactive commitments")
	return cmd
}

func addCommitmentCmd() *cobra.Command {
	var (
		name      string
		kind      string
		amount    float64
		day       int
		remaining int
		nextDate  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a commitment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			c := model.CommitmentItem{
				ID:                uuid.NewString(),
				Name:              name,
				Kind:              model.CommitmentKind(strings.ToLower(kind)),
				Amount:            amount,
				BillingDay:        day,
				RemainingPayments: remaining,
				Active:            true,
			}
			switch c.Kind {
			case model.CommitmentInstallment, model.CommitmentInsurance, model.CommitmentSavings:
			default:
				return fmt.Errorf("invalid kind %q (want installment, insurance, or savings)", kind)
			}
			if nextDate != "" {
				due, err := time.Parse("2006-01-02", nextDate)
				if err != nil {
					return fmt.Errorf("invalid --next date %q (want YYYY-MM-DD): %w", nextDate, err)
				}
				c.NextDueDate = due
				if c.BillingDay == 0 {
					c.BillingDay = due.Day()
				}
			}

			if err := store.SaveCommitment(ctx, &c); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s (%s)", c.Name, shortID(c.ID))))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "commitment name (required)")
	cmd.Flags().StringVar(&kind, "kind", "installment", "kind: installment, insurance, savings")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount per payment in KRW (required)")
	cmd.Flags().IntVar(&day, "day", 0, "billing day of month")
	cmd.Flags().IntVar(&remaining, "remaining", 0, "remaining payments, 0 for open-ended")
	cmd.Flags().StringVar(&nextDate, "next", "", "next due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func removeCommitmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <commitmentID>",
		Short: "Remove a commitment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteCommitment(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Removed " + args[0]))
			return nil
		},
	}
}
