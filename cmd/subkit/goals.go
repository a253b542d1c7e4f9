package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/subkitapp/subkit/internal/cli"
	"github.com/subkitapp/subkit/internal/model"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage personal goals and growth links",
		Long: `Goals protect the spend that supports them: linking an item to a goal
as primary keeps it off the cancellation candidate list.`,
	}

	cmd.AddCommand(listGoalsCmd())
	cmd.AddCommand(addGoalCmd())
	cmd.AddCommand(linkGoalCmd())
	cmd.AddCommand(unlinkGoalCmd())

	return cmd
}

func listGoalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals and their linked items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			goals, err := store.ListGoals(ctx)
			if err != nil {
				return fmt.Errorf("failed to list goals: %w", err)
			}
			if len(goals) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No goals yet. Use 'subkit goals add'."))
				return nil
			}

			links, err := store.ListGrowthLinks(ctx)
			if err != nil {
				return fmt.Errorf("failed to list growth links: %w", err)
			}
			items, err := store.ListItems(ctx, true)
			if err != nil {
				return fmt.Errorf("failed to list items: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "ID\tTITLE\tLINKED ITEMS")
			for _, g := range goals {
				var linked []string
				for _, l := range links {
					if l.GoalID != g.ID {
						continue
					}
					label := itemName(items, l.ItemID)
					if l.Weight == model.WeightPrimary {
						label += " (primary)"
					}
					linked = append(linked, label)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", shortID(g.ID), g.Title, strings.Join(linked, ", "))
			}
			return nil
		},
	}
}

func addGoalCmd() *cobra.Command {
	var growthType string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			goal := model.Goal{
				ID:         uuid.NewString(),
				Title:      args[0],
				GrowthType: growthType,
			}
			if err := store.CreateGoal(ctx, &goal); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added goal %q (%s)", goal.Title, shortID(goal.ID))))
			return nil
		},
	}

	cmd.Flags().StringVar(&growthType, "type", "", "growth type (e.g. language, fitness, career)")
	return cmd
}

func linkGoalCmd() *cobra.Command {
	var weight string

	cmd := &cobra.Command{
		Use:   "link <goalID> <itemID>",
		Short: "Link a recurring item to a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.LinkItemToGoal(ctx, args[0], args[1], model.LinkWeight(weight)); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Linked %s to %s (%s)", args[1], args[0], weight)))
			return nil
		},
	}

	cmd.Flags().StringVar(&weight, "weight", string(model.WeightPrimary), "link weight: primary or secondary")
	return cmd
}

func unlinkGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <goalID> <itemID>",
		Short: "Remove a goal link",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.UnlinkItemFromGoal(ctx, args[0], args[1]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Unlinked %s from %s", args[1], args[0])))
			return nil
		},
	}
}
