package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/subkitapp/subkit/internal/cli"
	"github.com/subkitapp/subkit/internal/model"
)

func duplicatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Review overlapping subscriptions",
		Long:  `List duplicate subscription groups and resolve or dismiss them.`,
	}

	cmd.AddCommand(listDuplicatesCmd())
	cmd.AddCommand(resolveDuplicateCmd())
	cmd.AddCommand(dismissDuplicateCmd())

	return cmd
}

func listDuplicatesCmd() *cobra.Command {
	var includeClosed bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List duplicate subscription groups",
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

			items, err := store.ListItems(ctx, false)
			if err != nil {
				return fmt.Errorf("failed to list items: %w", err)
			}

			shown := 0
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "GROUP\tPURPOSE\tMEMBERS\tKEEP\tSAVINGS/MO\tSTATUS")
			for _, g := range overview.Groups {
				if !includeClosed && g.Status != model.StatusDetected {
					continue
				}
				names := make([]string, 0, len(g.ItemIDs))
				for _, id := range g.ItemIDs {
					names = append(names, itemName(items, id))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					g.ID, g.Purpose, strings.Join(names, ", "),
					itemName(items, g.SuggestedKeepID),
					cli.FormatKRW(g.PotentialSavings), g.Status)
				shown++
			}
			_ = w.Flush()

			if shown == 0 {
				fmt.Println(cli.FormatSuccess("No overlapping subscriptions."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeClosed, "all", false, "include resolved and dismissed groups")
	return cmd
}

func resolveDuplicateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <groupID> <keepItemID>",
		Short: "Resolve a duplicate group by choosing the item to keep",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ResolveDuplicateGroup(ctx, args[0], args[1]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Resolved %s, keeping %s", args[0], args[1])))
			return nil
		},
	}
}

func dismissDuplicateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <groupID>",
		Short: "Dismiss a duplicate group as intentional",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DismissDuplicateGroup(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Dismissed " + args[0]))
			return nil
		},
	}
}
