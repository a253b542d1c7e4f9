package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/subkitapp/subkit/internal/cli"
	"github.com/subkitapp/subkit/internal/common"
	"github.com/subkitapp/subkit/internal/importer"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import recurring items from external files",
	}

	cmd.AddCommand(importCSVCmd())
	return cmd
}

func importCSVCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "csv <file>",
		Short: "Import recurring items from a CSV export",
		Long: `Import a CSV file with the columns name, amount, billing_cycle,
billing_day, category, work_life, and next_payment_date. Malformed rows
are skipped and reported; valid rows become recurring items.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return common.NewUserError("failed to open import file", err)
			}
			defer func() { _ = f.Close() }()

			result, err := importer.ParseRecurringCSV(f, time.Now().UTC())
			if err != nil {
				return common.NewUserError("import failed", err)
			}

			for _, skipped := range result.Skipped {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("line %d skipped: %s", skipped.Line, skipped.Reason)))
			}

			if dryRun {
				fmt.Printf("Would import %d items (%d rows skipped)\n", len(result.Items), len(result.Skipped))
				return nil
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			bar := progressbar.Default(int64(len(result.Items)), "importing")
			for i := range result.Items {
				if err := store.SaveItem(ctx, &result.Items[i]); err != nil {
					return fmt.Errorf("failed to save %s: %w", result.Items[i].Name, err)
				}
				_ = bar.Add(1)
			}

			common.LogInfo("import complete", common.Fields{
				"file":     args[0],
				"imported": len(result.Items),
				"skipped":  len(result.Skipped),
			})
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d items (%d rows skipped)", len(result.Items), len(result.Skipped))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and report without saving")
	return cmd
}
