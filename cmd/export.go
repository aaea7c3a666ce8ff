package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetboard/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [DIR | gs://BUCKET/PREFIX]",
	Short: "Write every table as an Excel workbook",
	Long: "Writes budget_data.xlsx, fixed_expenses.xlsx, saving_goals.xlsx and monthly_plans.xlsx " +
		"to a directory or a Cloud Storage bucket. Defaults to [export] dir, then gcs_bucket, then the current directory.",
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	return withBudget(cmd, func(ctx context.Context, b *budget) error {
		dest := b.cfg.Export.Dir
		if dest == "" {
			dest = b.cfg.Export.GCSBucket
		}
		if len(args) == 1 {
			dest = args[0]
		}
		if dest == "" {
			dest = "."
		}

		snap, err := b.ctrl.Snapshot(ctx)
		if err != nil {
			return err
		}

		var written []string
		if export.IsBucketURI(dest) {
			up, err := export.NewGCS(ctx, dest)
			if err != nil {
				return err
			}
			defer up.Close()
			written, err = export.ToBucket(ctx, up, snap, b.tr)
			if err != nil {
				return err
			}
		} else {
			written, err = export.ToDir(dest, snap, b.tr)
			if err != nil {
				return err
			}
		}

		for _, w := range written {
			fmt.Printf("  %s\n", w)
		}
		b.log.Info().Str("dest", dest).Int("files", len(written)).Msg("export complete")
		return nil
	})
}
