package cli

import (
	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-impact-report/internal/report"
)

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run the analysis and export aggregates as a spreadsheet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.pushMetrics()

			result, err := runPipeline(cmd, a)
			if err != nil {
				return err
			}

			if err := report.WriteWorkbook(out, result.Aggregates); err != nil {
				return err
			}
			a.logger.Info("aggregates exported", "path", out, "categories", len(result.Aggregates))
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "storm_aggregates.xlsx", "output workbook path")
	return cmd
}
