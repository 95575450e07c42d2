package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-impact-report/internal/dataset"
	"github.com/couchcryptid/storm-impact-report/internal/pipeline"
	"github.com/couchcryptid/storm-impact-report/internal/report"
	"github.com/couchcryptid/storm-impact-report/internal/snapshot"
)

func newReportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the analysis and render the impact report",
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

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			inScope := 0
			for _, rec := range result.Records {
				if rec.InScope {
					inScope++
				}
			}
			return report.NewRenderer(w).Render(result.Aggregates, inScope)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	return cmd
}

// runPipeline assembles and runs the load-enrich-aggregate pipeline.
func runPipeline(cmd *cobra.Command, a *app) (pipeline.Result, error) {
	fetcher := dataset.NewDownloader(a.cfg.DownloadTimeout, a.logger)
	store := snapshot.NewStore(a.cfg.SnapshotPath(), a.logger)

	p := pipeline.New(fetcher, store, a.logger, a.metrics, a.cfg.SourceURL, a.cfg.ArchivePath())
	return p.Run(cmd.Context())
}
