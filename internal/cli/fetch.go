package cli

import (
	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-impact-report/internal/dataset"
)

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the raw archive if it is not already present",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			fetcher := dataset.NewDownloader(a.cfg.DownloadTimeout, a.logger)
			return fetcher.Fetch(cmd.Context(), a.cfg.SourceURL, a.cfg.ArchivePath())
		},
	}
}
