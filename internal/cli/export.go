package cli

import (
	"fmt"

	"Admin-Console/internal/app/ds"
	"Admin-Console/internal/app/export"

	"github.com/spf13/cobra"
)

func newExportCommand(app *consoleApp) *cobra.Command {
	var (
		format string
		search string
		name   string
		dir    string
	)

	cmd := &cobra.Command{
		Use:   "export <endpoint>",
		Short: "Download a filtered table as Excel or PDF",
		Example: `  # Export all users to Excel
  consolectl export users --format excel

  # Export pending orders to PDF into ./reports
  consolectl export orders --format pdf --filter status=pending --name pending --dir reports`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			filters, err := filtersFlag(cmd.Flags())
			if err != nil {
				return err
			}
			if err := app.waitSession(cmd.Context()); err != nil {
				return err
			}

			req := export.Request{
				Endpoint: args[0],
				Filters:  filters,
				Search:   search,
				FileName: name,
				Format:   f,
			}

			download, err := export.NewExporter(app.client).Export(cmd.Context(), req)
			if err != nil {
				return err
			}

			if dir == "" {
				dir = app.cfg.DownloadDir
			}
			path, err := export.LocalSink{Dir: dir}.Save(cmd.Context(), download)
			if err != nil {
				return err
			}

			if app.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), map[string]any{
					"file":         path,
					"content_type": download.ContentType,
					"size":         len(download.Body),
				})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", path, len(download.Body))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(ds.ExportExcel), "export format (excel|pdf)")
	cmd.Flags().StringToString("filter", nil, "filter criteria (key=value)")
	cmd.Flags().StringVar(&search, "search", "", "search text")
	cmd.Flags().StringVar(&name, "name", "", "file name without extension (default: endpoint)")
	cmd.Flags().StringVar(&dir, "dir", "", "download directory (default from config)")

	return cmd
}
