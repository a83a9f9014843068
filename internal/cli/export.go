package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"quiz-admin-service/internal/domain"
)

// NewExportCmd runs export/clear once and writes the file locally.
func NewExportCmd(configPath *string) *cobra.Command {
	var (
		out    string
		format string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all results to a file and clear them from the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadComponents(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer c.Close()

			file, err := c.results.ExportAndClear(cmd.Context(), format)
			if errors.Is(err, domain.ErrNothingToExport) {
				c.logger.Info("no results to export")
				return nil
			}
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = file.Name
			}
			if err := os.WriteFile(path, file.Data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			c.logger.Info("results exported", "file", path, "rows", file.Rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (defaults to quiz_results.<format>)")
	cmd.Flags().StringVar(&format, "format", "csv", "export format: csv or xlsx")
	return cmd
}
