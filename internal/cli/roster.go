package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"quiz-admin-service/internal/infra/filestore"
	redisstore "quiz-admin-service/internal/infra/redis"
	"quiz-admin-service/internal/roster"
)

// NewRosterCmd groups roster maintenance commands.
func NewRosterCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the student roster",
	}
	cmd.AddCommand(newRosterImportCmd(configPath))
	return cmd
}

func newRosterImportCmd(configPath *string) *cobra.Command {
	importCfg := roster.DefaultImportConfig()
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Merge registration numbers from an XLSX or CSV file into the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := loadComponents(ctx, *configPath)
			if err != nil {
				return err
			}
			defer c.Close()

			regs, err := roster.ReadRegNumbers(importCfg)
			if err != nil {
				return err
			}
			added, err := c.files.MergeRoster(ctx, regs)
			if err != nil {
				return err
			}

			if c.redis != nil && c.cfg.Roster.Cache == "redis" {
				repo := redisstore.NewRosterRepository(c.redis, c.files, 0)
				if err := repo.Invalidate(ctx); err != nil {
					c.logger.Warn("roster cache not invalidated", "error", err)
				}
			}

			c.logger.Info("roster imported", "file", importCfg.FilePath, "read", len(regs), "added", added)
			fmt.Fprintf(cmd.OutOrStdout(), "read %d, added %d to %s\n", len(regs), added, filestore.StudentsFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&importCfg.FilePath, "file", "", "XLSX or CSV file with registration numbers")
	cmd.Flags().StringVar(&importCfg.SheetName, "sheet", importCfg.SheetName, "sheet name (XLSX only, defaults to the first sheet)")
	cmd.Flags().StringVar(&importCfg.Column, "column", importCfg.Column, "column letter holding registration numbers")
	cmd.Flags().BoolVar(&importCfg.SkipHeader, "skip-header", importCfg.SkipHeader, "skip the first row")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
