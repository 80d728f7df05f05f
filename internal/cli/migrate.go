// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-shelf/internal/platform/config"
	"github.com/taibuivan/yomira-shelf/internal/platform/migration"
)

func newMigrateCommand(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger(cmd)); err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Show the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			status, err := migration.Version(cfg.DatabaseURL, cfg.MigrationPath, logger(cmd))
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}

			switch {
			case status.Empty:
				fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
			case status.Dirty:
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty)\n", status.Version)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "version %d\n", status.Version)
			}
			return nil
		},
	}

	migrate.AddCommand(up, version)
	return migrate
}
