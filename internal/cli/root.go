// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements shelfctl, the operator tool for Yomira Shelf.

It runs schema migrations and queries the manga catalog from a terminal using
the same configuration variables as the API server.
*/
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-shelf/internal/platform/constants"
)

// NewRootCommand builds the shelfctl command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "shelfctl",
		Short:         "Operate a Yomira Shelf deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	logger := func(cmd *cobra.Command) *slog.Logger {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		return newLogger(cmd.ErrOrStderr(), level)
	}

	root.AddCommand(
		newMigrateCommand(logger),
		newCatalogCommand(logger),
		newVersionCommand(),
	)
	return root
}

func newLogger(writer io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the shelfctl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", constants.AppName, constants.AppVersion)
		},
	}
}
