// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-shelf/internal/core/catalog"
	"github.com/taibuivan/yomira-shelf/internal/platform/config"
)

func newCatalogCommand(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "catalog",
		Short: "Query the external manga catalog",
	}

	client := func(cmd *cobra.Command) (*catalog.Client, error) {
		cfg, err := config.LoadCatalog()
		if err != nil {
			return nil, err
		}
		return catalog.NewClient(catalog.ClientConfig{
			BaseURL:          cfg.CatalogBaseURL,
			Timeout:          cfg.CatalogTimeout,
			RateLimit:        cfg.CatalogRateLimit,
			RateLimitRetries: cfg.CatalogRateLimitRetries,
		}, logger(cmd)), nil
	}

	var page int
	search := &cobra.Command{
		Use:   "search <title>",
		Short: "Search titles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			searcher, err := client(cmd)
			if err != nil {
				return err
			}
			result, err := searcher.Search(cmd.Context(), strings.Join(args, " "), page)
			if err != nil {
				return err
			}
			printCandidates(cmd.OutOrStdout(), result.Items)
			if result.Meta.HasNext {
				fmt.Fprintf(cmd.OutOrStdout(), "more results: --page %d\n", result.Meta.Page+1)
			}
			return nil
		},
	}
	search.Flags().IntVarP(&page, "page", "p", 1, "result page")

	top := &cobra.Command{
		Use:   "top",
		Short: "List the most popular titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			searcher, err := client(cmd)
			if err != nil {
				return err
			}
			candidates, err := searcher.Top(cmd.Context())
			if err != nil {
				return err
			}
			printCandidates(cmd.OutOrStdout(), candidates)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <catalog-id>",
		Short: "Show one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("catalog id must be a number: %q", args[0])
			}
			searcher, err := client(cmd)
			if err != nil {
				return err
			}
			candidate, err := searcher.Details(cmd.Context(), catalogID)
			if err != nil {
				return err
			}
			printCandidates(cmd.OutOrStdout(), []catalog.Candidate{*candidate})
			if candidate.Synopsis != "" {
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprintln(cmd.OutOrStdout(), candidate.Synopsis)
			}
			return nil
		},
	}

	root.AddCommand(search, top, show)
	return root
}

func printCandidates(writer io.Writer, candidates []catalog.Candidate) {
	table := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(table, "ID\tTITLE\tENGLISH\tVOLUMES\tSCORE\tSTATUS")
	for _, candidate := range candidates {
		fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\t%s\n",
			candidate.CatalogID, candidate.Title, candidate.TitleEnglish,
			optional(candidate.Volumes, "%d"), optional(candidate.Score, "%.2f"), candidate.Status,
		)
	}
	_ = table.Flush()
}

func optional[T int | float64](value *T, format string) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf(format, *value)
}
