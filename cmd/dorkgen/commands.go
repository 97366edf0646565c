package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Ayash-Bera/dorkgen/internal/dorking"
	"github.com/spf13/cobra"
)

var errEmptyQuery = errors.New("query is required")

// queryArg joins args into the query; it is only trimmed to detect blanks.
func queryArg(args []string) (string, error) {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return "", errEmptyQuery
	}
	return query, nil
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	pretty, _ := cmd.Flags().GetBool("pretty")
	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func newBuildCmd() *cobra.Command {
	var site string
	var dorkOnly bool

	cmd := &cobra.Command{
		Use:   "build [query]",
		Short: "Build a dork query and search URL",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := queryArg(args)
			if err != nil {
				return err
			}
			result := dorking.NewEngine().Generate(query, site)
			if dorkOnly {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), result.DorkQuery)
				return err
			}
			return writeJSON(cmd, result)
		},
	}
	cmd.Flags().StringVar(&site, "site", "", "Restrict results to this site")
	cmd.Flags().BoolVar(&dorkOnly, "dork-only", false, "Print only the dork query")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [query]",
		Short: "List detected intents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := queryArg(args)
			if err != nil {
				return err
			}
			return writeJSON(cmd, dorking.NewEngine().Analyze(query))
		},
	}
}

func newSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [query]",
		Short: "Print follow-up suggestions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := queryArg(args)
			if err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), dorking.NewEngine().Suggest(query))
		},
	}
}

func newTaxonomyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "taxonomy",
		Short: "Dump the operator taxonomy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd, dorking.NewEngine().Taxonomy())
		},
	}
}

func printLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
