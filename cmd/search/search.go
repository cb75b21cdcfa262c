// Package search implements the free-text species search command.
package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verdelabs/verde-go/internal/conf"
	"github.com/verdelabs/verde-go/internal/country"
	"github.com/verdelabs/verde-go/internal/search"
	"github.com/verdelabs/verde-go/internal/taxonomy"
)

// Command creates the search command. The search path is entirely
// local; it needs no API token and makes no network call.
func Command(_ *conf.Settings) *cobra.Command {
	var (
		categoryName string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the curated species index",
		Long: "Match a free-text query (English, Korean or scientific name) against the\n" +
			"curated species index and report the countries of the best match.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, ok := taxonomy.ParseCategory(categoryName)
			if !ok {
				return fmt.Errorf("unknown category %q (want animal, plant, insect or marine)", categoryName)
			}
			return runSearch(cmd, strings.Join(args, " "), category, asJSON)
		},
	}

	cmd.Flags().StringVarP(&categoryName, "category", "c", "", "Filter by category (animal, plant, insect, marine)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the result as JSON")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, category taxonomy.Category, asJSON bool) error {
	index, err := search.NewIndex()
	if err != nil {
		return fmt.Errorf("building search index: %w", err)
	}

	result := index.CountriesFor(query, category)

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Countries             []string          `json:"countries"`
			MatchedName           string            `json:"matched_name,omitempty"`
			MatchedCategory       taxonomy.Category `json:"matched_category,omitempty"`
			MatchedScientificName string            `json:"matched_scientific_name,omitempty"`
		}{result.Countries, result.MatchedName, result.MatchedCategory, result.MatchedScientificName})
	}

	if result.MatchedScientificName == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "no match for %q\n", query)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %s)\n",
		result.MatchedName, result.MatchedScientificName, result.MatchedCategory)
	for _, code := range result.Countries {
		if name, ok := country.Name(code); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", code, name)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", code)
		}
	}
	return nil
}
