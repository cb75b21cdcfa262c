// Package browse implements the country browsing command.
package browse

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/verdelabs/verde-go/internal/conf"
	"github.com/verdelabs/verde-go/internal/redlist"
	"github.com/verdelabs/verde-go/internal/species"
	"github.com/verdelabs/verde-go/internal/taxonomy"
	"github.com/verdelabs/verde-go/internal/wiki"
)

// Command creates the browse command.
func Command(settings *conf.Settings) *cobra.Command {
	var (
		categoryName string
		nameHint     string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "browse [country]",
		Short: "Browse conservation assessments for a country",
		Long: "Fetch, sample and enrich the latest conservation assessments for a country.\n" +
			"The country accepts a name, alias, alpha-2 or alpha-3 code.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, ok := taxonomy.ParseCategory(categoryName)
			if !ok {
				return fmt.Errorf("unknown category %q (want animal, plant, insect or marine)", categoryName)
			}
			return runBrowse(cmd, settings, args[0], category, nameHint, asJSON)
		},
	}

	cmd.Flags().StringVarP(&categoryName, "category", "c", "", "Filter by category (animal, plant, insect, marine)")
	cmd.Flags().StringVar(&nameHint, "name-hint", "", "Scientific name to fall back to when nothing aggregates")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit records as JSON")

	return cmd
}

func runBrowse(cmd *cobra.Command, settings *conf.Settings, countryToken string, category taxonomy.Category, nameHint string, asJSON bool) error {
	svc, err := buildService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	records, err := svc.BrowseByCountry(cmd.Context(), countryToken, category, nameHint)
	if err != nil {
		return fmt.Errorf("browse failed: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no species data for %q\n", countryToken)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCIENTIFIC NAME\tCOMMON NAME\tCATEGORY\tSTATUS\tFLAGS")
	for _, r := range records {
		var flags string
		if r.IsIconic {
			flags += "iconic "
		}
		if r.IsSearched {
			flags += "searched "
		}
		if r.Error {
			flags += "error"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.ScientificName, r.CommonName, r.Category, r.RiskLevel.StatusName(), flags)
	}
	return w.Flush()
}

func buildService(settings *conf.Settings) (*species.Service, error) {
	client, err := redlist.NewClient(redlist.Config{
		APIToken:    settings.RedList.APIToken,
		BaseURL:     settings.RedList.BaseURL,
		Timeout:     settings.RedList.Timeout,
		CacheTTL:    settings.RedList.CacheTTL,
		RateLimitMS: settings.RedList.RateLimitMS,
		PageCap:     settings.RedList.PageCap,
		PageSize:    settings.RedList.PageSize,
	})
	if err != nil {
		return nil, err
	}

	provider := wiki.NewProvider(wiki.Config{
		Language: settings.Wiki.Language,
		Timeout:  settings.Wiki.Timeout,
		CacheTTL: settings.Wiki.CacheTTL,
	})

	return species.NewService(species.Config{
		Concurrency:      int64(settings.Pipeline.Concurrency),
		Deadline:         settings.Pipeline.Deadline,
		SampleBudget:     settings.Pipeline.SampleBudget,
		SamplePartitions: settings.Pipeline.SamplePartitions,
		SampleThreshold:  settings.Pipeline.SampleThreshold,
		BrowseTTL:        settings.Pipeline.BrowseTTL,
	}, client, provider)
}
