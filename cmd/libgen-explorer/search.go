// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IanJ332/PyLibGen/internal/client"
	"github.com/IanJ332/PyLibGen/internal/export"
	"github.com/IanJ332/PyLibGen/internal/extract"
	"github.com/IanJ332/PyLibGen/internal/feature"
	"github.com/IanJ332/PyLibGen/internal/rank"
	"github.com/IanJ332/PyLibGen/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search catalog mirrors and rank the results",
	Long: `Search queries a catalog mirror, extracts structured records from the
result listing, enriches them with derived attributes, and ranks them by
relevance to the query. Scored results are saved to the local store and can
be exported to csv, json, yaml, or txt.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 0, "maximum number of results (default 25)")
	searchCmd.Flags().StringSlice("fields", nil, "fields to search in (e.g. title,author)")
	searchCmd.Flags().String("weights", "", "custom rating weights as a JSON object")
	searchCmd.Flags().Int("top", 0, "number of top results to display (default 10)")
	searchCmd.Flags().Bool("explain", false, "print per-factor rating explanations")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("export", "", "export format (csv, json, yaml, txt)")
	searchCmd.Flags().String("output", "", "output directory for exported files")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	cfg := loadConfig()
	ctx := context.Background()

	limit, _ := cmd.Flags().GetInt("limit")
	fields, _ := cmd.Flags().GetStringSlice("fields")
	topN, _ := cmd.Flags().GetInt("top")
	if topN <= 0 {
		topN = cfg.Rank.TopN
	}

	weights := cfg.Rank.Weights
	if weightsJSON, _ := cmd.Flags().GetString("weights"); weightsJSON != "" {
		weights = map[string]float64{}
		if err := json.Unmarshal([]byte(weightsJSON), &weights); err != nil {
			return fmt.Errorf("invalid rating weights: %w", err)
		}
	}

	c, err := client.New(cfg.Mirror, os.Stderr)
	if err != nil {
		return err
	}

	body, contentType, err := c.Search(ctx, query, fields, limit)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	// Mirrors answer with HTML or JSON depending on the endpoint; pick
	// the matching source.
	var source extract.ResultSource
	if strings.Contains(contentType, "application/json") {
		source = &extract.JSONSource{Progress: os.Stderr}
	} else {
		source = &extract.HTMLSource{Fetcher: c, Progress: os.Stderr}
	}

	coll, err := source.Parse(ctx, body)
	if err != nil {
		return fmt.Errorf("parsing results: %w", err)
	}
	if coll.Empty() {
		fmt.Println("No results found.")
		return nil
	}

	feature.Enrich(&coll)

	rater := rank.NewRater(weights)
	scored := rater.Rate(coll, query)

	// Persist best-effort: a failed write never fails the search.
	if st, err := store.Open(cfg.Store); err == nil {
		if err := st.SaveResults(ctx, query, scored); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save results: %v\n", err)
		}
		st.Close()
	} else {
		fmt.Fprintf(os.Stderr, "warning: could not open store: %v\n", err)
	}

	top := rank.TopN(scored, topN)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if err := rank.FormatJSON(top, os.Stdout); err != nil {
			return err
		}
	} else {
		rank.FormatTable(top, os.Stdout)
	}

	if explain, _ := cmd.Flags().GetBool("explain"); explain {
		printExplanations(rater.Explain(scored, topN))
	}

	if format, _ := cmd.Flags().GetString("export"); format != "" {
		if dir, _ := cmd.Flags().GetString("output"); dir != "" {
			cfg.Export.OutputDir = dir
		}
		exp, err := export.New(cfg.Export)
		if err != nil {
			return err
		}
		path, err := exp.Export(scored, exportFilename(query), format)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "exported: %s\n", path)
	}
	return nil
}

func printExplanations(explanations []rank.Explanation) {
	for i, e := range explanations {
		fmt.Printf("\n%d. %s / %s (%.3f)\n", i+1, e.Title, e.Author, e.Overall)
		for _, name := range rank.FactorNames {
			f := e.Factors[name]
			fmt.Printf("   %-13s %.2f × %.2f  %s\n", name, f.Score, f.Weight, f.Explanation)
		}
	}
}

// exportFilename derives a filesystem-safe stem from the query.
func exportFilename(query string) string {
	stem := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, strings.TrimSpace(query))
	if stem == "" {
		stem = "results"
	}
	return "results_" + stem
}
