// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IanJ332/PyLibGen/internal/dataset"
	"github.com/IanJ332/PyLibGen/internal/export"
	"github.com/IanJ332/PyLibGen/internal/rank"
	"github.com/IanJ332/PyLibGen/internal/store"
	"github.com/IanJ332/PyLibGen/pkg/types"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter previously saved or exported search results",
	Long: `Filter applies column constraints to an existing result set, loaded
either from a JSON export file (--input) or from the local store by query
(--query). Constraints are given as a JSON object mapping columns to:

  a scalar          exact match
  an array          allow-set membership
  [min, max]        inclusive numeric range (two-number array)

Example: --filters '{"extension": ["pdf","epub"], "year": [2000, 2024]}'`,
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().String("input", "", "JSON export file with search results")
	filterCmd.Flags().String("query", "", "load saved results for this query from the store")
	filterCmd.Flags().String("filters", "", "filter criteria as a JSON object (required)")
	filterCmd.Flags().Bool("json", false, "output results as JSON")
	filterCmd.Flags().String("export", "", "export format (csv, json, yaml, txt)")
	filterCmd.Flags().String("output", "", "output directory for exported files")

	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	filtersJSON, _ := cmd.Flags().GetString("filters")
	if filtersJSON == "" {
		return fmt.Errorf("provide filter criteria with --filters")
	}
	filters, err := parseFilters(filtersJSON)
	if err != nil {
		return err
	}

	scored, err := loadResults(cmd)
	if err != nil {
		return err
	}

	coll := types.RecordCollection{}
	for _, s := range scored {
		coll.Records = append(coll.Records, s.Record)
	}

	filtered := dataset.Apply(coll, filters, os.Stderr)
	fmt.Fprintf(os.Stderr, "filtered %d of %d records\n", filtered.Len(), coll.Len())

	// Re-attach the scores of the surviving records by ID.
	byID := make(map[string]types.ScoredRecord, len(scored))
	for _, s := range scored {
		byID[s.ID] = s
	}
	var out []types.ScoredRecord
	for _, r := range filtered.Records {
		if s, ok := byID[r.ID]; ok {
			out = append(out, s)
		} else {
			out = append(out, types.ScoredRecord{Record: r})
		}
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if err := rank.FormatJSON(out, os.Stdout); err != nil {
			return err
		}
	} else {
		rank.FormatTable(out, os.Stdout)
	}

	if format, _ := cmd.Flags().GetString("export"); format != "" {
		cfg := loadConfig()
		if dir, _ := cmd.Flags().GetString("output"); dir != "" {
			cfg.Export.OutputDir = dir
		}
		exp, err := export.New(cfg.Export)
		if err != nil {
			return err
		}
		path, err := exp.Export(out, "filtered", format)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "exported: %s\n", path)
	}
	return nil
}

// parseFilters converts the JSON filter object into dataset filters.
func parseFilters(raw string) (map[string]dataset.Filter, error) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return nil, fmt.Errorf("invalid filter JSON: %w", err)
	}

	filters := make(map[string]dataset.Filter, len(spec))
	for column, v := range spec {
		switch value := v.(type) {
		case []any:
			if lo, hi, ok := numericPair(value); ok {
				filters[column] = dataset.Between(lo, hi)
				continue
			}
			var allowed []string
			for _, item := range value {
				allowed = append(allowed, renderScalar(item))
			}
			filters[column] = dataset.OneOf(allowed...)
		default:
			filters[column] = dataset.OneOf(renderScalar(value))
		}
	}
	return filters, nil
}

func numericPair(value []any) (float64, float64, bool) {
	if len(value) != 2 {
		return 0, 0, false
	}
	lo, okLo := value[0].(float64)
	hi, okHi := value[1].(float64)
	return lo, hi, okLo && okHi
}

func renderScalar(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%g", value)
	case bool:
		return fmt.Sprintf("%t", value)
	}
	return fmt.Sprintf("%v", v)
}

// loadResults reads scored records from --input (a JSON export) or from
// the local store via --query.
func loadResults(cmd *cobra.Command) ([]types.ScoredRecord, error) {
	input, _ := cmd.Flags().GetString("input")
	query, _ := cmd.Flags().GetString("query")

	switch {
	case input != "":
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", input, err)
		}
		var scored []types.ScoredRecord
		if err := json.Unmarshal(data, &scored); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", input, err)
		}
		return scored, nil

	case query != "":
		cfg := loadConfig()
		st, err := store.Open(cfg.Store)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		return st.LoadResults(context.Background(), query)
	}
	return nil, fmt.Errorf("provide results with --input or --query")
}
