// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/IanJ332/PyLibGen/internal/dataset"
	"github.com/IanJ332/PyLibGen/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze an existing result set",
	Long: `Analyze summarizes a result set: collection statistics, the most
frequent keywords in text columns, and optional grouped aggregation.
Results load from a JSON export file (--input) or from the local store
by query (--query).`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("input", "", "JSON export file with search results")
	analyzeCmd.Flags().String("query", "", "load saved results for this query from the store")
	analyzeCmd.Flags().StringSlice("keyword-fields", []string{"title"}, "columns to extract keywords from")
	analyzeCmd.Flags().Int("top-n", 10, "number of top keywords to extract")
	analyzeCmd.Flags().String("group-by", "", "column to group by")
	analyzeCmd.Flags().StringSlice("agg", nil, "aggregations as column:fn pairs (e.g. filesize:mean)")
	analyzeCmd.Flags().StringSlice("outliers", nil, "numeric columns to flag outliers in")
	analyzeCmd.Flags().String("outlier-method", dataset.OutlierIQR, "outlier detection method (iqr or zscore)")
	analyzeCmd.Flags().Float64("outlier-threshold", dataset.DefaultOutlierThreshold, "outlier fence multiplier or z-score bound")

	rootCmd.AddCommand(analyzeCmd)
}

// analysisReport is the printed output of the analyze command.
type analysisReport struct {
	Summary  dataset.Summary                   `yaml:"summary"`
	Keywords map[string][]dataset.KeywordCount `yaml:"keywords,omitempty"`
	Groups   []dataset.AggRow                  `yaml:"groups,omitempty"`
	Outliers map[string][]dataset.Outlier      `yaml:"outliers,omitempty"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	scored, err := loadResults(cmd)
	if err != nil {
		return err
	}

	coll := types.RecordCollection{}
	for _, s := range scored {
		coll.Records = append(coll.Records, s.Record)
	}
	if coll.Empty() {
		fmt.Println("No records to analyze.")
		return nil
	}

	keywordFields, _ := cmd.Flags().GetStringSlice("keyword-fields")
	topN, _ := cmd.Flags().GetInt("top-n")

	report := analysisReport{
		Summary:  dataset.Summarize(coll),
		Keywords: dataset.Keywords(coll, keywordFields, topN, os.Stderr),
	}

	if groupBy, _ := cmd.Flags().GetString("group-by"); groupBy != "" {
		aggPairs, _ := cmd.Flags().GetStringSlice("agg")
		aggs, err := parseAggs(aggPairs)
		if err != nil {
			return err
		}
		if len(aggs) == 0 {
			aggs = map[string][]string{"id": {"count"}}
		}
		report.Groups = dataset.GroupBy(coll, groupBy, aggs, os.Stderr)
	}

	if columns, _ := cmd.Flags().GetStringSlice("outliers"); len(columns) > 0 {
		method, _ := cmd.Flags().GetString("outlier-method")
		threshold, _ := cmd.Flags().GetFloat64("outlier-threshold")
		report.Outliers = dataset.Outliers(coll, columns, method, threshold, os.Stderr)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

// parseAggs converts column:fn flag pairs into the aggregation mapping.
func parseAggs(pairs []string) (map[string][]string, error) {
	aggs := make(map[string][]string)
	for _, pair := range pairs {
		column, fn, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("invalid aggregation %q: want column:fn", pair)
		}
		aggs[column] = append(aggs[column], fn)
	}
	return aggs, nil
}
