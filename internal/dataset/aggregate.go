// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

// AggRow is one aggregated output row: a distinct group-by value plus the
// flattened "column_function" aggregate values.
type AggRow struct {
	Group  string             `json:"group" yaml:"group"`
	Values map[string]float64 `json:"values" yaml:"values"`
}

// aggFns maps aggregation names to their statistic over numeric values.
// count is handled separately since it applies to non-numeric columns.
var aggFns = map[string]func([]float64) float64{
	"sum":  sum,
	"mean": func(values []float64) float64 { return sum(values) / float64(len(values)) },
	"min": func(values []float64) float64 {
		lo := math.Inf(1)
		for _, v := range values {
			lo = math.Min(lo, v)
		}
		return lo
	},
	"max": func(values []float64) float64 {
		hi := math.Inf(-1)
		for _, v := range values {
			hi = math.Max(hi, v)
		}
		return hi
	},
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// GroupBy groups the collection by a column and applies the named
// aggregation functions (count, sum, mean, min, max) to each listed
// column, producing one row per distinct group value sorted by group.
// Unknown columns and unknown function names are skipped with a warning.
func GroupBy(coll types.RecordCollection, groupBy string, aggs map[string][]string, w io.Writer) []AggRow {
	warnf := func(format string, args ...any) {
		if w != nil {
			fmt.Fprintf(w, format, args...)
		}
	}

	if coll.Empty() {
		warnf("warning: cannot aggregate an empty collection\n")
		return nil
	}
	if !knownColumn(groupBy) {
		warnf("warning: group-by column %q not found\n", groupBy)
		return nil
	}

	groups := make(map[string][]types.Record)
	var order []string
	for _, r := range coll.Records {
		key, _ := r.Field(groupBy)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}
	sort.Strings(order)

	rows := make([]AggRow, 0, len(order))
	for _, key := range order {
		row := AggRow{Group: key, Values: make(map[string]float64)}
		for column, fns := range aggs {
			if !knownColumn(column) {
				warnf("warning: column %q not found, skipping aggregation\n", column)
				continue
			}
			var values []float64
			present := 0
			for _, r := range groups[key] {
				if v, ok := r.NumericField(column); ok {
					values = append(values, v)
				}
				if v, _ := r.Field(column); v != "" && v != types.Unknown {
					present++
				}
			}
			for _, fn := range fns {
				// count applies to any column, numeric or not.
				if fn == "count" {
					row.Values[column+"_count"] = float64(present)
					continue
				}
				agg, known := aggFns[fn]
				if !known {
					warnf("warning: unknown aggregation %q for column %q\n", fn, column)
					continue
				}
				if len(values) == 0 {
					continue
				}
				// Flattened multi-part name, e.g. "filesize_mean".
				row.Values[column+"_"+fn] = agg(values)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
