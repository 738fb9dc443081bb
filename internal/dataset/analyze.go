// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/IanJ332/PyLibGen/internal/rank"
	"github.com/IanJ332/PyLibGen/pkg/types"
)

// KeywordCount is one term and its frequency across a text column.
type KeywordCount struct {
	Term  string `json:"term" yaml:"term"`
	Count int    `json:"count" yaml:"count"`
}

// Keywords extracts the topN most frequent meaningful terms from each of
// the given text columns. Unknown columns are skipped with a warning.
// Ties are broken alphabetically for deterministic output.
func Keywords(coll types.RecordCollection, columns []string, topN int, w io.Writer) map[string][]KeywordCount {
	if coll.Empty() {
		return nil
	}
	if topN <= 0 {
		topN = 10
	}

	out := make(map[string][]KeywordCount)
	for _, column := range columns {
		if !knownColumn(column) {
			if w != nil {
				fmt.Fprintf(w, "warning: column %q not found, skipping keyword extraction\n", column)
			}
			continue
		}

		counts := make(map[string]int)
		for _, r := range coll.Records {
			v, _ := r.Field(column)
			if v == types.Unknown {
				continue
			}
			for _, term := range rank.Tokenize(v) {
				counts[term]++
			}
		}

		ranked := make([]KeywordCount, 0, len(counts))
		for term, count := range counts {
			ranked = append(ranked, KeywordCount{Term: term, Count: count})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].Count != ranked[j].Count {
				return ranked[i].Count > ranked[j].Count
			}
			return ranked[i].Term < ranked[j].Term
		})
		if len(ranked) > topN {
			ranked = ranked[:topN]
		}
		out[column] = ranked
	}
	return out
}

// NumericStats summarizes one numeric column.
type NumericStats struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Mean float64 `json:"mean" yaml:"mean"`
}

// CategoricalStats summarizes one text column.
type CategoricalStats struct {
	UniqueValues int            `json:"unique_values" yaml:"unique_values"`
	TopValues    []KeywordCount `json:"top_values" yaml:"top_values"`
}

// Summary describes a collection's shape and per-column statistics.
type Summary struct {
	Rows        int                         `json:"row_count" yaml:"row_count"`
	Columns     int                         `json:"column_count" yaml:"column_count"`
	Numeric     map[string]NumericStats     `json:"numeric_stats" yaml:"numeric_stats"`
	Categorical map[string]CategoricalStats `json:"categorical_stats" yaml:"categorical_stats"`
}

var numericColumns = []string{"year", "pages", "filesize", "filesize_mb", "book_age"}
var categoricalColumns = []string{"language", "extension", "publisher"}

// Summarize computes a summary over the canonical columns.
func Summarize(coll types.RecordCollection) Summary {
	s := Summary{
		Rows:        coll.Len(),
		Columns:     len(types.Columns),
		Numeric:     make(map[string]NumericStats),
		Categorical: make(map[string]CategoricalStats),
	}
	if coll.Empty() {
		return s
	}

	for _, column := range numericColumns {
		lo, hi, total, n := math.Inf(1), math.Inf(-1), 0.0, 0
		for _, r := range coll.Records {
			v, ok := r.NumericField(column)
			if !ok {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			total += v
			n++
		}
		if n > 0 {
			s.Numeric[column] = NumericStats{Min: lo, Max: hi, Mean: total / float64(n)}
		}
	}

	const topValues = 5
	for _, column := range categoricalColumns {
		counts := make(map[string]int)
		for _, r := range coll.Records {
			if v, _ := r.Field(column); v != "" {
				counts[v]++
			}
		}
		top := make([]KeywordCount, 0, len(counts))
		for v, count := range counts {
			top = append(top, KeywordCount{Term: v, Count: count})
		}
		sort.Slice(top, func(i, j int) bool {
			if top[i].Count != top[j].Count {
				return top[i].Count > top[j].Count
			}
			return top[i].Term < top[j].Term
		})
		stats := CategoricalStats{UniqueValues: len(top)}
		if len(top) > topValues {
			top = top[:topValues]
		}
		stats.TopValues = top
		s.Categorical[column] = stats
	}
	return s
}
