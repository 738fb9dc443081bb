// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

// Outlier detection methods.
const (
	OutlierIQR    = "iqr"
	OutlierZScore = "zscore"
)

// DefaultOutlierThreshold is the IQR fence multiplier (1.5 is the usual
// Tukey fence; a z-score threshold of 2 or 3 is more common for zscore).
const DefaultOutlierThreshold = 1.5

// Outlier is one flagged record value in a numeric column.
type Outlier struct {
	ID    string  `json:"id" yaml:"id"`
	Value float64 `json:"value" yaml:"value"`
}

// Outliers flags records whose value in a numeric column falls outside
// the distribution, per column. With the iqr method a value is an outlier
// when it lies beyond threshold*IQR from the quartiles; with zscore, when
// its z-score magnitude exceeds the threshold. Records with an unknown
// value in a column are never flagged for it. Unknown columns, non-numeric
// columns, and unknown methods are skipped with a warning.
func Outliers(coll types.RecordCollection, columns []string, method string, threshold float64, w io.Writer) map[string][]Outlier {
	warnf := func(format string, args ...any) {
		if w != nil {
			fmt.Fprintf(w, format, args...)
		}
	}

	if coll.Empty() {
		return nil
	}
	if method == "" {
		method = OutlierIQR
	}
	if method != OutlierIQR && method != OutlierZScore {
		warnf("warning: unknown outlier method %q (want iqr or zscore)\n", method)
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultOutlierThreshold
	}

	out := make(map[string][]Outlier)
	for _, column := range columns {
		if !numericColumn(column) {
			warnf("warning: column %q not found or not numeric, skipping outlier detection\n", column)
			continue
		}

		var values []float64
		for _, r := range coll.Records {
			if v, ok := r.NumericField(column); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}

		var isOutlier func(float64) bool
		switch method {
		case OutlierIQR:
			q1 := quantile(values, 0.25)
			q3 := quantile(values, 0.75)
			lo := q1 - threshold*(q3-q1)
			hi := q3 + threshold*(q3-q1)
			isOutlier = func(v float64) bool { return v < lo || v > hi }
		case OutlierZScore:
			mean, std := meanStd(values, coll.Len())
			isOutlier = func(v float64) bool {
				return std > 0 && math.Abs(v-mean)/std > threshold
			}
		}

		var flagged []Outlier
		for _, r := range coll.Records {
			v, ok := r.NumericField(column)
			if !ok {
				continue
			}
			if isOutlier(v) {
				flagged = append(flagged, Outlier{ID: r.ID, Value: v})
			}
		}
		if len(flagged) > 0 {
			out[column] = flagged
		}
	}
	return out
}

func numericColumn(column string) bool {
	_, ok := types.Record{}.NumericField(column)
	return ok
}

// quantile computes the q-th quantile with linear interpolation between
// the two nearest order statistics.
func quantile(values []float64, q float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// meanStd computes the mean of the known values and the population
// standard deviation over total rows, records with an unknown value
// counting as the mean. Filling unknowns with the mean keeps them off the
// outlier list while still widening the denominator.
func meanStd(values []float64, total int) (float64, float64) {
	mean := sum(values) / float64(len(values))

	ss := 0.0
	for _, v := range values {
		ss += (v - mean) * (v - mean)
	}
	if total < len(values) {
		total = len(values)
	}
	return mean, math.Sqrt(ss / float64(total))
}
