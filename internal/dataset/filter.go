// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset provides predicate filtering, grouped aggregation, and
// light analysis over record collections.
package dataset

import (
	"fmt"
	"io"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

// Filter is one column constraint. Exactly one of the three shapes should
// be set: an allow-set, an inclusive numeric range, or a predicate
// function on the rendered value.
type Filter struct {
	anyOf    map[string]bool
	min, max float64
	isRange  bool
	fn       func(string) bool
}

// OneOf keeps records whose column value is in the given set.
func OneOf(values ...string) Filter {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return Filter{anyOf: set}
}

// Between keeps records whose numeric column value lies in [min, max].
// Records whose value is unknown or non-numeric are excluded.
func Between(min, max float64) Filter {
	return Filter{min: min, max: max, isRange: true}
}

// Where keeps records for which fn returns true on the rendered value.
func Where(fn func(string) bool) Filter {
	return Filter{fn: fn}
}

func (f Filter) matches(r types.Record, column string) bool {
	switch {
	case f.anyOf != nil:
		v, _ := r.Field(column)
		return f.anyOf[v]
	case f.isRange:
		v, ok := r.NumericField(column)
		return ok && v >= f.min && v <= f.max
	case f.fn != nil:
		v, _ := r.Field(column)
		return f.fn(v)
	}
	return true
}

// Apply filters a collection by a mapping of column to constraint and
// returns the matching records in their original order. Unknown columns
// are skipped with a warning on w rather than failing the whole filter.
func Apply(coll types.RecordCollection, filters map[string]Filter, w io.Writer) types.RecordCollection {
	if coll.Empty() || len(filters) == 0 {
		return coll
	}

	active := make(map[string]Filter, len(filters))
	for column, f := range filters {
		if !knownColumn(column) {
			if w != nil {
				fmt.Fprintf(w, "warning: column %q not found, skipping filter\n", column)
			}
			continue
		}
		active[column] = f
	}

	var out types.RecordCollection
	for _, r := range coll.Records {
		keep := true
		for column, f := range active {
			if !f.matches(r, column) {
				keep = false
				break
			}
		}
		if keep {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

func knownColumn(column string) bool {
	_, ok := types.Record{}.Field(column)
	return ok
}
