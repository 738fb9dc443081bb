// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank scores records against a query with a multi-factor
// weighted model and orders them by relevance.
package rank

import (
	"sort"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

// FactorNames lists the five factor score names in display order.
var FactorNames = []string{
	"title_match", "author_match", "recency", "popularity", "quality",
}

// DefaultWeights returns the default factor weights. Title relevance
// dominates; quality and author share most of the rest.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		"title_match":  0.4,
		"author_match": 0.2,
		"recency":      0.1,
		"popularity":   0.1,
		"quality":      0.2,
	}
}

// Rater scores and orders record collections.
type Rater struct {
	weights map[string]float64
}

// NewRater builds a Rater. Overrides merge into the defaults by key;
// unspecified keys keep their default weight. The weights are used as
// given, with no renormalization, so overrides summing above 1 can push
// overall scores above 1.
func NewRater(overrides map[string]float64) *Rater {
	weights := DefaultWeights()
	for name, w := range overrides {
		weights[name] = w
	}
	return &Rater{weights: weights}
}

// Weights returns a copy of the effective factor weights.
func (rt *Rater) Weights() map[string]float64 {
	out := make(map[string]float64, len(rt.weights))
	for name, w := range rt.weights {
		out[name] = w
	}
	return out
}

// Rate scores every record against the query and returns the records
// sorted by overall score descending. The sort is stable: ties keep
// their prior relative order. Extra keywords extend the query term set.
func (rt *Rater) Rate(coll types.RecordCollection, query string, extraKeywords ...string) []types.ScoredRecord {
	if coll.Empty() {
		return nil
	}

	queryTerms := Terms(query)
	for _, kw := range extraKeywords {
		for term := range Terms(kw) {
			queryTerms[term] = true
		}
	}

	recency := recencyScores(coll.Records)
	popularity := popularityScores(coll.Records)

	scored := make([]types.ScoredRecord, 0, coll.Len())
	for i, r := range coll.Records {
		s := types.ScoredRecord{
			Record:      r,
			TitleMatch:  TermMatchScore(r.Title, queryTerms),
			AuthorMatch: TermMatchScore(r.Author, queryTerms),
			Recency:     recency[i],
			Popularity:  popularity[i],
			Quality:     qualityScore(r),
		}
		s.Overall = rt.weights["title_match"]*s.TitleMatch +
			rt.weights["author_match"]*s.AuthorMatch +
			rt.weights["recency"]*s.Recency +
			rt.weights["popularity"]*s.Popularity +
			rt.weights["quality"]*s.Quality
		scored = append(scored, s)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Overall > scored[j].Overall
	})
	return scored
}

// TopN returns the first n scored records, or all of them when fewer
// than n exist.
func TopN(scored []types.ScoredRecord, n int) []types.ScoredRecord {
	if n <= 0 || n >= len(scored) {
		return scored
	}
	return scored[:n]
}
