// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"fmt"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

// Factor is one factor's contribution to a record's overall score.
type Factor struct {
	Score       float64 `json:"score" yaml:"score"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Explanation string  `json:"explanation" yaml:"explanation"`
}

// Explanation describes why one record ranked where it did.
type Explanation struct {
	Title   string            `json:"title" yaml:"title"`
	Author  string            `json:"author" yaml:"author"`
	Overall float64           `json:"overall_score" yaml:"overall_score"`
	Factors map[string]Factor `json:"factors" yaml:"factors"`
}

var factorDescriptions = map[string]string{
	"title_match":  "Title relevance to query",
	"author_match": "Author relevance to query",
	"recency":      "Publication recency",
	"popularity":   "Relative popularity",
	"quality":      "Format and completeness quality",
}

// Explain generates per-factor explanations for the top n scored records:
// each factor's score, its configured weight, and a one-line description.
func (rt *Rater) Explain(scored []types.ScoredRecord, n int) []Explanation {
	top := TopN(scored, n)

	explanations := make([]Explanation, 0, len(top))
	for _, s := range top {
		e := Explanation{
			Title:   s.Title,
			Author:  s.Author,
			Overall: s.Overall,
			Factors: make(map[string]Factor, len(FactorNames)),
		}
		for _, name := range FactorNames {
			score, _ := s.FactorScore(name)
			e.Factors[name] = Factor{
				Score:       score,
				Weight:      rt.weights[name],
				Explanation: fmt.Sprintf("%s: %.2f", factorDescriptions[name], score),
			}
		}
		explanations = append(explanations, e)
	}
	return explanations
}
