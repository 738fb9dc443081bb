// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ScoredRecord is a Record annotated with the five factor scores and the
// weighted overall score. Factor scores are in [0,1]; the overall score is
// a weighted sum and is not bounded when callers supply their own weights.
type ScoredRecord struct {
	Record `yaml:",inline"`

	TitleMatch  float64 `json:"title_match_score" yaml:"title_match_score"`
	AuthorMatch float64 `json:"author_match_score" yaml:"author_match_score"`
	Recency     float64 `json:"recency_score" yaml:"recency_score"`
	Popularity  float64 `json:"popularity_score" yaml:"popularity_score"`
	Quality     float64 `json:"quality_score" yaml:"quality_score"`
	Overall     float64 `json:"overall_score" yaml:"overall_score"`
}

// FactorScore returns the named factor score and whether the name is known.
func (s ScoredRecord) FactorScore(name string) (float64, bool) {
	switch name {
	case "title_match":
		return s.TitleMatch, true
	case "author_match":
		return s.AuthorMatch, true
	case "recency":
		return s.Recency, true
	case "popularity":
		return s.Popularity, true
	case "quality":
		return s.Quality, true
	}
	return 0, false
}
