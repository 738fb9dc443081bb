// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"strings"
	"unicode"
)

// stopwords are common English words excluded from term extraction.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "of": true, "from": true,
	"as": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "this": true, "that": true, "these": true,
	"those": true, "it": true,
}

// IsStopword reports whether term is in the fixed stopword set.
func IsStopword(term string) bool { return stopwords[term] }

// Tokenize lowercases text, splits it on non-alphanumeric boundaries, and
// drops stopwords and single-character tokens. Token order is preserved.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var tokens []string
	for _, f := range fields {
		if len([]rune(f)) > 1 && !stopwords[f] {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Terms returns the set of meaningful terms in text.
func Terms(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range Tokenize(text) {
		set[tok] = true
	}
	return set
}

// TermMatchScore scores how well a field's text matches the query terms.
// The score combines match ratio (share of field terms that match) with
// coverage (share of query terms found); coverage carries more weight
// because a result missing central query concepts is worse than one with
// extraneous field words. Returns a value in [0,1]; 0 when either term
// set is empty or the sets are disjoint.
func TermMatchScore(text string, queryTerms map[string]bool) float64 {
	if text == "" || len(queryTerms) == 0 {
		return 0
	}

	fieldTerms := Terms(text)
	if len(fieldTerms) == 0 {
		return 0
	}

	matching := 0
	for term := range fieldTerms {
		if queryTerms[term] {
			matching++
		}
	}
	if matching == 0 {
		return 0
	}

	matchRatio := float64(matching) / float64(len(fieldTerms))
	coverage := float64(matching) / float64(len(queryTerms))
	return 0.4*matchRatio + 0.6*coverage
}
