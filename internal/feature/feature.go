// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feature derives secondary attributes from raw record fields.
package feature

import (
	"strings"
	"time"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

// nowYear returns the current year. Declared as a var so tests can pin it.
var nowYear = func() int { return time.Now().Year() }

// recentWindow is the age in years under which a record counts as recent.
const recentWindow = 5

// Enrich backfills canonical columns and computes derived attributes for
// every record in place. It never removes existing fields, and running it
// again on an already-enriched collection changes nothing.
func Enrich(coll *types.RecordCollection) {
	for i := range coll.Records {
		enrichRecord(&coll.Records[i])
	}
}

func enrichRecord(r *types.Record) {
	// Backfill missing text columns with the unknown marker so the
	// schema stays uniform across sources.
	for _, f := range []*string{&r.Title, &r.Author, &r.Publisher, &r.Language, &r.Extension} {
		if strings.TrimSpace(*f) == "" {
			*f = types.Unknown
		}
	}

	// Coerce numerics: anything negative or nonsensical collapses to the
	// unknown sentinel rather than a bogus value. A literal Pages of 0
	// survives as-is; it is meaningful to the quality score.
	if r.Year <= 0 {
		r.Year = types.UnknownInt
	}
	if r.Pages < 0 {
		r.Pages = types.UnknownInt
	}
	if r.Filesize < 0 {
		r.Filesize = 0
	}

	r.FilesizeMB = float64(r.Filesize) / (1 << 20)

	if r.Year != types.UnknownInt {
		r.BookAge = nowYear() - r.Year
		r.IsRecent = r.Year >= nowYear()-recentWindow
	} else {
		r.BookAge = types.UnknownInt
		r.IsRecent = false
	}

	r.LanguageCode = languageCode(r.Language)
}

// languageCode is the first two characters of the language, lowercased.
func languageCode(language string) string {
	if language == "" || language == types.Unknown {
		return types.Unknown
	}
	runes := []rune(strings.ToLower(language))
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}
