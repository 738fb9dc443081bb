// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"math"
	"strings"
	"time"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

// neutralScore is the default when a factor cannot be computed from the
// available data.
const neutralScore = 0.5

// maxAge caps the recency penalty: age beyond 50 years contributes no
// further penalty.
const maxAge = 50

// nowYear returns the current year. Declared as a var so tests can pin it.
var nowYear = func() int { return time.Now().Year() }

// recencyScores computes per-record recency on a logarithmic decay, so
// very old items are not all driven to the same floor and young items are
// not over-rewarded by a linear scale. When no record has a valid year,
// every record gets the neutral score.
func recencyScores(records []types.Record) []float64 {
	scores := make([]float64, len(records))

	anyYear := false
	for _, r := range records {
		if validYear(r.Year) {
			anyYear = true
			break
		}
	}
	if !anyYear {
		for i := range scores {
			scores[i] = neutralScore
		}
		return scores
	}

	current := nowYear()
	for i, r := range records {
		if !validYear(r.Year) {
			scores[i] = neutralScore
			continue
		}
		yearsSince := float64(current - r.Year)
		yearsSince = math.Min(math.Max(yearsSince, 0), maxAge)
		scores[i] = 1 - math.Log1p(yearsSince)/math.Log1p(maxAge)
	}
	return scores
}

func validYear(year int) bool {
	return year != types.UnknownInt && year > 0
}

// popularityScores min-max normalizes filesize to [0,1], falling back to
// download counts when no record reports a size. A degenerate distribution
// (all values equal) yields the neutral score for every record.
func popularityScores(records []types.Record) []float64 {
	values := make([]float64, len(records))

	anySize := false
	for _, r := range records {
		if r.Filesize > 0 {
			anySize = true
			break
		}
	}
	for i, r := range records {
		if anySize {
			values[i] = float64(r.Filesize)
		} else {
			values[i] = float64(max(r.DownloadCount, 0))
		}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		for i := range values {
			values[i] = neutralScore
		}
		return values
	}

	for i, v := range values {
		values[i] = (v - lo) / (hi - lo)
	}
	return values
}

// extensionBonus rewards e-reader-friendly formats. Unlisted extensions
// contribute nothing.
var extensionBonus = map[string]float64{
	"pdf":  0.2,
	"epub": 0.25,
	"mobi": 0.2,
	"djvu": 0.15,
	"azw3": 0.2,
	"fb2":  0.15,
	"txt":  0.0,
	"html": 0.05,
	"cbz":  0.1,
	"cbr":  0.1,
}

// qualityScore starts neutral and stacks an extension bonus, a filesize
// tier adjustment (size as a proxy for scan completeness), and a
// page-count adjustment. The result is clamped to [0,1] regardless of how
// many adjustments stack.
func qualityScore(r types.Record) float64 {
	score := neutralScore

	score += extensionBonus[strings.ToLower(r.Extension)]

	sizeMB := float64(r.Filesize) / (1 << 20)
	switch {
	case sizeMB < 0.1:
		score -= 0.2 // sub-100KB files are probably incomplete
	case sizeMB < 1:
		score -= 0.1
	case sizeMB < 10:
		// neutral
	case sizeMB < 50:
		score += 0.1
	default:
		score += 0.15
	}

	pages := r.Pages
	if pages == types.UnknownInt {
		pages = 0
	}
	if pages == 0 {
		score -= 0.2 // probable metadata error
	} else if pages > 300 {
		score += 0.1
	}

	return math.Min(math.Max(score, 0), 1)
}
