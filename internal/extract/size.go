// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"math"
	"strconv"
	"strings"
)

// Size units checked as substrings in priority order: "KB" must win over
// the bare-"B" match, so the compound units come first.
var sizeUnits = []struct {
	token      string
	multiplier float64
}{
	{"KB", 1 << 10},
	{"MB", 1 << 20},
	{"GB", 1 << 30},
	{"B", 1},
}

// ParseSize converts a human-readable size string ("4.5 MB", "712,3 KB")
// to bytes. Decimal separators may be written with a dot or a comma; unit
// matching is case-insensitive. Unparsable text yields 0.
func ParseSize(text string) int64 {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) != 2 {
		return 0
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(parts[0], ",", "."), 64)
	if err != nil {
		return 0
	}

	unit := strings.ToUpper(parts[1])
	for _, u := range sizeUnits {
		if strings.Contains(unit, u.token) {
			return int64(math.Round(value * u.multiplier))
		}
	}
	return 0
}
