// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

// FormatTable writes scored records as a human-readable table to w.
func FormatTable(scored []types.ScoredRecord, w io.Writer) {
	if len(scored) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-24s  %-7s  %-5s  %-9s  %s\n",
		"Rank", "Title", "Author", "Year", "Ext", "Size", "Score")
	fmt.Fprintln(w, strings.Repeat("-", 112))

	for i, s := range scored {
		year := ""
		if s.Year != types.UnknownInt {
			year = fmt.Sprintf("%d", s.Year)
		}
		fmt.Fprintf(w, "%-4d  %-50s  %-24s  %-7s  %-5s  %-9s  %.3f\n",
			i+1, truncate(s.Title, 50), truncate(s.Author, 24), year,
			truncate(s.Extension, 5), formatSize(s.Filesize), s.Overall)
	}

	fmt.Fprintf(w, "\n%d results\n", len(scored))
}

// FormatJSON writes scored records as indented JSON to w.
func FormatJSON(scored []types.ScoredRecord, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(scored)
}

func formatSize(bytes int64) string {
	mb := float64(bytes) / (1 << 20)
	if mb >= 1 {
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.0f KB", float64(bytes)/(1<<10))
}

// truncate shortens s to at most max runes, so multibyte titles are never
// cut mid-rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
