// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "testing"

func TestParseSize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int64
	}{
		{"megabytes", "4.5 MB", 4718592},
		{"kilobytes", "712 KB", 729088},
		{"comma decimal", "712,3 KB", 729395},
		{"gigabytes", "1.2 GB", 1288490189},
		{"bare bytes", "650 B", 650},
		{"lowercase unit", "3 mb", 3145728},
		{"unit with suffix", "2 MBs", 2097152},
		{"empty", "", 0},
		{"no unit", "4.5", 0},
		{"too many fields", "4.5 MB approx", 0},
		{"non-numeric value", "big MB", 0},
		{"unknown unit", "4 XX", 0},
		{"surrounding whitespace", "  4.5 MB  ", 4718592},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSize(tt.text); got != tt.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}
