// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

func TestKeywords(t *testing.T) {
	kw := Keywords(testCollection(), []string{"title"}, 3, nil)

	title, ok := kw["title"]
	if !ok {
		t.Fatal("missing title keywords")
	}
	if len(title) != 3 {
		t.Fatalf("got %d keywords, want 3", len(title))
	}
	// "clean" appears twice; everything else once, ordered alphabetically.
	if title[0].Term != "clean" || title[0].Count != 2 {
		t.Errorf("top keyword = %+v, want clean x2", title[0])
	}
	if title[1].Term != "architecture" {
		t.Errorf("tie-break order: second keyword = %q, want architecture", title[1].Term)
	}
}

func TestKeywordsSkipsUnknownValues(t *testing.T) {
	coll := types.RecordCollection{Records: []types.Record{
		{ID: "1", Publisher: types.Unknown},
		{ID: "2", Publisher: "Pearson"},
	}}

	kw := Keywords(coll, []string{"publisher"}, 10, nil)

	for _, k := range kw["publisher"] {
		if k.Term == types.Unknown {
			t.Errorf("unknown marker leaked into keywords: %+v", kw["publisher"])
		}
	}
}

func TestKeywordsUnknownColumn(t *testing.T) {
	var warnings bytes.Buffer
	kw := Keywords(testCollection(), []string{"color"}, 5, &warnings)

	if _, ok := kw["color"]; ok {
		t.Error("unknown column produced keywords")
	}
	if !strings.Contains(warnings.String(), `"color" not found`) {
		t.Errorf("expected unknown-column warning, got %q", warnings.String())
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(testCollection())

	if s.Rows != 4 {
		t.Errorf("Rows = %d, want 4", s.Rows)
	}
	if s.Columns != len(types.Columns) {
		t.Errorf("Columns = %d, want %d", s.Columns, len(types.Columns))
	}

	year, ok := s.Numeric["year"]
	if !ok {
		t.Fatal("missing year stats")
	}
	// The unknown year in record 4 is excluded from min/max/mean.
	if year.Min != 2008 || year.Max != 2017 {
		t.Errorf("year min/max = %v/%v, want 2008/2017", year.Min, year.Max)
	}
	if want := (2008.0 + 2017 + 2008) / 3; year.Mean != want {
		t.Errorf("year mean = %v, want %v", year.Mean, want)
	}

	lang, ok := s.Categorical["language"]
	if !ok {
		t.Fatal("missing language stats")
	}
	if lang.UniqueValues != 2 {
		t.Errorf("language unique values = %d, want 2", lang.UniqueValues)
	}
	if len(lang.TopValues) == 0 || lang.TopValues[0].Term != "English" || lang.TopValues[0].Count != 3 {
		t.Errorf("language top values = %+v, want English x3 first", lang.TopValues)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(types.RecordCollection{})
	if s.Rows != 0 {
		t.Errorf("Rows = %d, want 0", s.Rows)
	}
	if len(s.Numeric) != 0 || len(s.Categorical) != 0 {
		t.Errorf("empty collection produced stats: %+v", s)
	}
}
