// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract parses raw catalog listings into normalized records and
// resolves each record's download links through a fallback chain.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

// ResultSource parses one query's raw result payload into a collection.
// Alternative listing formats implement this interface so the ranker never
// depends on any particular markup shape.
type ResultSource interface {
	Parse(ctx context.Context, raw []byte) (types.RecordCollection, error)
}

// Table selectors tried in order when locating the results listing.
const (
	primaryTableSelector  = "table.c"
	fallbackTableSelector = `table[cellpadding="2"][cellspacing="1"]`
)

// minCells is the minimum cell count for a parseable results row. Rows
// with fewer cells are malformed and skipped.
const minCells = 9

// linkCell is the cell holding the record's landing-page anchor.
const linkCell = 9

// HTMLSource parses the semi-structured HTML results listing. It is the
// default ResultSource.
type HTMLSource struct {
	// Fetcher retrieves landing pages during link resolution. When nil,
	// the network-dependent resolution steps are skipped and only the
	// offline-derivable links are produced.
	Fetcher Fetcher

	// Progress receives parse and resolution warnings. Nil discards them.
	Progress io.Writer
}

// Parse extracts records from an HTML results page. A page without a
// recognizable results table yields an empty collection and a warning,
// not an error: parse failure is a reported event, never fatal.
func (s *HTMLSource) Parse(ctx context.Context, raw []byte) (types.RecordCollection, error) {
	var coll types.RecordCollection

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		s.warnf("warning: could not parse results page: %v\n", err)
		return coll, nil
	}

	table := doc.Find(primaryTableSelector).First()
	if table.Length() == 0 {
		table = doc.Find(fallbackTableSelector).First()
	}
	if table.Length() == 0 {
		s.warnf("warning: could not find results table\n")
		return coll, nil
	}

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cells := row.Find("td")
		if cells.Length() < minCells {
			return
		}

		rec := recordFromCells(cells)
		if rec.ID == "" {
			s.warnf("warning: skipping row %d: no identifier\n", i)
			return
		}

		if cells.Length() > linkCell {
			rec.LandingURL, _ = cells.Eq(linkCell).Find("a").First().Attr("href")
		}
		s.resolveLinks(ctx, &rec)

		coll.Records = append(coll.Records, rec)
	})

	return coll, nil
}

// recordFromCells maps fixed cell positions to record fields. Positions
// beyond the available cell count default to the empty string.
func recordFromCells(cells *goquery.Selection) types.Record {
	text := func(i int) string {
		if i >= cells.Length() {
			return ""
		}
		return strings.TrimSpace(cells.Eq(i).Text())
	}

	rec := types.Record{
		ID:        text(0),
		Author:    text(1),
		Title:     text(2),
		Publisher: text(3),
		Language:  text(6),
		SizeText:  text(7),
		Extension: strings.ToLower(text(8)),
	}
	rec.Year = parseIntField(text(4))
	rec.Pages = parseIntField(text(5))
	rec.Filesize = ParseSize(rec.SizeText)
	rec.BookAge = types.UnknownInt
	return rec
}

// parseIntField converts a cell's text to an integer, or UnknownInt when
// the text is missing or not numeric.
func parseIntField(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return types.UnknownInt
	}
	return n
}

func (s *HTMLSource) warnf(format string, args ...any) {
	if s.Progress != nil {
		fmt.Fprintf(s.Progress, format, args...)
	}
}

// JSONSource parses the JSON lookup payload some mirrors return instead of
// HTML. It produces the same collection shape as HTMLSource.
type JSONSource struct {
	Progress io.Writer
}

type jsonRecord struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Year      string `json:"year"`
	Pages     string `json:"pages"`
	Language  string `json:"language"`
	Filesize  string `json:"filesize"`
	Extension string `json:"extension"`
}

// Parse decodes a JSON array of catalog entries. Malformed payloads yield
// an empty collection and a warning, matching HTMLSource semantics.
func (s *JSONSource) Parse(_ context.Context, raw []byte) (types.RecordCollection, error) {
	var coll types.RecordCollection

	var entries []jsonRecord
	if err := json.Unmarshal(raw, &entries); err != nil {
		if s.Progress != nil {
			fmt.Fprintf(s.Progress, "warning: could not decode JSON results: %v\n", err)
		}
		return coll, nil
	}

	for _, e := range entries {
		if strings.TrimSpace(e.ID) == "" {
			continue
		}
		rec := types.Record{
			ID:        strings.TrimSpace(e.ID),
			Author:    strings.TrimSpace(e.Author),
			Title:     strings.TrimSpace(e.Title),
			Publisher: strings.TrimSpace(e.Publisher),
			Language:  strings.TrimSpace(e.Language),
			Extension: strings.ToLower(strings.TrimSpace(e.Extension)),
		}
		rec.Year = parseIntField(e.Year)
		rec.Pages = parseIntField(e.Pages)
		// JSON payloads report the size in bytes directly.
		if n, err := strconv.ParseInt(strings.TrimSpace(e.Filesize), 10, 64); err == nil && n > 0 {
			rec.Filesize = n
		}
		rec.BookAge = types.UnknownInt
		addMirrorLinks(&rec)

		coll.Records = append(coll.Records, rec)
	}
	return coll, nil
}
