// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes record collections to tabular and structured
// file formats. Serialization lives here, outside the core pipeline.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

// SupportedFormats lists the accepted export formats.
var SupportedFormats = []string{"csv", "json", "yaml", "txt"}

// Exporter writes files into a fixed output directory.
type Exporter struct {
	outputDir string
}

// New creates an exporter rooted at cfg.OutputDir, creating the directory
// if needed. An empty directory means the current working directory.
func New(cfg types.ExportConfig) (*Exporter, error) {
	dir := cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Exporter{outputDir: dir}, nil
}

// Export writes scored records to filename in the given format and
// returns the written path. The format extension is appended when the
// filename does not already carry it.
func (e *Exporter) Export(scored []types.ScoredRecord, filename, format string) (string, error) {
	format = strings.ToLower(format)
	if !supported(format) {
		return "", fmt.Errorf("unsupported export format %q (supported: %s)",
			format, strings.Join(SupportedFormats, ", "))
	}

	if !strings.HasSuffix(filename, "."+format) {
		filename += "." + format
	}
	path := filepath.Join(e.outputDir, filename)

	var err error
	switch format {
	case "csv":
		err = writeCSV(scored, path)
	case "json":
		err = writeJSON(scored, path)
	case "yaml":
		err = writeYAML(scored, path)
	case "txt":
		err = writeTXT(scored, path)
	}
	if err != nil {
		return "", fmt.Errorf("exporting %s: %w", path, err)
	}
	return path, nil
}

func supported(format string) bool {
	for _, f := range SupportedFormats {
		if f == format {
			return true
		}
	}
	return false
}

// csvColumns are the record columns included in tabular exports, plus the
// factor scores appended by csvRow.
var csvColumns = []string{
	"id", "title", "author", "publisher", "year", "pages",
	"language", "extension", "filesize", "filesize_mb",
}

var scoreColumns = []string{
	"title_match_score", "author_match_score", "recency_score",
	"popularity_score", "quality_score", "overall_score",
}

func csvRow(s types.ScoredRecord) []string {
	row := make([]string, 0, len(csvColumns)+len(scoreColumns))
	for _, col := range csvColumns {
		v, _ := s.Field(col)
		row = append(row, v)
	}
	for _, score := range []float64{
		s.TitleMatch, s.AuthorMatch, s.Recency, s.Popularity, s.Quality, s.Overall,
	} {
		row = append(row, fmt.Sprintf("%.4f", score))
	}
	return row
}

func writeCSV(scored []types.ScoredRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append(append([]string{}, csvColumns...), scoreColumns...)); err != nil {
		return err
	}
	for _, s := range scored {
		if err := w.Write(csvRow(s)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(scored []types.ScoredRecord, path string) error {
	data, err := json.MarshalIndent(scored, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeYAML(scored []types.ScoredRecord, path string) error {
	data, err := yaml.Marshal(scored)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeTXT(scored []types.ScoredRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for i, s := range scored {
		fmt.Fprintf(f, "%d. %s\n", i+1, s.Title)
		fmt.Fprintf(f, "   author: %s\n", s.Author)
		year, _ := s.Field("year")
		fmt.Fprintf(f, "   year: %s  pages: %s  format: %s  size: %s\n",
			year, mustField(s.Record, "pages"), s.Extension, s.SizeText)
		fmt.Fprintf(f, "   score: %.3f\n", s.Overall)
		if get, ok := s.DownloadLinks.Get("get"); ok {
			fmt.Fprintf(f, "   get: %s\n", get)
		}
		fmt.Fprintln(f)
	}
	return nil
}

func mustField(r types.Record, name string) string {
	v, _ := r.Field(name)
	return v
}
