// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strconv"
)

// Columns lists the canonical record columns in schema order. Sources that
// miss a column backfill it with the Unknown sentinels so every collection
// presents a uniform schema.
var Columns = []string{
	"id", "title", "author", "publisher", "year", "pages",
	"language", "extension", "size_text", "filesize",
	"filesize_mb", "book_age", "is_recent", "language_code",
}

// Field returns the rendered value of a named column and whether the
// column exists. Numeric unknowns render as the Unknown sentinel string.
func (r Record) Field(name string) (string, bool) {
	switch name {
	case "id":
		return r.ID, true
	case "title":
		return r.Title, true
	case "author":
		return r.Author, true
	case "publisher":
		return r.Publisher, true
	case "year":
		return renderInt(r.Year), true
	case "pages":
		return renderInt(r.Pages), true
	case "language":
		return r.Language, true
	case "extension":
		return r.Extension, true
	case "size_text":
		return r.SizeText, true
	case "filesize":
		return strconv.FormatInt(r.Filesize, 10), true
	case "filesize_mb":
		return strconv.FormatFloat(r.FilesizeMB, 'f', -1, 64), true
	case "book_age":
		return renderInt(r.BookAge), true
	case "is_recent":
		return strconv.FormatBool(r.IsRecent), true
	case "language_code":
		return r.LanguageCode, true
	case "download_count":
		return renderInt(r.DownloadCount), true
	case "link":
		return r.LandingURL, true
	}
	return "", false
}

// NumericField returns the numeric value of a named column. The second
// return is false when the column is unknown, non-numeric, or holds the
// UnknownInt sentinel.
func (r Record) NumericField(name string) (float64, bool) {
	switch name {
	case "year":
		return numeric(r.Year)
	case "pages":
		return numeric(r.Pages)
	case "filesize":
		return float64(r.Filesize), true
	case "filesize_mb":
		return r.FilesizeMB, true
	case "book_age":
		return numeric(r.BookAge)
	case "download_count":
		return numeric(r.DownloadCount)
	}
	return 0, false
}

func renderInt(v int) string {
	if v == UnknownInt {
		return Unknown
	}
	return fmt.Sprintf("%d", v)
}

func numeric(v int) (float64, bool) {
	if v == UnknownInt {
		return 0, false
	}
	return float64(v), true
}
