// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the libgen-explorer pipeline.
package types

// Sentinel values used to backfill columns that a source did not provide.
// Numeric fields use UnknownInt rather than zero so that "true zero" (a
// listing that really reports 0 pages) stays distinguishable downstream.
const (
	Unknown    = "unknown"
	UnknownInt = -1
)

// Link is one named download location for a record.
type Link struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Links is an ordered set of download links. Insertion order is discovery
// order; Add replaces the URL of an existing name in place.
type Links []Link

// Add appends a link, or updates the URL if the name is already present.
func (l *Links) Add(name, url string) {
	for i := range *l {
		if (*l)[i].Name == name {
			(*l)[i].URL = url
			return
		}
	}
	*l = append(*l, Link{Name: name, URL: url})
}

// Get returns the URL for name and whether it exists.
func (l Links) Get(name string) (string, bool) {
	for _, link := range l {
		if link.Name == name {
			return link.URL, true
		}
	}
	return "", false
}

// Record is one normalized catalog entry produced by extraction.
type Record struct {
	// ID is the externally assigned identifier. It is treated as opaque
	// and also used to derive the offline mirror links. A parsed row
	// without an ID is invalid and is rejected by the extractor.
	ID string `json:"id" yaml:"id"`

	Title     string `json:"title" yaml:"title"`
	Author    string `json:"author" yaml:"author"`
	Publisher string `json:"publisher" yaml:"publisher"`

	// Year is the publication year, or UnknownInt when the source value
	// was missing or not numeric.
	Year int `json:"year" yaml:"year"`

	// Pages is the page count, or UnknownInt when unavailable. A literal
	// zero means the listing itself reported 0 pages.
	Pages int `json:"pages" yaml:"pages"`

	Language  string `json:"language" yaml:"language"`
	Extension string `json:"extension" yaml:"extension"`

	// SizeText is the raw human-readable size string (e.g. "4.5 MB").
	SizeText string `json:"size_text" yaml:"size_text"`

	// Filesize is the size in bytes derived from SizeText. Always >= 0;
	// unparsable size text yields 0.
	Filesize int64 `json:"filesize" yaml:"filesize"`

	// DownloadCount is an optional popularity signal some sources expose.
	DownloadCount int `json:"download_count,omitempty" yaml:"download_count,omitempty"`

	// LandingURL is the record's primary landing page as extracted from
	// the results listing, when present.
	LandingURL string `json:"link,omitempty" yaml:"link,omitempty"`

	// DownloadLinks maps source names to URLs in discovery order. May be
	// empty if every resolution step failed; populated records always
	// include at least the offline-derivable mirror links.
	DownloadLinks Links `json:"download_links" yaml:"download_links"`

	// Derived attributes, populated by the feature builder.
	FilesizeMB   float64 `json:"filesize_mb" yaml:"filesize_mb"`
	BookAge      int     `json:"book_age" yaml:"book_age"`
	IsRecent     bool    `json:"is_recent" yaml:"is_recent"`
	LanguageCode string  `json:"language_code" yaml:"language_code"`
}

// RecordCollection is the ordered result set of one query. A collection
// owns its records exclusively; no record is shared across collections.
type RecordCollection struct {
	Records []Record `json:"records" yaml:"records"`
}

// Len returns the number of records.
func (c RecordCollection) Len() int { return len(c.Records) }

// Empty reports whether the collection holds no records.
func (c RecordCollection) Empty() bool { return len(c.Records) == 0 }
