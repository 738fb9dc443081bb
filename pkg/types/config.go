package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "libgen-explorer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// MirrorConfig holds settings for mirror selection and catalog queries.
type MirrorConfig struct {
	HTTPConfig `yaml:",inline"`

	// Mirrors lists candidate mirror base URLs, probed in order. Empty
	// uses the built-in defaults.
	Mirrors []string `json:"mirrors,omitempty" yaml:"mirrors,omitempty"`

	// ProbeTimeout bounds each mirror liveness probe (default 5s).
	ProbeTimeout time.Duration `json:"probe_timeout" yaml:"probe_timeout"`

	// Limit is the maximum number of results to request (default 25).
	Limit int `json:"limit" yaml:"limit"`
}

// RankConfig holds settings for the relevance ranker.
type RankConfig struct {
	// Weights overrides the default factor weights by name. Missing keys
	// keep their defaults. No renormalization is applied, so weights
	// summing above 1 produce overall scores above 1.
	Weights map[string]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`

	// TopN is the number of top results to explain and display (default 10).
	TopN int `json:"top_n" yaml:"top_n"`
}

// StoreConfig holds settings for the result store.
type StoreConfig struct {
	// Path is the SQLite database file (default "explorer.db").
	Path string `json:"path" yaml:"path"`
}

// ExportConfig holds settings for file export.
type ExportConfig struct {
	// OutputDir is the directory exported files are written to. Empty
	// uses the current directory.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Format is the default export format (csv, json, yaml, or txt).
	Format string `json:"format" yaml:"format"`
}

// ExplorerConfig groups all stage configurations.
type ExplorerConfig struct {
	Mirror MirrorConfig `json:"mirror" yaml:"mirror"`
	Rank   RankConfig   `json:"rank" yaml:"rank"`
	Store  StoreConfig  `json:"store" yaml:"store"`
	Export ExportConfig `json:"export" yaml:"export"`
}
