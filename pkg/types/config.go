// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests. Scholar
	// serves a degraded page to unknown agents, so the default is a
	// desktop-browser string.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// AcceptLanguage is the Accept-Language header. The row selectors
	// assume the English rendering of the profile page.
	AcceptLanguage string `json:"accept_language" yaml:"accept_language"`
}

// CollectConfig holds settings for a publication collection run.
type CollectConfig struct {
	HTTPConfig `yaml:",inline"`

	// PageSize is the number of rows requested per listing page (default 100).
	PageSize int `json:"pagesize" yaml:"pagesize"`

	// PageDelay is the courtesy pause between listing page fetches (default 1s).
	PageDelay time.Duration `json:"delay" yaml:"delay"`

	// MaxPages caps the number of full pages fetched; 0 means unlimited.
	MaxPages int `json:"max_pages" yaml:"max_pages"`
}

// OutputFormat selects the data file serialization.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
	OutputCSL  OutputFormat = "csl"
)

// OutputConfig holds settings for writing the publications data file.
type OutputConfig struct {
	// Path is the data file destination (e.g. "_data/scholar_publications.json").
	Path string `json:"path" yaml:"path"`

	// Format selects the serialization: json, yaml, or csl.
	Format OutputFormat `json:"format" yaml:"format"`
}

// ArchiveConfig holds settings for the sync history database.
type ArchiveConfig struct {
	// Path is the SQLite database location (default ".scholar-sync/archive.db").
	Path string `json:"path" yaml:"path"`
}
