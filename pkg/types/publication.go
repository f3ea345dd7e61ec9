// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Publication holds one entry from a researcher's Google Scholar profile.
// The JSON field names match the Jekyll data file consumed by the site
// templates, so they must not change.
type Publication struct {
	// Title is the publication title as shown on the profile.
	Title string `json:"title" yaml:"title"`

	// Authors is the free-text author line under the title. May be empty.
	Authors string `json:"authors" yaml:"authors"`

	// Venue is the free-text journal/conference line. May be empty.
	Venue string `json:"venue" yaml:"venue"`

	// Year is the publication year, or 0 when Scholar shows none.
	Year int `json:"year" yaml:"year"`

	// ScholarURL is the absolute URL of the citation detail page. May be empty.
	ScholarURL string `json:"scholar_url" yaml:"scholar_url"`
}

// PublicationKey identifies a publication for deduplication. Two entries
// with the same lowercased title and year are the same publication even
// when the author or venue lines differ between pages.
type PublicationKey struct {
	Title string
	Year  int
}

// Key returns the deduplication identity of the publication.
func (p Publication) Key() PublicationKey {
	return PublicationKey{Title: strings.ToLower(p.Title), Year: p.Year}
}
