// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package datafile

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-sync/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names follow the CSL-YAML schema so the output is
// consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes the publications as a CSL-YAML list to w.
func FormatCSL(publications []types.Publication, w io.Writer) error {
	items := make([]CSLItem, len(publications))
	for i, p := range publications {
		items[i] = toCSLItem(p)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a Publication to a CSLItem. Scholar gives authors as
// one comma-separated line, so names are split on commas before the
// given/family split.
func toCSLItem(p types.Publication) CSLItem {
	item := CSLItem{
		ID:             slug(p),
		Type:           "article",
		Title:          p.Title,
		ContainerTitle: p.Venue,
		URL:            p.ScholarURL,
	}

	for _, name := range strings.Split(p.Authors, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		item.Author = append(item.Author, parseAuthorName(name))
	}

	if p.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{p.Year}}}
	}
	return item
}

// slug derives a citation key from the title and year.
func slug(p types.Publication) string {
	var b strings.Builder
	for _, r := range strings.ToLower(p.Title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	s := strings.Trim(b.String(), "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	if p.Year > 0 {
		return fmt.Sprintf("%s-%d", s, p.Year)
	}
	return s
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
