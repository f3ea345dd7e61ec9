// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"fmt"
	"strings"
	"testing"
)

// publicationRow renders one listing row the way Scholar's list_works table
// does. Empty authors/venue/year leave the corresponding elements out.
func publicationRow(title, href, authors, venue, year string) string {
	var b strings.Builder
	b.WriteString(`<tr class="gsc_a_tr"><td class="gsc_a_t">`)
	if title != "" {
		fmt.Fprintf(&b, `<a class="gsc_a_at" href="%s">%s</a>`, href, title)
	}
	if authors != "" {
		fmt.Fprintf(&b, `<div class="gs_gray">%s</div>`, authors)
	}
	if venue != "" {
		fmt.Fprintf(&b, `<div class="gs_gray">%s</div>`, venue)
	}
	b.WriteString(`</td><td class="gsc_a_c"><a class="gsc_a_ac">7</a></td>`)
	fmt.Fprintf(&b, `<td class="gsc_a_y"><span class="gsc_a_h">%s</span></td></tr>`, year)
	return b.String()
}

func listingPage(rows ...string) string {
	return `<html><body><table><tbody id="gsc_a_b">` +
		strings.Join(rows, "") + `</tbody></table></body></html>`
}

func TestParsePublicationsFullRow(t *testing.T) {
	html := listingPage(publicationRow(
		"Deep Learning for Tests",
		"/citations?view_op=view_citation&amp;hl=en&amp;user=ABC",
		"A Author, B Author",
		"Journal of Testing 12 (3), 45-67",
		"2023",
	))

	pubs, err := parsePublications(html)
	if err != nil {
		t.Fatalf("parsePublications: %v", err)
	}
	if len(pubs) != 1 {
		t.Fatalf("len(pubs) = %d, want 1", len(pubs))
	}

	p := pubs[0]
	if p.Title != "Deep Learning for Tests" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.Authors != "A Author, B Author" {
		t.Errorf("Authors = %q", p.Authors)
	}
	if p.Venue != "Journal of Testing 12 (3), 45-67" {
		t.Errorf("Venue = %q", p.Venue)
	}
	if p.Year != 2023 {
		t.Errorf("Year = %d, want 2023", p.Year)
	}
	// Relative link must be resolved against the Scholar origin.
	want := "https://scholar.google.com/citations?view_op=view_citation&hl=en&user=ABC"
	if p.ScholarURL != want {
		t.Errorf("ScholarURL = %q, want %q", p.ScholarURL, want)
	}
}

func TestParsePublicationsAbsoluteLinkPassedThrough(t *testing.T) {
	html := listingPage(publicationRow(
		"External Entry", "https://example.org/paper", "", "", "2020",
	))
	pubs, err := parsePublications(html)
	if err != nil {
		t.Fatalf("parsePublications: %v", err)
	}
	if pubs[0].ScholarURL != "https://example.org/paper" {
		t.Errorf("ScholarURL = %q, want absolute link unchanged", pubs[0].ScholarURL)
	}
}

func TestParsePublicationsRowWithoutTitleSkipped(t *testing.T) {
	html := listingPage(
		publicationRow("", "", "Ghost Author", "Ghost Venue", "1999"),
		publicationRow("Real Entry", "/citations?user=X", "A Author", "", "2021"),
	)
	pubs, err := parsePublications(html)
	if err != nil {
		t.Fatalf("parsePublications: %v", err)
	}
	if len(pubs) != 1 || pubs[0].Title != "Real Entry" {
		t.Fatalf("pubs = %+v, want only the titled row", pubs)
	}
}

func TestParsePublicationsMissingFieldsDegrade(t *testing.T) {
	// Single gray block means authors only, no venue.
	html := listingPage(publicationRow("Sparse Entry", "/citations?user=X", "Solo Author", "", ""))
	pubs, err := parsePublications(html)
	if err != nil {
		t.Fatalf("parsePublications: %v", err)
	}
	p := pubs[0]
	if p.Authors != "Solo Author" {
		t.Errorf("Authors = %q, want %q", p.Authors, "Solo Author")
	}
	if p.Venue != "" {
		t.Errorf("Venue = %q, want empty", p.Venue)
	}
	if p.Year != 0 {
		t.Errorf("Year = %d, want 0", p.Year)
	}
}

func TestParsePublicationsPreservesPageOrder(t *testing.T) {
	html := listingPage(
		publicationRow("First", "/a", "", "", "2023"),
		publicationRow("Second", "/b", "", "", "2021"),
		publicationRow("Third", "/c", "", "", "2022"),
	)
	pubs, err := parsePublications(html)
	if err != nil {
		t.Fatalf("parsePublications: %v", err)
	}
	want := []string{"First", "Second", "Third"}
	for i, title := range want {
		if pubs[i].Title != title {
			t.Errorf("pubs[%d].Title = %q, want %q", i, pubs[i].Title, title)
		}
	}
}

func TestParsePublicationsEmptyPage(t *testing.T) {
	pubs, err := parsePublications(listingPage())
	if err != nil {
		t.Fatalf("parsePublications: %v", err)
	}
	if len(pubs) != 0 {
		t.Errorf("len(pubs) = %d, want 0", len(pubs))
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2023", 2023},
		{"", 0},
		{"n/a", 0},
		{"2023*", 0},
		{"199", 199},
		{" 2023", 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			if got := parseYear(tt.in); got != tt.want {
				t.Errorf("parseYear(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
