// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/scholar-sync/pkg/types"
)

// parsePublications extracts Publication records from one listing page, in
// page order. The parse is best-effort: a row without a title anchor is
// skipped, and a missing author line, venue line, or year degrades to the
// zero value rather than failing the row.
func parsePublications(html string) ([]types.Publication, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var publications []types.Publication
	doc.Find("tr.gsc_a_tr").Each(func(_ int, row *goquery.Selection) {
		titleEl := row.Find("a.gsc_a_at").First()
		title := collapseText(titleEl)
		if title == "" {
			return
		}

		scholarURL := ""
		if href, ok := titleEl.Attr("href"); ok {
			scholarURL = strings.TrimSpace(href)
			if strings.HasPrefix(scholarURL, "/") {
				scholarURL = scholarOrigin + scholarURL
			}
		}

		// The first two gray blocks are always authors then venue; either
		// may be absent on sparse entries.
		gray := row.Find("div.gs_gray")
		authors := collapseText(gray.Eq(0))
		venue := collapseText(gray.Eq(1))

		yearText := strings.TrimSpace(row.Find("td.gsc_a_y").First().Text())

		publications = append(publications, types.Publication{
			Title:      title,
			Authors:    authors,
			Venue:      venue,
			Year:       parseYear(yearText),
			ScholarURL: scholarURL,
		})
	})
	return publications, nil
}

// parseYear converts a year cell to an integer. Only strings made entirely
// of decimal digits count; anything else ("", "n/a", "2023*") means the
// year is unknown and maps to 0.
func parseYear(text string) int {
	if text == "" {
		return 0
	}
	year := 0
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}

// collapseText returns the selection's text with runs of whitespace
// collapsed to single spaces, matching how the cells render.
func collapseText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
