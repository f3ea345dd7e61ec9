// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar collects a researcher's publication list from a Google
// Scholar profile: it pages through the citations listing, extracts rows
// into Publication records, and deduplicates them across pages.
package scholar

import (
	"fmt"
	"net/url"
)

// listBase is the Scholar citations endpoint. Declared as a var so tests
// can substitute an httptest server.
var listBase = "https://scholar.google.com/citations"

// scholarOrigin resolves relative citation links to absolute URLs.
const scholarOrigin = "https://scholar.google.com"

// ExtractUserID pulls the profile key from the "user" query parameter of a
// Scholar profile URL.
func ExtractUserID(profileURL string) (string, error) {
	parsed, err := url.Parse(profileURL)
	if err != nil {
		return "", fmt.Errorf("parsing profile URL: %w", err)
	}
	userID := parsed.Query().Get("user")
	if userID == "" {
		return "", fmt.Errorf("profile URL %q has no user parameter", profileURL)
	}
	return userID, nil
}

// listURL builds the listing URL for one page of a profile, sorted by
// publication date descending (Scholar's native ordering; the final output
// is re-sorted by year regardless).
func listURL(userID string, start, pagesize int) string {
	params := url.Values{
		"hl":       {"en"},
		"user":     {userID},
		"view_op":  {"list_works"},
		"sortby":   {"pubdate"},
		"cstart":   {fmt.Sprintf("%d", start)},
		"pagesize": {fmt.Sprintf("%d", pagesize)},
	}
	return listBase + "?" + params.Encode()
}
