// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/scholar-sync/pkg/types"
)

// blockedMarker appears in the body of Scholar's anti-abuse interstitial.
const blockedMarker = "unusual traffic"

// fetchPage performs the GET for one listing page and returns the raw body.
// Any non-2xx status yields a *FetchError; an anti-abuse interstitial
// yields a *BlockedError. There is no retry or caching: this is a batch
// job run periodically, and a transient failure just ends the run.
func fetchPage(ctx context.Context, client *http.Client, pageURL string, cfg types.HTTPConfig) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept-Language", cfg.AcceptLanguage)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{StatusCode: resp.StatusCode, URL: pageURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	text := string(body)
	if strings.Contains(strings.ToLower(text), blockedMarker) {
		return "", &BlockedError{URL: pageURL}
	}
	return text, nil
}
