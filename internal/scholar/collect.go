// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/scholar-sync/pkg/types"
)

// Collect pages through the profile's citation listing and returns the
// deduplicated publications in first-seen order. Pagination stops when a
// page comes back empty, when a page holds fewer rows than cfg.PageSize
// (Scholar's "no more data" signal), or when cfg.MaxPages full pages have
// been fetched. The short-page check uses the raw row count, so a full
// page consisting entirely of duplicates keeps the loop going; only the
// empty-page and MaxPages checks bound that case.
//
// Any fetch failure aborts the run immediately; per-row parse anomalies do
// not. Progress lines go to w.
func Collect(ctx context.Context, client *http.Client, userID string, cfg types.CollectConfig, w io.Writer) ([]types.Publication, error) {
	start := 0
	pagesFetched := 0
	seen := make(map[types.PublicationKey]struct{})
	var all []types.Publication

	for {
		pageURL := listURL(userID, start, cfg.PageSize)
		html, err := fetchPage(ctx, client, pageURL, cfg.HTTPConfig)
		if err != nil {
			return nil, err
		}

		page, err := parsePublications(html)
		if err != nil {
			return nil, fmt.Errorf("parsing listing page at offset %d: %w", start, err)
		}
		if len(page) == 0 {
			break
		}

		added := 0
		for _, pub := range page {
			key := pub.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			all = append(all, pub)
			added++
		}
		fmt.Fprintf(w, "page at offset %d: %d rows, %d new\n", start, len(page), added)

		if len(page) < cfg.PageSize {
			break
		}

		pagesFetched++
		if cfg.MaxPages > 0 && pagesFetched >= cfg.MaxPages {
			break
		}

		start += cfg.PageSize
		if cfg.PageDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(cfg.PageDelay):
			}
		}
	}

	return all, nil
}
