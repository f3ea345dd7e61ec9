// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import "fmt"

// FetchError reports a non-success HTTP status from a listing page request.
// It aborts the whole collection run; no partial output is written.
type FetchError struct {
	StatusCode int
	URL        string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("scholar returned HTTP %d for %s", e.StatusCode, e.URL)
}

// BlockedError reports that Scholar served its anti-abuse page instead of
// the listing. It is distinct from FetchError so operators can tell
// throttling from ordinary failures. Never retried: repeating the request
// tends to extend the block.
type BlockedError struct {
	URL string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("scholar blocked the request to %s (unusual traffic detection)", e.URL)
}
