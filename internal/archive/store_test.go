// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-sync/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), ".scholar-sync", "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testPubs() []types.Publication {
	return []types.Publication{
		{Title: "Paper One", Authors: "A Author", Venue: "Venue", Year: 2023, ScholarURL: "https://scholar.google.com/a"},
		{Title: "Paper Two", Authors: "B Author", Venue: "", Year: 2021},
	}
}

func TestRecordRunFirstRun(t *testing.T) {
	s := newTestStore(t)

	summary, err := s.RecordRun(context.Background(), "https://scholar.google.com/citations?user=X", testPubs())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Added)

	runs, err := s.History(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, summary.RunID, runs[0].ID)
	assert.Equal(t, 2, runs[0].Total)
	assert.Equal(t, 2, runs[0].Added)
	assert.False(t, runs[0].FetchedAt.IsZero())
}

func TestRecordRunSecondRunCountsOnlyNew(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.RecordRun(ctx, "src", testPubs())
	require.NoError(t, err)

	second := append(testPubs(), types.Publication{Title: "Paper Three", Year: 2024})
	summary, err := s.RecordRun(ctx, "src", second)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Added)
}

func TestRecordRunUpdatesFieldsButKeepsIdentity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.RecordRun(ctx, "src", []types.Publication{
		{Title: "Evolving Paper", Authors: "Old Authors", Venue: "Preprint", Year: 2022},
	})
	require.NoError(t, err)

	// Scholar later shows the published venue; same identity, new fields.
	_, err = s.RecordRun(ctx, "src", []types.Publication{
		{Title: "EVOLVING PAPER", Authors: "New Authors", Venue: "Real Journal", Year: 2022},
	})
	require.NoError(t, err)

	pubs, err := s.Publications(ctx)
	require.NoError(t, err)
	require.Len(t, pubs, 1)
	assert.Equal(t, "New Authors", pubs[0].Authors)
	assert.Equal(t, "Real Journal", pubs[0].Venue)
}

func TestPublicationsKeepDroppedEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.RecordRun(ctx, "src", testPubs())
	require.NoError(t, err)

	// The second run no longer lists Paper Two; the archive still does.
	_, err = s.RecordRun(ctx, "src", testPubs()[:1])
	require.NoError(t, err)

	pubs, err := s.Publications(ctx)
	require.NoError(t, err)
	assert.Len(t, pubs, 2)
}

func TestPublicationsSortedYearDescending(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.RecordRun(ctx, "src", []types.Publication{
		{Title: "Mid", Year: 2020},
		{Title: "New", Year: 2024},
		{Title: "Old", Year: 2015},
	})
	require.NoError(t, err)

	pubs, err := s.Publications(ctx)
	require.NoError(t, err)
	require.Len(t, pubs, 3)
	assert.Equal(t, []int{2024, 2020, 2015}, []int{pubs[0].Year, pubs[1].Year, pubs[2].Year})
}

func TestHistoryLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.RecordRun(ctx, "src", testPubs())
		require.NoError(t, err)
	}

	runs, err := s.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// Newest first.
	assert.Greater(t, runs[0].ID, runs[1].ID)
}
