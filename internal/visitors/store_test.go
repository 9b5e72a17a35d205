package visitors

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashIP(t *testing.T) {
	s := openTest(t)
	h := s.HashIP("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, s.HashIP("203.0.113.7"))
	assert.NotEqual(t, h, s.HashIP("203.0.113.8"))

	other := openTest(t)
	assert.NotEqual(t, h, other.HashIP("203.0.113.7"), "salt is per store")
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	now := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return now.Add(-10 * 24 * time.Hour) }
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "curl", "/"))

	s.now = func() time.Time { return now.Add(-3 * 24 * time.Hour) }
	require.NoError(t, s.RecordVisit(ctx, "2.2.2.2", "firefox", "/"))

	s.now = func() time.Time { return now.Add(-time.Hour) }
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "curl", "/"))
	require.NoError(t, s.RecordImpression(ctx, "about"))
	require.NoError(t, s.RecordImpression(ctx, "about"))
	require.NoError(t, s.RecordImpression(ctx, "home"))

	s.now = func() time.Time { return now }
	stats, err := s.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalVisitors)
	assert.Equal(t, int64(2), stats.UniqueVisitors)
	assert.Equal(t, int64(1), stats.VisitorsToday)
	assert.Equal(t, int64(2), stats.VisitorsThisWeek)
	assert.Equal(t, []SectionCount{{"about", 2}, {"home", 1}}, stats.TopSections)

	require.Len(t, stats.RecentVisitors, 3)
	assert.Equal(t, now.Add(-time.Hour), stats.RecentVisitors[0].Timestamp)
	assert.NotContains(t, stats.RecentVisitors[0].HashedIP, "1.1.1.1")
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return now.Add(-Retention - time.Hour) }
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "", "/"))
	require.NoError(t, s.RecordImpression(ctx, "home"))

	s.now = func() time.Time { return now }
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "", "/"))

	n, err := s.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	recent, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}
