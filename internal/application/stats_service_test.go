package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
)

func TestCompletionRate(t *testing.T) {
	cases := []struct {
		f, s int64
		want float64
	}{
		{0, 0, 0},
		{3, 0, 100},
		{0, 4, 0},
		{1, 2, 33.33},
		{2, 1, 66.67},
		{1, 7, 12.5},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, CompletionRate(tc.f, tc.s), "%d/%d", tc.f, tc.s)
	}
}

func TestCompletionStats_CountsStartedRows(t *testing.T) {
	e := newTestEnv(t, day(2024, 1, 2))
	u := e.register(t, "ana@x.com")
	a := e.createActivity(t, u.ID, "Run", entity.FrequencyDaily)
	ctx := context.Background()

	_, err := e.progress.RecordCompletion(ctx, a.ID, nil)
	require.NoError(t, err)
	e.store.insertProgress("p-started-1", a.ID, day(2023, 12, 30), entity.StatusStarted)
	e.store.insertProgress("p-started-2", a.ID, day(2023, 12, 31), entity.StatusStarted)

	stats, err := e.stats.CompletionStats(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, entity.CompletionStats{TotalFinished: 1, TotalStarted: 2, CompletionRate: 33.33}, *stats)
}

func TestCompletionStats_EmptyAndUnknownUser(t *testing.T) {
	e := newTestEnv(t, day(2024, 1, 2))
	stats, err := e.stats.CompletionStats(context.Background(), "nobody")
	require.NoError(t, err)
	require.Equal(t, entity.CompletionStats{}, *stats)
}

func TestCompletionStats_CacheLifecycle(t *testing.T) {
	e := newTestEnv(t, day(2024, 1, 2))
	u := e.register(t, "ana@x.com")
	a := e.createActivity(t, u.ID, "Run", entity.FrequencyDaily)
	ctx := context.Background()

	first, err := e.stats.CompletionStats(ctx, u.ID)
	require.NoError(t, err)
	require.Zero(t, first.TotalFinished)
	require.True(t, e.cache.fresh(u.ID))

	// a write retires the cached value so the next read sees it
	_, err = e.progress.RecordCompletion(ctx, a.ID, nil)
	require.NoError(t, err)
	require.False(t, e.cache.fresh(u.ID))

	second, err := e.stats.CompletionStats(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), second.TotalFinished)

	// served from the cache
	e.store.insertProgress("p-x", a.ID, day(2023, 12, 1), entity.StatusFinished)
	third, err := e.stats.CompletionStats(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), third.TotalFinished)
}

func TestCompletionStats_WriteDuringReadIsNotHidden(t *testing.T) {
	e := newTestEnv(t, day(2024, 1, 2))
	u := e.register(t, "ana@x.com")
	a := e.createActivity(t, u.ID, "Run", entity.FrequencyDaily)
	ctx := context.Background()

	// the reader has missed the cache and counted zero rows when the completion lands
	e.cache.beforeSet = func() {
		_, err := e.progress.RecordCompletion(ctx, a.ID, nil)
		require.NoError(t, err)
	}
	stale, err := e.stats.CompletionStats(ctx, u.ID)
	require.NoError(t, err)
	require.Zero(t, stale.TotalFinished)

	got, err := e.stats.CompletionStats(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, entity.CompletionStats{TotalFinished: 1, CompletionRate: 100}, *got)
}

func TestCompletionStats_CacheFailureFallsBack(t *testing.T) {
	e := newTestEnv(t, day(2024, 1, 2))
	u := e.register(t, "ana@x.com")
	a := e.createActivity(t, u.ID, "Run", entity.FrequencyDaily)
	_, err := e.progress.RecordCompletion(context.Background(), a.ID, nil)
	require.NoError(t, err)

	e.cache.getErr = errors.New("redis down")
	stats, err := e.stats.CompletionStats(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.TotalFinished)
	require.NotEmpty(t, e.logs.AllEntries())
	require.Empty(t, e.cache.data, "nothing is stored without a known generation")
}

func TestCompletionStats_NoCache(t *testing.T) {
	s := NewStatsService(fakeProgress{newMemStore()}, nil, nil)
	stats, err := s.CompletionStats(context.Background(), "u")
	require.NoError(t, err)
	require.Zero(t, stats.CompletionRate)
	s.Invalidate(context.Background(), "u")
}
