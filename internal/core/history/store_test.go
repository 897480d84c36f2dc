package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meal-planner/internal/core/plan"
)

func testPlan() *plan.Plan {
	return &plan.Plan{
		ProfileName: "Alex",
		WeekStart:   "2026-01-19",
		WeekEnd:     "2026-01-25",
		Days: []plan.Day{
			{
				Name: "Monday",
				Meals: map[string]*plan.Meal{
					"breakfast": {Title: "Veggie Omelet", Filename: "veggie-omelet.md", Category: "breakfast", Cuisine: "American"},
					"dinner":    {Title: "Fish Tacos", Filename: "fish-tacos.md", Category: "dinner", Cuisine: "Mexican"},
				},
			},
			{
				Name: "Tuesday",
				Meals: map[string]*plan.Meal{
					"dinner": {Title: "No dinner recipe available", Note: "Add more dinner recipes."},
				},
			},
		},
	}
}

func TestNewEntry(t *testing.T) {
	now := time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC)
	entry := NewEntry(testPlan(), 0, now)

	assert.Equal(t, EntryVersion, entry.Version)
	assert.Equal(t, DefaultTTLDays, entry.TTLDays)
	assert.Equal(t, now.AddDate(0, 0, 30), entry.ExpiresAt)
	assert.Equal(t, "2026-01-19", entry.WeekStart)
	assert.Equal(t, "Alex", entry.ProfileName)

	monday := entry.Meals["Monday"]
	require.NotNil(t, monday)
	assert.Equal(t, "fish-tacos.md", monday["dinner"].Filename)
	assert.Equal(t, "Mexican", monday["dinner"].Cuisine)

	// 佔位餐仍被記錄，但沒有檔名
	assert.Equal(t, "", entry.Meals["Tuesday"]["dinner"].Filename)
}

func TestFileStoreSaveAndEntries(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	ctx := context.Background()

	now := time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, NewEntry(testPlan(), 30, now)))

	_, err := os.Stat(filepath.Join(dir, "history_2026-01-19.json"))
	require.NoError(t, err)

	entries, err := store.Entries(ctx, false)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-01-19", entries[0].WeekStart)
	assert.Equal(t, "Veggie Omelet", entries[0].Meals["Monday"]["breakfast"].Title)
}

func TestFileStoreSkipsExpired(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	ctx := context.Background()

	past := time.Now().AddDate(0, 0, -60)
	expired := NewEntry(testPlan(), 30, past)
	require.NoError(t, store.Save(ctx, expired))

	entries, err := store.Entries(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = store.Entries(ctx, true)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStoreSkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "history_2026-01-12.json"), []byte("{not json"), 0o644))
	require.NoError(t, store.Save(ctx, NewEntry(testPlan(), 30, time.Now())))

	entries, err := store.Entries(ctx, false)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStoreSortsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	ctx := context.Background()
	now := time.Now()

	older := NewEntry(testPlan(), 30, now)
	older.WeekStart = "2026-01-12"
	newer := NewEntry(testPlan(), 30, now)
	newer.WeekStart = "2026-01-19"
	require.NoError(t, store.Save(ctx, older))
	require.NoError(t, store.Save(ctx, newer))

	entries, err := store.Entries(ctx, false)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2026-01-19", entries[0].WeekStart)
	assert.Equal(t, "2026-01-12", entries[1].WeekStart)
}

func TestRecentlyUsed(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	ctx := context.Background()

	now := time.Date(2026, 1, 21, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, NewEntry(testPlan(), 30, now)))

	// 三天窗口涵蓋週一與週二
	used, err := RecentlyUsed(ctx, store, 3, now)
	require.NoError(t, err)
	require.Len(t, used, 2)
	assert.Equal(t, "veggie-omelet.md", used[0].Filename)
	assert.Equal(t, "breakfast", used[0].MealType)
	assert.Equal(t, "2026-01-19", used[0].Date)
	assert.Equal(t, "fish-tacos.md", used[1].Filename)

	// 窗口太短時週一的餐不在範圍內
	used, err = RecentlyUsed(ctx, store, 1, now)
	require.NoError(t, err)
	assert.Empty(t, used)
}

func TestDaysSinceUsed(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	ctx := context.Background()

	now := time.Date(2026, 1, 22, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, NewEntry(testPlan(), 30, now)))

	days, ok, err := DaysSinceUsed(ctx, store, "fish-tacos.md", now)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, days)

	_, ok, err = DaysSinceUsed(ctx, store, "never-used.md", now)
	require.NoError(t, err)
	assert.False(t, ok)

	last, err := LastUsed(ctx, store, "veggie-omelet.md", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-19", last)
}
