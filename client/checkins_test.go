package client

import (
	"testing"
	"time"

	"github.com/PrayerJournal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInTodayOnce(t *testing.T) {
	clock := newTestClock()
	s := NewCheckinStore(testStore(t), nil, clock)

	assert.True(t, s.CheckInToday())
	assert.False(t, s.CheckInToday())
	assert.Len(t, s.Dates(), 1)

	clock.advance(24 * time.Hour)
	assert.True(t, s.CheckInToday())
	assert.Equal(t, []string{"2025-06-15", "2025-06-16"}, s.Dates())
}

// A day counts once toward the streak whether it came from a check-in, a
// logged prayer, or both.
func TestStatsMergeCheckinsAndPrayerLogs(t *testing.T) {
	clock := newTestClock()
	store := testStore(t)
	checkins := NewCheckinStore(store, nil, clock)
	prayers := NewPrayerStore(store, nil, clock)

	require.True(t, checkins.CheckInToday())
	_, err := prayers.Add(models.PrayerCreate{Title: "Peace"})
	require.NoError(t, err)

	stats := checkins.Stats(prayers.All())
	assert.Equal(t, 1, stats.Current_Streak)
	assert.Equal(t, 1, stats.Total_Days_Prayed)
	assert.True(t, stats.Has_Prayed_Today)

	clock.advance(24 * time.Hour)
	require.True(t, checkins.CheckInToday())

	stats = checkins.Stats(prayers.All())
	assert.Equal(t, 2, stats.Current_Streak)
	assert.Equal(t, 2, stats.Total_Days_Prayed)
}
