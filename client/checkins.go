package client

import (
	"github.com/PrayerJournal/localstore"
	"github.com/PrayerJournal/models"
	"github.com/PrayerJournal/streaks"
	"github.com/PrayerJournal/timers"
)

// CheckinStore tracks the manual "I prayed today" check-ins. Streaks are
// computed over the union of these dates and the prayer-log activity, so a
// day counts once whether it came from a check-in, a logged prayer, or both.
type CheckinStore struct {
	col   *Collection[string]
	clock timers.Clock
}

func NewCheckinStore(store *localstore.Store, table Table[string], clock timers.Clock) *CheckinStore {
	return &CheckinStore{
		col:   NewCollection("prayer-journal-checkins", store, table, func(d string) string { return d }),
		clock: clock,
	}
}

// CheckInToday records today once; repeat calls the same day are no-ops.
func (s *CheckinStore) CheckInToday() bool {
	today := streaks.Today(s.clock.Now())
	for _, d := range s.col.Items() {
		if d == today {
			return false
		}
	}
	s.col.Append(today)
	return true
}

// Dates returns the manual check-in date strings.
func (s *CheckinStore) Dates() []string {
	return s.col.Items()
}

// Stats derives streak aggregates from the merged check-in and prayer-log
// date set.
func (s *CheckinStore) Stats(prayers []models.Prayer) models.StreakStats {
	now := s.clock.Now()
	summary := streaks.Summarize(prayers, s.col.Items(), now)
	return models.StreakStats{
		Current_Streak:    summary.CurrentStreak,
		Longest_Streak:    summary.LongestStreak,
		Total_Days_Prayed: summary.TotalDaysPrayed,
		Total_Prayers:     summary.TotalPrayers,
		Has_Prayed_Today:  summary.HasPrayedToday,
	}
}
