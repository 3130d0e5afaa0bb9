package client

import (
	"testing"
	"time"

	"github.com/PrayerJournal/localstore"
	"github.com/PrayerJournal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlanStore(t *testing.T) (*PlanStore, *fakeClock) {
	clock := newTestClock()
	return NewPlanStore(testStore(t), nil, nil, clock), clock
}

func TestStartFromTemplate(t *testing.T) {
	s, _ := newPlanStore(t)

	plan := s.Start("21day", "", 0)

	assert.Equal(t, "21-Day Prayer Habit Builder", plan.Plan_Name)
	assert.Equal(t, 21, plan.Total_Days)
	assert.Equal(t, "2025-06-15", plan.Start_Date)
	assert.Empty(t, plan.Checked_Days)
	assert.Equal(t, 1, s.CurrentDayNumber(plan))
}

func TestStartCustomPlanDefaults(t *testing.T) {
	s, _ := newPlanStore(t)

	plan := s.Start("", "", 0)
	assert.Equal(t, 7, plan.Total_Days)
	assert.Equal(t, "7-Day Prayer Plan", plan.Plan_Name)

	named := s.Start("", "Exam Season", 14)
	assert.Equal(t, "Exam Season", named.Plan_Name)
	assert.Equal(t, 14, named.Total_Days)
}

func TestCheckInTodayIsIdempotent(t *testing.T) {
	s, clock := newPlanStore(t)
	plan := s.Start("7day", "", 0)

	assert.True(t, s.CheckInToday(plan.Plan_ID))
	assert.False(t, s.CheckInToday(plan.Plan_ID), "second check-in on the same day is a no-op")
	assert.True(t, s.HasPrayedToday(plan.Plan_ID))

	clock.advance(24 * time.Hour)
	assert.False(t, s.HasPrayedToday(plan.Plan_ID))
	assert.True(t, s.CheckInToday(plan.Plan_ID))

	got, _ := s.Get(plan.Plan_ID)
	assert.Len(t, got.Checked_Days, 2)
}

func TestCheckInOnCompletePlanIsNoop(t *testing.T) {
	s, clock := newPlanStore(t)
	plan := s.Start("", "", 2)

	assert.True(t, s.CheckInToday(plan.Plan_ID))
	clock.advance(24 * time.Hour)
	assert.True(t, s.CheckInToday(plan.Plan_ID))

	got, _ := s.Get(plan.Plan_ID)
	assert.True(t, got.IsComplete())

	clock.advance(24 * time.Hour)
	assert.False(t, s.CheckInToday(plan.Plan_ID))
}

func TestCurrentDayNumberClamps(t *testing.T) {
	s, clock := newPlanStore(t)
	plan := s.Start("7day", "", 0)

	clock.advance(3 * 24 * time.Hour)
	got, _ := s.Get(plan.Plan_ID)
	assert.Equal(t, 4, s.CurrentDayNumber(got))

	clock.advance(30 * 24 * time.Hour)
	assert.Equal(t, 7, s.CurrentDayNumber(got))
}

func TestDeleteCompletePlanBumpsCounter(t *testing.T) {
	s, _ := newPlanStore(t)

	finished := s.Start("", "", 1)
	require.True(t, s.CheckInToday(finished.Plan_ID))
	abandoned := s.Start("", "", 7)

	s.Delete(finished.Plan_ID)
	s.Delete(abandoned.Plan_ID)

	assert.Equal(t, 1, s.CompletedCount(), "only complete plans count")
	assert.Empty(t, s.Plans())
}

func TestCompletedCountSurvivesReopen(t *testing.T) {
	store := testStore(t)
	clock := newTestClock()

	first := NewPlanStore(store, nil, nil, clock)
	plan := first.Start("", "", 1)
	require.True(t, first.CheckInToday(plan.Plan_ID))
	first.Delete(plan.Plan_ID)
	require.Equal(t, 1, first.CompletedCount())

	second := NewPlanStore(store, nil, nil, clock)
	assert.Equal(t, 1, second.CompletedCount())
}

func TestLegacyPlanMigration(t *testing.T) {
	dir := t.TempDir()
	store, err := localstore.Open(dir)
	require.NoError(t, err)

	store.Save("prayer-journal-plan", models.Plan{
		Plan_Name:    "Old Plan",
		Total_Days:   7,
		Start_Date:   "2025-06-01",
		Checked_Days: []string{"2025-06-01"},
	})

	s := NewPlanStore(store, nil, nil, newTestClock())

	plans := s.Plans()
	require.Len(t, plans, 1)
	assert.Equal(t, "Old Plan", plans[0].Plan_Name)
	assert.NotEmpty(t, plans[0].Plan_ID, "migrated plan gets an id")

	// the legacy blob is gone, so a second open does not duplicate it
	again := NewPlanStore(store, nil, nil, newTestClock())
	assert.Len(t, again.Plans(), 1)
}

func TestLegacySentinelIsDropped(t *testing.T) {
	store := testStore(t)
	store.Save("prayer-journal-plan", models.Plan{Plan_Name: ""})

	s := NewPlanStore(store, nil, nil, newTestClock())
	assert.Empty(t, s.Plans())
}
