package timers

import (
	"testing"
	"time"

	"github.com/PrayerJournal/localstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)}
}

func TestStartStop(t *testing.T) {
	clock := newFakeClock()
	e := NewEngine(nil, clock)

	prior := e.Start("prayer-1", "")
	assert.Nil(t, prior)

	clock.advance(90 * time.Second)

	session := e.Stop()
	require.NotNil(t, session)
	assert.Equal(t, "prayer-1", session.Subject_ID)
	assert.Equal(t, 90, session.Duration)
	assert.Nil(t, e.Active())
	assert.Equal(t, 0, e.Elapsed())
}

// Elapsed is derived from the start timestamp, so it stays correct however
// long the process was suspended between reads.
func TestElapsedIsWallClockDerived(t *testing.T) {
	clock := newFakeClock()
	e := NewEngine(nil, clock)

	e.Start("prayer-1", "")

	clock.advance(5 * time.Second)
	assert.Equal(t, 5, e.Elapsed())

	clock.advance(2 * time.Hour)
	assert.Equal(t, 5+7200, e.Elapsed())
}

func TestDoubleStartFinalizesPrior(t *testing.T) {
	clock := newFakeClock()
	e := NewEngine(nil, clock)

	e.Start("prayer-1", "")
	clock.advance(45 * time.Second)

	prior := e.Start("prayer-2", "mom")
	require.NotNil(t, prior)
	assert.Equal(t, "prayer-1", prior.Subject_ID)
	assert.Equal(t, 45, prior.Duration)

	active := e.Active()
	require.NotNil(t, active)
	assert.Equal(t, "prayer-2", active.Subject_ID)
	assert.Equal(t, "mom", active.Partner_ID)
	assert.Equal(t, 0, e.Elapsed())
}

func TestCancelDiscardsSession(t *testing.T) {
	clock := newFakeClock()
	e := NewEngine(nil, clock)

	e.Start("prayer-1", "")
	clock.advance(30 * time.Second)
	e.Cancel()

	assert.Nil(t, e.Active())
	assert.Nil(t, e.Stop())
}

func TestStopWhenIdle(t *testing.T) {
	e := NewEngine(nil, newFakeClock())
	assert.Nil(t, e.Stop())
	assert.Equal(t, 0, e.Elapsed())
}

func TestTimerSurvivesRestart(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	clock := newFakeClock()

	first := NewEngine(store, clock)
	first.Start("prayer-1", "dad")
	first.Close()

	clock.advance(10 * time.Minute)

	second := NewEngine(store, clock)
	active := second.Active()
	require.NotNil(t, active)
	assert.Equal(t, "prayer-1", active.Subject_ID)
	assert.Equal(t, "dad", active.Partner_ID)
	assert.Equal(t, 600, second.Elapsed())
}

func TestStopClearsPersistedState(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	clock := newFakeClock()

	first := NewEngine(store, clock)
	first.Start("prayer-1", "")
	clock.advance(time.Minute)
	first.Stop()

	second := NewEngine(store, clock)
	assert.Nil(t, second.Active())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00", FormatDuration(0))
	assert.Equal(t, "00:09", FormatDuration(9))
	assert.Equal(t, "05:09", FormatDuration(309))
	assert.Equal(t, "1:05:09", FormatDuration(3909))
}

func TestFormatDurationReadable(t *testing.T) {
	assert.Equal(t, "0s", FormatDurationReadable(0))
	assert.Equal(t, "45s", FormatDurationReadable(45))
	assert.Equal(t, "5m 9s", FormatDurationReadable(309))
	assert.Equal(t, "1h 5m 9s", FormatDurationReadable(3909))
}
