// Package timers tracks the single active prayer timer. Elapsed time is
// always now minus the start timestamp, never an accumulating counter, so
// a suspended or killed process picks up with the correct value.
package timers

import (
	"sync"
	"time"

	"github.com/PrayerJournal/localstore"
)

const storageKey = "prayer-timer-state"

// MinSessionSeconds is the caller-side floor: sessions shorter than this
// are discarded by whoever records them, not by the engine.
const MinSessionSeconds = 2

// Clock lets tests drive the engine without real waiting.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock used outside tests.
var SystemClock Clock = systemClock{}

// ActiveTimer is the persisted state of a running timer. PartnerID is empty
// for a personal session.
type ActiveTimer struct {
	Subject_ID string    `json:"subjectId"`
	Partner_ID string    `json:"partnerId,omitempty"`
	Started_At time.Time `json:"startedAt"`
}

// Session is a finalized timer run.
type Session struct {
	Subject_ID string    `json:"subjectId"`
	Partner_ID string    `json:"partnerId,omitempty"`
	Started_At time.Time `json:"startedAt"`
	Duration   int       `json:"duration"`
}

// Engine owns the one process-wide timer slot. It is safe for concurrent
// use; the hosting application should Close it on teardown so the ticker
// goroutine stops.
type Engine struct {
	mu     sync.Mutex
	clock  Clock
	store  *localstore.Store
	active *ActiveTimer

	stopTick chan struct{}
	onTick   func(elapsedSeconds int)
}

// NewEngine restores any persisted timer, so a timer started before an app
// restart keeps running. store may be nil for throwaway engines in tests.
func NewEngine(store *localstore.Store, clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock
	}
	e := &Engine{clock: clock, store: store}

	if store != nil {
		var saved ActiveTimer
		if store.Load(storageKey, &saved) && saved.Subject_ID != "" {
			e.active = &saved
		}
	}
	return e
}

// Start begins timing a subject. If a timer is already running it is
// finalized first and its session returned, so no elapsed time is ever
// silently discarded by a double start.
func (e *Engine) Start(subjectID, partnerID string) *Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	prior := e.finalizeLocked()
	e.active = &ActiveTimer{
		Subject_ID: subjectID,
		Partner_ID: partnerID,
		Started_At: e.clock.Now(),
	}
	e.persistLocked()
	return prior
}

// Stop finalizes the active timer and returns its session, or nil when no
// timer is running.
func (e *Engine) Stop() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	session := e.finalizeLocked()
	e.persistLocked()
	return session
}

// Cancel clears the active timer without producing a session.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.active = nil
	e.persistLocked()
}

// Active returns a copy of the running timer state, or nil when idle.
func (e *Engine) Active() *ActiveTimer {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return nil
	}
	copied := *e.active
	return &copied
}

// Elapsed is the running timer's age in whole seconds, zero when idle.
// Derived from the start timestamp on every call, so it is correct even
// when ticks were missed.
func (e *Engine) Elapsed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.elapsedLocked()
}

// OnTick registers a callback invoked with the elapsed seconds on a
// 1-second cadence while a timer is active. Replaces any prior callback.
func (e *Engine) OnTick(fn func(elapsedSeconds int)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTickLocked()
	e.onTick = fn
	if fn == nil {
		return
	}

	stop := make(chan struct{})
	e.stopTick = stop
	go e.tickLoop(stop)
}

// Close stops the tick goroutine. The persisted timer state survives so a
// restarted engine resumes it.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTickLocked()
	e.onTick = nil
}

func (e *Engine) tickLoop(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.mu.Lock()
			fn := e.onTick
			elapsed := e.elapsedLocked()
			running := e.active != nil
			e.mu.Unlock()

			if running && fn != nil {
				fn(elapsed)
			}
		}
	}
}

func (e *Engine) stopTickLocked() {
	if e.stopTick != nil {
		close(e.stopTick)
		e.stopTick = nil
	}
}

func (e *Engine) elapsedLocked() int {
	if e.active == nil {
		return 0
	}
	return int(e.clock.Now().Sub(e.active.Started_At).Seconds())
}

func (e *Engine) finalizeLocked() *Session {
	if e.active == nil {
		return nil
	}
	session := &Session{
		Subject_ID: e.active.Subject_ID,
		Partner_ID: e.active.Partner_ID,
		Started_At: e.active.Started_At,
		Duration:   e.elapsedLocked(),
	}
	e.active = nil
	return session
}

func (e *Engine) persistLocked() {
	if e.store == nil {
		return
	}
	if e.active == nil {
		e.store.Remove(storageKey)
		return
	}
	e.store.Save(storageKey, e.active)
}
