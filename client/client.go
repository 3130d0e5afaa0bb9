package client

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/PrayerJournal/localstore"
	"github.com/PrayerJournal/models"
	"github.com/PrayerJournal/streaks"
	"github.com/PrayerJournal/timers"
)

// Client wires the offline-first stores together around one localstore and
// one optional remote database. With db == nil everything still works; it
// just never leaves the device.
type Client struct {
	Store      *localstore.Store
	Timer      *timers.Engine
	Prayers    *PrayerStore
	Plans      *PlanStore
	Checkins   *CheckinStore
	Categories *CategoryStore
	Community  *CommunityStore
	Intercede  *IntercedeStore
	Settings   *SettingsStore
	Weekly     *WeeklyStore

	clock timers.Clock
}

// New opens the state directory and builds every store in guest mode.
func New(stateDir string, db *goqu.Database, clock timers.Clock) (*Client, error) {
	if clock == nil {
		clock = timers.SystemClock
	}

	store, err := localstore.Open(stateDir)
	if err != nil {
		return nil, err
	}

	var (
		prayers    Table[models.Prayer]
		plans      Table[models.Plan]
		checkins   Table[string]
		categories Table[models.Category]
		members    Table[models.CommunityMember]
		sessions   Table[models.CommunitySession]
		requests   Table[models.IntercessionRequest]
		stats      StatsSink
	)
	if db != nil {
		prayers = prayerTable(db)
		plans = planTable(db)
		checkins = checkinTable(db)
		categories = categoryTable(db)
		members = communityMemberTable(db)
		sessions = communitySessionTable(db)
		requests = intercessionTable(db)
		stats = &statsSink{db: db}
	}

	return &Client{
		Store:      store,
		Timer:      timers.NewEngine(store, clock),
		Prayers:    NewPrayerStore(store, prayers, clock),
		Plans:      NewPlanStore(store, plans, stats, clock),
		Checkins:   NewCheckinStore(store, checkins, clock),
		Categories: NewCategoryStore(store, categories),
		Community:  NewCommunityStore(store, members, sessions, clock),
		Intercede:  NewIntercedeStore(store, requests, clock),
		Settings:   NewSettingsStore(store, db),
		Weekly:     NewWeeklyStore(store, db, clock),
		clock:      clock,
	}, nil
}

// SignIn switches every store to the given owner. Each store drops the
// previous owner's cached rows before fetching, so accounts stay isolated.
// The first fetch error is returned but later stores are still switched.
func (c *Client) SignIn(ctx context.Context, userID int) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	keep(c.Prayers.col.SetOwner(ctx, userID))
	keep(c.Plans.SetOwner(ctx, userID))
	keep(c.Checkins.col.SetOwner(ctx, userID))
	keep(c.Categories.col.SetOwner(ctx, userID))
	keep(c.Community.members.SetOwner(ctx, userID))
	keep(c.Community.sessions.SetOwner(ctx, userID))
	keep(c.Intercede.col.SetOwner(ctx, userID))
	keep(c.Settings.SetOwner(ctx, userID))
	keep(c.Weekly.SetOwner(ctx, userID))
	return firstErr
}

// SignOut flushes pending writes and drops back to guest mode.
func (c *Client) SignOut(ctx context.Context) {
	c.Flush()
	_ = c.SignIn(ctx, GuestUser)
}

// Flush waits for every in-flight remote write. Tests and the shutdown
// path use it; interactive mutations never block on it.
func (c *Client) Flush() {
	c.Prayers.col.Flush()
	c.Plans.Flush()
	c.Checkins.col.Flush()
	c.Categories.col.Flush()
	c.Community.members.Flush()
	c.Community.sessions.Flush()
	c.Intercede.col.Flush()
	c.Settings.Flush()
	c.Weekly.Flush()
}

// Close stops the timer ticker. Persisted state survives for next launch.
func (c *Client) Close() {
	c.Timer.Close()
}

// ErrSessionTooShort marks a finished timer run under the minimum duration;
// the session is discarded, matching the caller-side policy.
var ErrSessionTooShort = errors.New("session shorter than minimum duration")

// RecordSession routes a finished timer session onto its prayer, either the
// personal session list or the partner's when the timer carried one, and
// appends a prayed-log entry alongside.
func (c *Client) RecordSession(session *timers.Session) error {
	if session == nil {
		return nil
	}
	if session.Duration < timers.MinSessionSeconds {
		return ErrSessionTooShort
	}

	timed := models.TimedSession{
		Started_At: session.Started_At,
		Duration:   session.Duration,
	}

	var ok bool
	if session.Partner_ID != "" {
		ok = c.Prayers.AddPartnerSession(session.Subject_ID, session.Partner_ID, timed)
		c.Prayers.LogPartnerPrayed(session.Subject_ID, session.Partner_ID)
	} else {
		ok = c.Prayers.AddSession(session.Subject_ID, timed)
		c.Prayers.LogPrayed(session.Subject_ID)
	}
	if !ok {
		return errors.New("prayer not found for session")
	}
	return nil
}

// Summary computes the home-screen aggregates at the current instant.
func (c *Client) Summary() streaks.Summary {
	return streaks.Summarize(c.Prayers.All(), c.Checkins.Dates(), c.clock.Now())
}

// Now exposes the client's clock for callers rendering relative dates.
func (c *Client) Now() time.Time {
	return c.clock.Now()
}
