package client

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/doug-martin/goqu/v9"

	"github.com/PrayerJournal/localstore"
	"github.com/PrayerJournal/models"
	"github.com/PrayerJournal/timers"
)

const weeklyProjectKey = "prayer-journal-weekly-project"

// WeeklyStore holds the single weekly prayer focus record. The home screen
// shows it when the showWeeklyFocusOnHome setting is on.
type WeeklyStore struct {
	mu      sync.Mutex
	store   *localstore.Store
	db      *goqu.Database
	clock   timers.Clock
	userID  int
	project models.WeeklyProject
	pending sync.WaitGroup
}

func NewWeeklyStore(store *localstore.Store, db *goqu.Database, clock timers.Clock) *WeeklyStore {
	s := &WeeklyStore{store: store, db: db, clock: clock}
	s.store.Load(weeklyProjectKey, &s.project)
	return s
}

// SetOwner pulls the signed-in user's focus record, keeping the local copy
// when none exists remotely.
func (s *WeeklyStore) SetOwner(ctx context.Context, userID int) error {
	s.pending.Wait()

	s.mu.Lock()
	s.userID = userID
	s.mu.Unlock()

	if s.db == nil || userID == GuestUser {
		return nil
	}

	var row models.WeeklyProjectRow
	found, err := s.db.From("weekly_project").
		Where(goqu.C("user_profile_id").Eq(userID)).
		ScanStructContext(ctx, &row)
	if err != nil {
		log.Println("weekly project: fetch failed, using local copy:", err)
		return err
	}
	if !found {
		return nil
	}

	project := models.WeeklyProject{
		Title:        row.Title,
		Content:      row.Content,
		Last_Updated: &row.Datetime_Update,
	}
	s.mu.Lock()
	s.project = project
	s.mu.Unlock()
	s.store.Save(weeklyProjectKey, project)
	return nil
}

// Get returns the current focus record.
func (s *WeeklyStore) Get() models.WeeklyProject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project
}

// Update replaces the focus, stamps it, persists locally, and mirrors the
// record remotely in the background. A failed remote save restores the
// pre-mutation value, the same revert policy the collections use.
func (s *WeeklyStore) Update(title, content string) models.WeeklyProject {
	now := s.clock.Now()

	s.mu.Lock()
	snapshot := s.project
	s.project = models.WeeklyProject{
		Title:        strings.TrimSpace(title),
		Content:      strings.TrimSpace(content),
		Last_Updated: &now,
	}
	updated := s.project
	userID := s.userID
	s.mu.Unlock()

	s.store.Save(weeklyProjectKey, updated)

	if s.db != nil && userID != GuestUser {
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()

			row := models.WeeklyProjectRow{
				User_Profile_ID: userID,
				Title:           updated.Title,
				Content:         updated.Content,
				Datetime_Update: now,
			}
			_, err := s.db.Insert("weekly_project").
				Rows(row).
				OnConflict(goqu.DoUpdate("user_profile_id", row)).
				Executor().
				Exec()
			if err != nil {
				log.Println("weekly project: remote save failed, reverting:", err)
				s.mu.Lock()
				if s.userID == userID {
					s.project = snapshot
					s.store.Save(weeklyProjectKey, snapshot)
				}
				s.mu.Unlock()
			}
		}()
	}
	return updated
}

// Flush blocks until in-flight remote saves have settled.
func (s *WeeklyStore) Flush() {
	s.pending.Wait()
}
