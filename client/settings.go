package client

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/PrayerJournal/localstore"
	"github.com/PrayerJournal/models"
)

const (
	settingsKey  = "prayer-journal-settings"
	remindersKey = "prayer-journal-notifications"
)

// SettingsStore holds the single settings record and the reminder
// schedule. Loads always yield a structurally complete value: stored
// fields overlay the defaults.
type SettingsStore struct {
	mu        sync.Mutex
	store     *localstore.Store
	db        *goqu.Database
	userID    int
	settings  models.Settings
	reminders models.ReminderSettings
	pending   sync.WaitGroup
}

func NewSettingsStore(store *localstore.Store, db *goqu.Database) *SettingsStore {
	s := &SettingsStore{
		store:     store,
		db:        db,
		settings:  models.DefaultSettings(),
		reminders: models.DefaultReminderSettings(),
	}
	s.store.Load(settingsKey, &s.settings)
	s.store.Load(remindersKey, &s.reminders)
	return s
}

// SetOwner pulls the signed-in user's settings row, keeping the local copy
// when none exists remotely.
func (s *SettingsStore) SetOwner(ctx context.Context, userID int) error {
	s.pending.Wait()

	s.mu.Lock()
	s.userID = userID
	s.mu.Unlock()

	if s.db == nil || userID == GuestUser {
		return nil
	}

	var row models.SettingsRow
	found, err := s.db.From("user_settings").
		Where(goqu.C("user_profile_id").Eq(userID)).
		ScanStructContext(ctx, &row)
	if err != nil {
		log.Println("settings: fetch failed, using local copy:", err)
		return err
	}
	if !found {
		return nil
	}

	merged := models.DefaultSettings()
	if err := json.Unmarshal(row.Settings_Doc, &merged); err != nil {
		log.Println("settings: corrupt remote settings doc:", err)
		return nil
	}

	s.mu.Lock()
	s.settings = merged
	s.mu.Unlock()
	s.store.Save(settingsKey, merged)
	return nil
}

// Get returns the current settings value.
func (s *SettingsStore) Get() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Update applies a patch to the settings, persists locally, and mirrors
// the record remotely in the background. A failed remote save restores the
// pre-mutation value, the same revert policy the collections use.
func (s *SettingsStore) Update(apply func(*models.Settings)) models.Settings {
	s.mu.Lock()
	snapshot := s.settings
	apply(&s.settings)
	updated := s.settings
	userID := s.userID
	s.mu.Unlock()

	s.store.Save(settingsKey, updated)

	if s.db != nil && userID != GuestUser {
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()

			doc, err := json.Marshal(updated)
			if err != nil {
				log.Println("settings: encode failed:", err)
				return
			}
			row := models.SettingsRow{
				User_Profile_ID: userID,
				Settings_Doc:    doc,
				Datetime_Update: time.Now(),
			}
			_, err = s.db.Insert("user_settings").
				Rows(row).
				OnConflict(goqu.DoUpdate("user_profile_id", row)).
				Executor().
				Exec()
			if err != nil {
				log.Println("settings: remote save failed, reverting:", err)
				s.mu.Lock()
				if s.userID == userID {
					s.settings = snapshot
					s.store.Save(settingsKey, snapshot)
				}
				s.mu.Unlock()
			}
		}()
	}
	return updated
}

// Flush blocks until in-flight remote saves have settled.
func (s *SettingsStore) Flush() {
	s.pending.Wait()
}

// Reminders returns the current reminder schedule.
func (s *SettingsStore) Reminders() models.ReminderSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reminders
}

// UpdateReminders replaces the reminder schedule.
func (s *SettingsStore) UpdateReminders(r models.ReminderSettings) {
	s.mu.Lock()
	s.reminders = r
	s.mu.Unlock()
	s.store.Save(remindersKey, r)
}
