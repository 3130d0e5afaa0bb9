package client

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PrayerJournal/localstore"
	"github.com/PrayerJournal/models"
	"github.com/PrayerJournal/timers"
)

var ErrEmptyTitle = errors.New("prayer title is required")

// PrayerStore owns the prayer collection and every action against it.
type PrayerStore struct {
	col   *Collection[models.Prayer]
	clock timers.Clock
}

func NewPrayerStore(store *localstore.Store, table Table[models.Prayer], clock timers.Clock) *PrayerStore {
	return &PrayerStore{
		col: NewCollection("prayer-journal-prayers", store, table, func(p models.Prayer) string {
			return p.Prayer_ID
		}),
		clock: clock,
	}
}

// Add creates a prayer with its initial log entry and returns it.
func (s *PrayerStore) Add(req models.PrayerCreate) (models.Prayer, error) {
	if strings.TrimSpace(req.Title) == "" {
		return models.Prayer{}, ErrEmptyTitle
	}

	now := s.clock.Now()
	prayer := models.Prayer{
		Prayer_ID:          uuid.NewString(),
		Title:              strings.TrimSpace(req.Title),
		Prayer_Description: req.Prayer_Description,
		Category:           req.Category,
		Scripture:          req.Scripture,
		Urgent:             req.Urgent,
		Prayer_Log:         []time.Time{now},
		Sessions:           []models.TimedSession{},
		Notes:              []models.JournalNote{},
		Partners:           []models.Partner{},
		Datetime_Create:    now,
		Datetime_Update:    now,
	}
	s.col.Add(prayer)
	return prayer, nil
}

// Update applies a field-level mutation and bumps the update timestamp.
func (s *PrayerStore) Update(id string, apply func(*models.Prayer)) bool {
	return s.col.Update(id, func(p models.Prayer) models.Prayer {
		apply(&p)
		p.Datetime_Update = s.clock.Now()
		return p
	})
}

func (s *PrayerStore) Delete(id string) bool {
	return s.col.Remove(id)
}

// MarkAnswered turns a prayer into a testimony.
func (s *PrayerStore) MarkAnswered(id, testimonyNote string) bool {
	return s.Update(id, func(p *models.Prayer) {
		now := s.clock.Now()
		p.Answered = true
		p.Datetime_Answered = &now
		p.Testimony_Note = testimonyNote
	})
}

// Restore moves an answered prayer back to the active list.
func (s *PrayerStore) Restore(id string) bool {
	return s.Update(id, func(p *models.Prayer) {
		p.Answered = false
		p.Datetime_Answered = nil
	})
}

func (s *PrayerStore) ToggleUrgent(id string) bool {
	return s.Update(id, func(p *models.Prayer) {
		p.Urgent = !p.Urgent
	})
}

// LogPrayed appends a prayed-timestamp to the prayer's log.
func (s *PrayerStore) LogPrayed(id string) bool {
	return s.Update(id, func(p *models.Prayer) {
		p.Prayer_Log = append(p.Prayer_Log, s.clock.Now())
	})
}

// UndoLogPrayed removes the most recent log entry, always keeping the
// creation entry.
func (s *PrayerStore) UndoLogPrayed(id string) bool {
	return s.Update(id, func(p *models.Prayer) {
		if len(p.Prayer_Log) > 1 {
			p.Prayer_Log = p.Prayer_Log[:len(p.Prayer_Log)-1]
		}
	})
}

// AddSession records a finished timed session. Sessions under
// timers.MinSessionSeconds are discarded here, per the caller-side policy.
func (s *PrayerStore) AddSession(id string, session models.TimedSession) bool {
	if session.Duration < timers.MinSessionSeconds {
		return false
	}
	return s.Update(id, func(p *models.Prayer) {
		p.Sessions = append(p.Sessions, session)
	})
}

func (s *PrayerStore) AddNote(id, text, noteType string) bool {
	return s.Update(id, func(p *models.Prayer) {
		p.Notes = appendNote(p.Notes, text, noteType, s.clock.Now())
	})
}

func (s *PrayerStore) DeleteNote(id, noteID string) bool {
	return s.Update(id, func(p *models.Prayer) {
		p.Notes = removeNote(p.Notes, noteID)
	})
}

// AddPartner attaches a named partner. Names are unique per prayer,
// case-insensitively.
func (s *PrayerStore) AddPartner(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("partner name is required")
	}

	var dupErr error
	found := s.col.Update(id, func(p models.Prayer) models.Prayer {
		partners, err := addPartner(p.Partners, name)
		if err != nil {
			dupErr = err
			return p
		}
		p.Partners = partners
		p.Datetime_Update = s.clock.Now()
		return p
	})
	if !found {
		return errors.New("prayer not found")
	}
	return dupErr
}

func (s *PrayerStore) RemovePartner(id, partnerID string) bool {
	return s.Update(id, func(p *models.Prayer) {
		p.Partners = removePartner(p.Partners, partnerID)
	})
}

func (s *PrayerStore) LogPartnerPrayed(id, partnerID string) bool {
	return s.Update(id, func(p *models.Prayer) {
		p.Partners = logPartnerPrayed(p.Partners, partnerID, s.clock.Now())
	})
}

func (s *PrayerStore) UndoPartnerPrayed(id, partnerID string) bool {
	return s.Update(id, func(p *models.Prayer) {
		p.Partners = undoPartnerPrayed(p.Partners, partnerID)
	})
}

// AddPartnerSession records a timed session against one partner, with the
// same minimum-duration policy as personal sessions.
func (s *PrayerStore) AddPartnerSession(id, partnerID string, session models.TimedSession) bool {
	if session.Duration < timers.MinSessionSeconds {
		return false
	}
	return s.Update(id, func(p *models.Prayer) {
		p.Partners = addPartnerSession(p.Partners, partnerID, session)
	})
}

// All returns every prayer, newest first.
func (s *PrayerStore) All() []models.Prayer {
	return s.col.Items()
}

func (s *PrayerStore) Get(id string) (models.Prayer, bool) {
	return s.col.Get(id)
}

// Active returns unanswered prayers, urgent ones first, otherwise keeping
// collection order.
func (s *PrayerStore) Active() []models.Prayer {
	var active []models.Prayer
	for _, p := range s.col.Items() {
		if !p.Answered {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Urgent && !active[j].Urgent
	})
	return active
}

// Testimonies returns the answered prayers.
func (s *PrayerStore) Testimonies() []models.Prayer {
	var answered []models.Prayer
	for _, p := range s.col.Items() {
		if p.Answered {
			answered = append(answered, p)
		}
	}
	return answered
}
