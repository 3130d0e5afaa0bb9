package client

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PrayerJournal/localstore"
	"github.com/PrayerJournal/models"
	"github.com/PrayerJournal/streaks"
	"github.com/PrayerJournal/timers"
)

// PlanTemplates are the predefined commitments offered at creation time.
var PlanTemplates = []models.PlanTemplate{
	{Template_ID: "7day", Plan_Name: "7-Day Prayer Starter", Days: 7, Icon: "🌱", Description: "Begin your prayer journey with a simple 7-day commitment."},
	{Template_ID: "21day", Plan_Name: "21-Day Prayer Habit Builder", Days: 21, Icon: "🔁", Description: "Build a lasting prayer habit over three weeks."},
	{Template_ID: "30day", Plan_Name: "30-Day Prayer Warrior Challenge", Days: 30, Icon: "🛡️", Description: "Deepen your prayer life with a month-long challenge."},
	{Template_ID: "40day", Plan_Name: "40-Day Prayer & Fasting Journey", Days: 40, Icon: "🔥", Description: "A transformative journey of prayer and fasting."},
}

const (
	completedCountKey = "prayer-journal-completed-plans"

	// legacyPlanKey held the single-plan model before plans became a
	// collection. It is migrated then removed via the nil-save path.
	legacyPlanKey = "prayer-journal-plan"
)

// StatsSink persists the completed-plan counter remotely. Nil in guest or
// remote-less builds.
type StatsSink interface {
	IncrementCompletedPlans(ctx context.Context, userID int) error
}

// PlanStore manages prayer plans plus the completed-plan counter that
// outlives individual plan deletion.
type PlanStore struct {
	col   *Collection[models.Plan]
	store *localstore.Store
	stats StatsSink
	clock timers.Clock

	mu             sync.Mutex
	userID         int
	completedCount int
}

func NewPlanStore(store *localstore.Store, table Table[models.Plan], stats StatsSink, clock timers.Clock) *PlanStore {
	s := &PlanStore{
		col: NewCollection("prayer-journal-plans", store, table, func(p models.Plan) string {
			return p.Plan_ID
		}),
		store: store,
		stats: stats,
		clock: clock,
	}
	s.store.Load(completedCountKey, &s.completedCount)
	s.migrateLegacyPlan()
	return s
}

// migrateLegacyPlan folds the old single-plan blob into the collection.
// Sentinel objects written by an old delete bug (a plan with no name) are
// dropped rather than migrated.
func (s *PlanStore) migrateLegacyPlan() {
	var legacy models.Plan
	if !s.store.Load(legacyPlanKey, &legacy) {
		return
	}
	if legacy.Plan_Name != "" {
		if legacy.Plan_ID == "" {
			legacy.Plan_ID = uuid.NewString()
		}
		s.col.Add(legacy)
	}
	s.store.Save(legacyPlanKey, nil)
}

// SetOwner is forwarded to the underlying collection by Client.SignIn.
func (s *PlanStore) SetOwner(ctx context.Context, userID int) error {
	s.mu.Lock()
	s.userID = userID
	s.mu.Unlock()
	return s.col.SetOwner(ctx, userID)
}

// Start creates a plan from a template id, or a custom one when templateID
// is empty. A blank custom name defaults to "N-Day Prayer Plan".
func (s *PlanStore) Start(templateID, customName string, customDays int) models.Plan {
	days := customDays
	name := strings.TrimSpace(customName)

	for _, t := range PlanTemplates {
		if t.Template_ID == templateID {
			days = t.Days
			if name == "" {
				name = t.Plan_Name
			}
			break
		}
	}
	if days < 1 {
		days = 7
	}
	if name == "" {
		name = fmt.Sprintf("%d-Day Prayer Plan", days)
	}

	plan := models.Plan{
		Plan_ID:      uuid.NewString(),
		Plan_Name:    name,
		Total_Days:   days,
		Start_Date:   streaks.Today(s.clock.Now()),
		Checked_Days: []string{},
	}
	s.col.Add(plan)
	return plan
}

// CheckInToday marks today prayed on the plan. Checking in twice on the
// same day is a no-op; so is checking in on an already complete plan.
func (s *PlanStore) CheckInToday(id string) bool {
	today := streaks.Today(s.clock.Now())
	checked := false
	s.col.Update(id, func(p models.Plan) models.Plan {
		if p.IsComplete() {
			return p
		}
		for _, d := range p.Checked_Days {
			if d == today {
				return p
			}
		}
		p.Checked_Days = append(p.Checked_Days, today)
		checked = true
		return p
	})
	return checked
}

// Delete removes the plan; a complete plan bumps the persistent counter.
func (s *PlanStore) Delete(id string) {
	plan, ok := s.col.Get(id)
	if !ok {
		return
	}
	if !s.col.Remove(id) {
		return
	}

	if plan.IsComplete() {
		s.mu.Lock()
		s.completedCount++
		count := s.completedCount
		userID := s.userID
		s.mu.Unlock()

		s.store.Save(completedCountKey, count)
		if s.stats != nil && userID != GuestUser {
			go func() {
				if err := s.stats.IncrementCompletedPlans(context.Background(), userID); err != nil {
					log.Println("plans: failed to sync completed count:", err)
				}
			}()
		}
	}
}

func (s *PlanStore) AddNote(id, text, noteType string) bool {
	return s.col.Update(id, func(p models.Plan) models.Plan {
		p.Notes = appendNote(p.Notes, text, noteType, s.clock.Now())
		return p
	})
}

func (s *PlanStore) AddPartner(id, name string) error {
	var dupErr error
	found := s.col.Update(id, func(p models.Plan) models.Plan {
		partners, err := addPartner(p.Partners, strings.TrimSpace(name))
		if err != nil {
			dupErr = err
			return p
		}
		p.Partners = partners
		return p
	})
	if !found {
		return fmt.Errorf("plan %s not found", id)
	}
	return dupErr
}

func (s *PlanStore) LogPartnerPrayed(id, partnerID string) bool {
	return s.col.Update(id, func(p models.Plan) models.Plan {
		p.Partners = logPartnerPrayed(p.Partners, partnerID, s.clock.Now())
		return p
	})
}

func (s *PlanStore) Plans() []models.Plan {
	return s.col.Items()
}

func (s *PlanStore) Get(id string) (models.Plan, bool) {
	return s.col.Get(id)
}

// HasPrayedToday reports whether the plan is checked for today.
func (s *PlanStore) HasPrayedToday(id string) bool {
	plan, ok := s.col.Get(id)
	if !ok {
		return false
	}
	today := streaks.Today(s.clock.Now())
	for _, d := range plan.Checked_Days {
		if d == today {
			return true
		}
	}
	return false
}

// CurrentDayNumber is how far into the plan the calendar says we are,
// clamped to the plan length.
func (s *PlanStore) CurrentDayNumber(plan models.Plan) int {
	start, err := time.Parse(streaks.DateLayout, plan.Start_Date)
	if err != nil {
		return 1
	}
	today, _ := time.Parse(streaks.DateLayout, streaks.Today(s.clock.Now()))

	day := int(today.Sub(start).Hours()/24) + 1
	if day < 1 {
		day = 1
	}
	if day > plan.Total_Days {
		day = plan.Total_Days
	}
	return day
}

// CompletedCount is the number of plans finished and then deleted, across
// the life of the account.
func (s *PlanStore) CompletedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completedCount
}

func (s *PlanStore) Flush() {
	s.col.Flush()
}
