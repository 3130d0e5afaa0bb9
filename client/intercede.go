package client

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/PrayerJournal/localstore"
	"github.com/PrayerJournal/models"
	"github.com/PrayerJournal/timers"
)

// IntercedeStore holds intercession requests: burdens the user lifts up
// for others. Each request counts prayers but latches after the user has
// prayed it once.
type IntercedeStore struct {
	col   *Collection[models.IntercessionRequest]
	clock timers.Clock
}

func NewIntercedeStore(store *localstore.Store, table Table[models.IntercessionRequest], clock timers.Clock) *IntercedeStore {
	return &IntercedeStore{
		col: NewCollection("prayer-journal-intercede", store, table, func(r models.IntercessionRequest) string {
			return r.Request_ID
		}),
		clock: clock,
	}
}

func (s *IntercedeStore) Add(burden string) (models.IntercessionRequest, error) {
	burden = strings.TrimSpace(burden)
	if burden == "" {
		return models.IntercessionRequest{}, errors.New("burden text is required")
	}

	req := models.IntercessionRequest{
		Request_ID: uuid.NewString(),
		Burden:     burden,
		Created_At: s.clock.Now(),
	}
	s.col.Add(req)
	return req, nil
}

// Pray increments the request's counter, once per user.
func (s *IntercedeStore) Pray(id string) bool {
	prayed := false
	s.col.Update(id, func(r models.IntercessionRequest) models.IntercessionRequest {
		if r.Has_Prayed {
			return r
		}
		r.Prayer_Count++
		r.Has_Prayed = true
		prayed = true
		return r
	})
	return prayed
}

func (s *IntercedeStore) Delete(id string) bool {
	return s.col.Remove(id)
}

func (s *IntercedeStore) Requests() []models.IntercessionRequest {
	return s.col.Items()
}
