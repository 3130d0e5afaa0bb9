package client

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PrayerJournal/models"
)

// Prayers and plans share the same partner and note sub-shapes; these pure
// helpers are the single place either gets mutated. None of them writes
// through the input slice: each returns a rebuilt slice with the touched
// element copied, so a caller holding a pre-mutation snapshot of the
// enclosing prayer still sees the old state after the call.

var ErrDuplicatePartner = errors.New("a partner with that name already exists")

func appendNote(notes []models.JournalNote, text, noteType string, now time.Time) []models.JournalNote {
	if noteType == "" {
		noteType = models.NoteUpdate
	}
	return append(notes, models.JournalNote{
		Note_ID:   uuid.NewString(),
		Text:      text,
		Note_Type: noteType,
		Datetime:  now,
	})
}

func removeNote(notes []models.JournalNote, noteID string) []models.JournalNote {
	out := make([]models.JournalNote, 0, len(notes))
	for _, n := range notes {
		if n.Note_ID != noteID {
			out = append(out, n)
		}
	}
	return out
}

func addPartner(partners []models.Partner, name string) ([]models.Partner, error) {
	for _, pt := range partners {
		if strings.EqualFold(pt.Name, name) {
			return partners, ErrDuplicatePartner
		}
	}
	return append(partners, models.Partner{
		Partner_ID: uuid.NewString(),
		Name:       name,
		Prayer_Log: []time.Time{},
	}), nil
}

func removePartner(partners []models.Partner, partnerID string) []models.Partner {
	out := make([]models.Partner, 0, len(partners))
	for _, pt := range partners {
		if pt.Partner_ID != partnerID {
			out = append(out, pt)
		}
	}
	return out
}

func logPartnerPrayed(partners []models.Partner, partnerID string, now time.Time) []models.Partner {
	out := make([]models.Partner, len(partners))
	for i, pt := range partners {
		if pt.Partner_ID == partnerID {
			pt.Prayer_Log = append(append([]time.Time(nil), pt.Prayer_Log...), now)
		}
		out[i] = pt
	}
	return out
}

func undoPartnerPrayed(partners []models.Partner, partnerID string) []models.Partner {
	out := make([]models.Partner, len(partners))
	for i, pt := range partners {
		if pt.Partner_ID == partnerID && len(pt.Prayer_Log) > 0 {
			pt.Prayer_Log = pt.Prayer_Log[:len(pt.Prayer_Log)-1]
		}
		out[i] = pt
	}
	return out
}

func addPartnerSession(partners []models.Partner, partnerID string, session models.TimedSession) []models.Partner {
	out := make([]models.Partner, len(partners))
	for i, pt := range partners {
		if pt.Partner_ID == partnerID {
			pt.Sessions = append(append([]models.TimedSession(nil), pt.Sessions...), session)
		}
		out[i] = pt
	}
	return out
}
