package models

import (
	"encoding/json"
	"time"
)

type Prayer struct {
	Prayer_ID          string         `json:"id"`
	Title              string         `json:"title"`
	Prayer_Description string         `json:"description"`
	Category           string         `json:"category"`
	Scripture          string         `json:"scripture,omitempty"`
	Urgent             bool           `json:"urgent"`
	Answered           bool           `json:"answered"`
	Datetime_Answered  *time.Time     `json:"answeredAt"`
	Testimony_Note     string         `json:"testimonyNote"`
	Prayer_Log         []time.Time    `json:"prayerLog"`
	Sessions           []TimedSession `json:"prayerSessions"`
	Notes              []JournalNote  `json:"notes"`
	Partners           []Partner      `json:"partners"`
	Datetime_Create    time.Time      `json:"createdAt"`
	Datetime_Update    time.Time      `json:"updatedAt"`
}

type PrayerCreate struct {
	Title              string `json:"title"`
	Prayer_Description string `json:"description"`
	Category           string `json:"category"`
	Scripture          string `json:"scripture"`
	Urgent             bool   `json:"urgent"`
}

// PrayerRow is the relational shape of a prayer. The nested journal state
// (log, sessions, notes, partners) rides along as jsonb columns so the row
// can be upserted as a unit by the sync layer.
type PrayerRow struct {
	Prayer_ID          string     `json:"prayerId"`
	User_Profile_ID    int        `json:"userProfileId"`
	Title              string     `json:"title"`
	Prayer_Description string     `json:"prayerDescription"`
	Category           string     `json:"category"`
	Scripture          string     `json:"scripture"`
	Urgent             bool       `json:"urgent"`
	Answered           bool       `json:"answered"`
	Datetime_Answered  *time.Time `json:"datetimeAnswered"`
	Testimony_Note     string     `json:"testimonyNote"`
	Prayer_Log         []byte     `json:"prayerLog"`
	Sessions           []byte     `json:"sessions"`
	Notes              []byte     `json:"notes"`
	Partners           []byte     `json:"partners"`
	Datetime_Create    time.Time  `json:"datetimeCreate"`
	Datetime_Update    time.Time  `json:"datetimeUpdate"`
}

func (p Prayer) ToRow(userID int) (PrayerRow, error) {
	prayerLog, err := json.Marshal(p.Prayer_Log)
	if err != nil {
		return PrayerRow{}, err
	}
	sessions, err := json.Marshal(p.Sessions)
	if err != nil {
		return PrayerRow{}, err
	}
	notes, err := json.Marshal(p.Notes)
	if err != nil {
		return PrayerRow{}, err
	}
	partners, err := json.Marshal(p.Partners)
	if err != nil {
		return PrayerRow{}, err
	}

	return PrayerRow{
		Prayer_ID:          p.Prayer_ID,
		User_Profile_ID:    userID,
		Title:              p.Title,
		Prayer_Description: p.Prayer_Description,
		Category:           p.Category,
		Scripture:          p.Scripture,
		Urgent:             p.Urgent,
		Answered:           p.Answered,
		Datetime_Answered:  p.Datetime_Answered,
		Testimony_Note:     p.Testimony_Note,
		Prayer_Log:         prayerLog,
		Sessions:           sessions,
		Notes:              notes,
		Partners:           partners,
		Datetime_Create:    p.Datetime_Create,
		Datetime_Update:    p.Datetime_Update,
	}, nil
}

func (r PrayerRow) ToPrayer() (Prayer, error) {
	p := Prayer{
		Prayer_ID:          r.Prayer_ID,
		Title:              r.Title,
		Prayer_Description: r.Prayer_Description,
		Category:           r.Category,
		Scripture:          r.Scripture,
		Urgent:             r.Urgent,
		Answered:           r.Answered,
		Datetime_Answered:  r.Datetime_Answered,
		Testimony_Note:     r.Testimony_Note,
		Datetime_Create:    r.Datetime_Create,
		Datetime_Update:    r.Datetime_Update,
	}

	if err := unmarshalBlob(r.Prayer_Log, &p.Prayer_Log); err != nil {
		return Prayer{}, err
	}
	if err := unmarshalBlob(r.Sessions, &p.Sessions); err != nil {
		return Prayer{}, err
	}
	if err := unmarshalBlob(r.Notes, &p.Notes); err != nil {
		return Prayer{}, err
	}
	if err := unmarshalBlob(r.Partners, &p.Partners); err != nil {
		return Prayer{}, err
	}

	return p, nil
}

// unmarshalBlob decodes a jsonb column, treating an empty column as absent.
func unmarshalBlob(blob []byte, dest any) error {
	if len(blob) == 0 {
		return nil
	}
	return json.Unmarshal(blob, dest)
}
