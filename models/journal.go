package models

import "time"

// Journal note types. Anything else is treated as a plain update by the UI.
const (
	NoteUpdate       = "update"
	NoteWord         = "word"
	NoteScripture    = "scripture"
	NoteConfirmation = "confirmation"
	NoteVision       = "vision"
)

// JournalNote is a dated note attached to a prayer or a plan.
type JournalNote struct {
	Note_ID   string    `json:"id"`
	Text      string    `json:"text"`
	Note_Type string    `json:"type"`
	Datetime  time.Time `json:"createdAt"`
}

// TimedSession is one finished timer run, in whole seconds.
type TimedSession struct {
	Started_At time.Time `json:"startedAt"`
	Duration   int       `json:"duration"`
}

// Partner is a named person praying alongside the user for one prayer or
// plan. Partners keep their own log and sessions, independent of the parent's.
type Partner struct {
	Partner_ID string         `json:"id"`
	Name       string         `json:"name"`
	Prayer_Log []time.Time    `json:"prayerLog"`
	Sessions   []TimedSession `json:"prayerSessions,omitempty"`
}
