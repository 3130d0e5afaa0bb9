package models

import "time"

// Settings is the flat user preference record. Absent fields take defaults
// via DefaultSettings; callers never see a zero-value Settings.
type Settings struct {
	Theme                 string `json:"theme"`
	Font_Size             string `json:"fontSize"`
	Show_Streak           bool   `json:"showStreak"`
	Show_Neglected        bool   `json:"showNeglected"`
	Show_Weekly_Focus     bool   `json:"showWeeklyFocusOnHome"`
	Notifications_Enabled bool   `json:"notificationsEnabled"`
	Bible_Translation     string `json:"bibleTranslation"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:             "dark",
		Font_Size:         "medium",
		Show_Streak:       true,
		Show_Neglected:    true,
		Bible_Translation: "NIV",
	}
}

type SettingsRow struct {
	User_Profile_ID int       `json:"userProfileId"`
	Settings_Doc    []byte    `json:"settings"`
	Datetime_Update time.Time `json:"datetimeUpdate"`
}

// ReminderTime is one recurring local alert slot.
type ReminderTime struct {
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Label  string `json:"label"`
}

type ReminderSettings struct {
	Enabled bool           `json:"enabled"`
	Times   []ReminderTime `json:"times"`
}

func DefaultReminderSettings() ReminderSettings {
	return ReminderSettings{
		Enabled: false,
		Times:   []ReminderTime{{Hour: 7, Minute: 0, Label: "Morning Prayer"}},
	}
}
