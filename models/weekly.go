package models

import "time"

// WeeklyProject is the rotating prayer focus shown on the home screen.
// There is only ever one per user; updates overwrite it in place.
type WeeklyProject struct {
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Last_Updated *time.Time `json:"lastUpdated"`
}

type WeeklyProjectRow struct {
	User_Profile_ID int       `json:"userProfileId"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Datetime_Update time.Time `json:"datetimeUpdate"`
}
