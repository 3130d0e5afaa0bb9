package models

import "time"

type UserProfile struct {
	User_Profile_ID int       `json:"userProfileId" goqu:"skipinsert"`
	Username        string    `json:"username"`
	Password        string    `json:"-"`
	Email           string    `json:"email"`
	First_Name      string    `json:"firstName"`
	Last_Name       string    `json:"lastName"`
	Datetime_Create time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

type UserSignup struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserStatsRow keeps aggregates that must outlive the rows they were
// derived from, e.g. the completed-plan counter survives plan deletion.
type UserStatsRow struct {
	User_Profile_ID int       `json:"userProfileId"`
	Completed_Plans int       `json:"completedPlans"`
	Datetime_Update time.Time `json:"datetimeUpdate"`
}

// StreakStats is the aggregate the streak endpoint and home screen render.
type StreakStats struct {
	Current_Streak    int  `json:"currentStreak"`
	Longest_Streak    int  `json:"longestStreak"`
	Total_Days_Prayed int  `json:"totalDaysPrayed"`
	Total_Prayers     int  `json:"totalPrayers"`
	Has_Prayed_Today  bool `json:"hasPrayedToday"`
}
