package models

import (
	"encoding/json"
	"time"
)

// Plan is a day-bounded prayer commitment. Checked_Days holds YYYY-MM-DD
// date strings; a plan is complete once len(Checked_Days) >= Total_Days.
type Plan struct {
	Plan_ID      string        `json:"id"`
	Plan_Name    string        `json:"name"`
	Total_Days   int           `json:"totalDays"`
	Start_Date   string        `json:"startDate"`
	Checked_Days []string      `json:"checkedDays"`
	Notes        []JournalNote `json:"notes,omitempty"`
	Partners     []Partner     `json:"partners,omitempty"`
}

func (p Plan) IsComplete() bool {
	return len(p.Checked_Days) >= p.Total_Days
}

// PlanTemplate is a predefined plan shape offered at creation time.
type PlanTemplate struct {
	Template_ID string `json:"id"`
	Plan_Name   string `json:"name"`
	Days        int    `json:"days"`
	Icon        string `json:"icon"`
	Description string `json:"desc"`
}

type PlanRow struct {
	Plan_ID         string    `json:"planId"`
	User_Profile_ID int       `json:"userProfileId"`
	Plan_Name       string    `json:"planName"`
	Total_Days      int       `json:"totalDays"`
	Start_Date      string    `json:"startDate"`
	Checked_Days    []byte    `json:"checkedDays"`
	Notes           []byte    `json:"notes"`
	Partners        []byte    `json:"partners"`
	Datetime_Create time.Time `json:"datetimeCreate"`
	Datetime_Update time.Time `json:"datetimeUpdate"`
}

func (p Plan) ToRow(userID int) (PlanRow, error) {
	checked, err := json.Marshal(p.Checked_Days)
	if err != nil {
		return PlanRow{}, err
	}
	notes, err := json.Marshal(p.Notes)
	if err != nil {
		return PlanRow{}, err
	}
	partners, err := json.Marshal(p.Partners)
	if err != nil {
		return PlanRow{}, err
	}

	return PlanRow{
		Plan_ID:         p.Plan_ID,
		User_Profile_ID: userID,
		Plan_Name:       p.Plan_Name,
		Total_Days:      p.Total_Days,
		Start_Date:      p.Start_Date,
		Checked_Days:    checked,
		Notes:           notes,
		Partners:        partners,
		Datetime_Create: time.Now(),
		Datetime_Update: time.Now(),
	}, nil
}

func (r PlanRow) ToPlan() (Plan, error) {
	p := Plan{
		Plan_ID:    r.Plan_ID,
		Plan_Name:  r.Plan_Name,
		Total_Days: r.Total_Days,
		Start_Date: r.Start_Date,
	}
	if err := unmarshalBlob(r.Checked_Days, &p.Checked_Days); err != nil {
		return Plan{}, err
	}
	if err := unmarshalBlob(r.Notes, &p.Notes); err != nil {
		return Plan{}, err
	}
	if err := unmarshalBlob(r.Partners, &p.Partners); err != nil {
		return Plan{}, err
	}
	return p, nil
}
