package models

import "time"

type Category struct {
	Category_Value string `json:"value"`
	Label          string `json:"label"`
	Color          string `json:"color"`
	Is_Default     bool   `json:"isDefault"`
}

type CategoryRow struct {
	Category_Value  string    `json:"value"`
	User_Profile_ID int       `json:"userProfileId"`
	Label           string    `json:"label"`
	Color           string    `json:"color"`
	Datetime_Create time.Time `json:"datetimeCreate"`
}

func (c Category) ToRow(userID int) (CategoryRow, error) {
	return CategoryRow{
		Category_Value:  c.Category_Value,
		User_Profile_ID: userID,
		Label:           c.Label,
		Color:           c.Color,
		Datetime_Create: time.Now(),
	}, nil
}

func (r CategoryRow) ToCategory() (Category, error) {
	return Category{
		Category_Value: r.Category_Value,
		Label:          r.Label,
		Color:          r.Color,
	}, nil
}

// DefaultCategories are built in and never persisted per user.
var DefaultCategories = []Category{
	{Category_Value: "personal", Label: "Personal", Color: "#8B5CF6", Is_Default: true},
	{Category_Value: "family", Label: "Family", Color: "#A855F7", Is_Default: true},
	{Category_Value: "health", Label: "Health", Color: "#C084FC", Is_Default: true},
	{Category_Value: "gratitude", Label: "Gratitude", Color: "#D946EF", Is_Default: true},
	{Category_Value: "guidance", Label: "Guidance", Color: "#7C3AED", Is_Default: true},
	{Category_Value: "others", Label: "Others", Color: "#9333EA", Is_Default: true},
}
