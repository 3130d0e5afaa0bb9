package models

import "time"

type PushToken struct {
	Push_Token_ID   int       `json:"pushTokenId" goqu:"skipinsert"`
	User_Profile_ID int       `json:"userProfileId"`
	Push_Token      string    `json:"pushToken"`
	Platform        string    `json:"platform"`
	Datetime_Create time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

type PushTokenCreate struct {
	Push_Token string `json:"pushToken"`
	Platform   string `json:"platform"`
}
