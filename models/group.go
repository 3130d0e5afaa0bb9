package models

import "time"

// Membership roles and statuses. Pending members can see the group exists
// but cannot read posts or logs until approved.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"

	StatusPending  = "pending"
	StatusApproved = "approved"
)

type GroupProfile struct {
	Group_Profile_ID  int       `json:"groupProfileId" goqu:"skipinsert"`
	Group_Name        string    `json:"groupName"`
	Group_Description string    `json:"groupDescription"`
	Focus_Text        string    `json:"focus"`
	Focus_Scripture   string    `json:"scripture"`
	Is_Active         bool      `json:"isActive"`
	Created_By        int       `json:"createdBy"`
	Updated_By        int       `json:"updatedBy"`
	Datetime_Create   time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update   time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

type GroupCreate struct {
	Group_Name        string `json:"groupName"`
	Group_Description string `json:"groupDescription"`
	Display_Name      string `json:"displayName"`
}

type GroupFocusUpdate struct {
	Focus_Text      string `json:"focus"`
	Focus_Scripture string `json:"scripture"`
}

type GroupMember struct {
	Group_Member_ID  int       `json:"groupMemberId" goqu:"skipinsert"`
	Group_Profile_ID int       `json:"groupProfileId"`
	User_Profile_ID  int       `json:"userProfileId"`
	Display_Name     string    `json:"displayName"`
	Member_Role      string    `json:"role"`
	Member_Status    string    `json:"status"`
	Joined_At        time.Time `json:"joinedAt"`
}

// GroupMemberStats decorates a member with time-log aggregates.
type GroupMemberStats struct {
	GroupMember
	Total_Minutes int `json:"totalMinutes"`
	Today_Minutes int `json:"todayMinutes"`
}

type GroupPost struct {
	Group_Post_ID    int       `json:"groupPostId" goqu:"skipinsert"`
	Group_Profile_ID int       `json:"groupProfileId"`
	User_Profile_ID  int       `json:"userProfileId"`
	Display_Name     string    `json:"displayName"`
	Post_Type        string    `json:"type"`
	Content          string    `json:"content"`
	Datetime_Create  time.Time `json:"createdAt" goqu:"skipinsert"`
}

type GroupPostCreate struct {
	Post_Type string `json:"type"`
	Content   string `json:"content"`
}

// GroupTimeLog is a (user, minutes, date) triple; aggregation happens in
// the stats queries, never in the row itself.
type GroupTimeLog struct {
	Group_Log_ID     int       `json:"groupLogId" goqu:"skipinsert"`
	Group_Profile_ID int       `json:"groupProfileId"`
	User_Profile_ID  int       `json:"userProfileId"`
	Minutes          int       `json:"minutes"`
	Session_Date     string    `json:"sessionDate"`
	Datetime_Create  time.Time `json:"loggedAt" goqu:"skipinsert"`
}

type GroupTimeLogCreate struct {
	Minutes int `json:"minutes"`
}

type GroupInvite struct {
	Group_Invite_ID  int       `json:"groupInviteId" goqu:"skipinsert"`
	Group_Profile_ID int       `json:"groupProfileId"`
	Invite_Code      string    `json:"inviteCode"`
	Is_Active        bool      `json:"isActive"`
	Datetime_Expires time.Time `json:"expiresAt"`
	Created_By       int       `json:"createdBy"`
	Updated_By       int       `json:"updatedBy"`
	Datetime_Create  time.Time `json:"datetimeCreate"`
	Datetime_Update  time.Time `json:"datetimeUpdate"`
}

type JoinRequest struct {
	Invite_Code  string `json:"inviteCode"`
	Display_Name string `json:"displayName"`
}
