package models

import "time"

// CommunityMember is a person the user prays with outside any shared group,
// tracked entirely within the user's own data.
type CommunityMember struct {
	Member_ID string    `json:"id"`
	Name      string    `json:"name"`
	Joined_At time.Time `json:"joinedAt"`
}

// CommunitySession is one logged stretch of prayer by a community member.
type CommunitySession struct {
	Session_ID   string    `json:"id"`
	Member_ID    string    `json:"memberId"`
	Minutes      int       `json:"minutes"`
	Session_Date string    `json:"date"`
	Logged_At    time.Time `json:"loggedAt"`
}

// MemberStats is a CommunityMember decorated with session aggregates.
type MemberStats struct {
	CommunityMember
	Total_Minutes int               `json:"totalMinutes"`
	Today_Minutes int               `json:"todayMinutes"`
	Session_Count int               `json:"sessionCount"`
	Last_Session  *CommunitySession `json:"lastSession"`
}

type CommunityMemberRow struct {
	Member_ID       string    `json:"memberId"`
	User_Profile_ID int       `json:"userProfileId"`
	Member_Name     string    `json:"memberName"`
	Joined_At       time.Time `json:"joinedAt"`
}

func (m CommunityMember) ToRow(userID int) (CommunityMemberRow, error) {
	return CommunityMemberRow{
		Member_ID:       m.Member_ID,
		User_Profile_ID: userID,
		Member_Name:     m.Name,
		Joined_At:       m.Joined_At,
	}, nil
}

func (r CommunityMemberRow) ToMember() (CommunityMember, error) {
	return CommunityMember{
		Member_ID: r.Member_ID,
		Name:      r.Member_Name,
		Joined_At: r.Joined_At,
	}, nil
}

type CommunitySessionRow struct {
	Session_ID      string    `json:"sessionId"`
	User_Profile_ID int       `json:"userProfileId"`
	Member_ID       string    `json:"memberId"`
	Minutes         int       `json:"minutes"`
	Session_Date    string    `json:"sessionDate"`
	Logged_At       time.Time `json:"loggedAt"`
}

func (s CommunitySession) ToRow(userID int) (CommunitySessionRow, error) {
	return CommunitySessionRow{
		Session_ID:      s.Session_ID,
		User_Profile_ID: userID,
		Member_ID:       s.Member_ID,
		Minutes:         s.Minutes,
		Session_Date:    s.Session_Date,
		Logged_At:       s.Logged_At,
	}, nil
}

func (r CommunitySessionRow) ToSession() (CommunitySession, error) {
	return CommunitySession{
		Session_ID:   r.Session_ID,
		Member_ID:    r.Member_ID,
		Minutes:      r.Minutes,
		Session_Date: r.Session_Date,
		Logged_At:    r.Logged_At,
	}, nil
}

// IntercessionRequest is a shared burden others can pray over once each.
type IntercessionRequest struct {
	Request_ID   string    `json:"id"`
	Burden       string    `json:"burden"`
	Prayer_Count int       `json:"prayerCount"`
	Has_Prayed   bool      `json:"hasPrayed"`
	Created_At   time.Time `json:"createdAt"`
}

type IntercessionRequestRow struct {
	Request_ID      string    `json:"requestId"`
	User_Profile_ID int       `json:"userProfileId"`
	Burden          string    `json:"burden"`
	Prayer_Count    int       `json:"prayerCount"`
	Has_Prayed      bool      `json:"hasPrayed"`
	Created_At      time.Time `json:"createdAt"`
}

func (q IntercessionRequest) ToRow(userID int) (IntercessionRequestRow, error) {
	return IntercessionRequestRow{
		Request_ID:      q.Request_ID,
		User_Profile_ID: userID,
		Burden:          q.Burden,
		Prayer_Count:    q.Prayer_Count,
		Has_Prayed:      q.Has_Prayed,
		Created_At:      q.Created_At,
	}, nil
}

func (r IntercessionRequestRow) ToRequest() (IntercessionRequest, error) {
	return IntercessionRequest{
		Request_ID:   r.Request_ID,
		Burden:       r.Burden,
		Prayer_Count: r.Prayer_Count,
		Has_Prayed:   r.Has_Prayed,
		Created_At:   r.Created_At,
	}, nil
}
