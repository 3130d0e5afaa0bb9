package client

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/PrayerJournal/localstore"
	"github.com/PrayerJournal/models"
	"github.com/PrayerJournal/streaks"
	"github.com/PrayerJournal/timers"
)

// CommunityStore tracks the people the user prays with and their logged
// minutes. This is personal data (unlike shared groups): every member and
// session row belongs to the current user alone.
type CommunityStore struct {
	members  *Collection[models.CommunityMember]
	sessions *Collection[models.CommunitySession]
	clock    timers.Clock
}

func NewCommunityStore(store *localstore.Store, members Table[models.CommunityMember], sessions Table[models.CommunitySession], clock timers.Clock) *CommunityStore {
	return &CommunityStore{
		members: NewCollection("prayer-journal-community-members", store, members, func(m models.CommunityMember) string {
			return m.Member_ID
		}),
		sessions: NewCollection("prayer-journal-community-sessions", store, sessions, func(s models.CommunitySession) string {
			return s.Session_ID
		}),
		clock: clock,
	}
}

func (s *CommunityStore) AddMember(name string) (models.CommunityMember, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.CommunityMember{}, errors.New("member name is required")
	}

	member := models.CommunityMember{
		Member_ID: uuid.NewString(),
		Name:      name,
		Joined_At: s.clock.Now(),
	}
	s.members.Append(member)
	return member, nil
}

// RemoveMember deletes the member and every session they logged.
func (s *CommunityStore) RemoveMember(memberID string) bool {
	if !s.members.Remove(memberID) {
		return false
	}
	for _, sess := range s.sessions.Items() {
		if sess.Member_ID == memberID {
			s.sessions.Remove(sess.Session_ID)
		}
	}
	return true
}

// LogSession records minutes prayed by a member today. Minutes are floored
// at one.
func (s *CommunityStore) LogSession(memberID string, minutes int) models.CommunitySession {
	if minutes < 1 {
		minutes = 1
	}
	now := s.clock.Now()
	session := models.CommunitySession{
		Session_ID:   uuid.NewString(),
		Member_ID:    memberID,
		Minutes:      minutes,
		Session_Date: streaks.Today(now),
		Logged_At:    now,
	}
	s.sessions.Append(session)
	return session
}

func (s *CommunityStore) DeleteSession(sessionID string) bool {
	return s.sessions.Remove(sessionID)
}

func (s *CommunityStore) Members() []models.CommunityMember {
	return s.members.Items()
}

func (s *CommunityStore) Sessions() []models.CommunitySession {
	return s.sessions.Items()
}

// MemberStats aggregates each member's sessions, sorted by total minutes
// descending.
func (s *CommunityStore) MemberStats() []models.MemberStats {
	today := streaks.Today(s.clock.Now())
	sessions := s.sessions.Items()

	var stats []models.MemberStats
	for _, m := range s.members.Items() {
		ms := models.MemberStats{CommunityMember: m}
		for i, sess := range sessions {
			if sess.Member_ID != m.Member_ID {
				continue
			}
			ms.Total_Minutes += sess.Minutes
			ms.Session_Count++
			if sess.Session_Date == today {
				ms.Today_Minutes += sess.Minutes
			}
			if ms.Last_Session == nil || sess.Logged_At.After(ms.Last_Session.Logged_At) {
				ms.Last_Session = &sessions[i]
			}
		}
		stats = append(stats, ms)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Total_Minutes > stats[j].Total_Minutes
	})
	return stats
}

// TotalMinutes is the all-time minute count across every member.
func (s *CommunityStore) TotalMinutes() int {
	total := 0
	for _, sess := range s.sessions.Items() {
		total += sess.Minutes
	}
	return total
}

// TodayMinutes is the minute count logged today across every member.
func (s *CommunityStore) TodayMinutes() int {
	today := streaks.Today(s.clock.Now())
	total := 0
	for _, sess := range s.sessions.Items() {
		if sess.Session_Date == today {
			total += sess.Minutes
		}
	}
	return total
}
