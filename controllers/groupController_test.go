package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayerJournal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memberRows(members ...models.GroupMember) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"group_member_id", "group_profile_id", "user_profile_id",
		"display_name", "member_role", "member_status", "joined_at",
	})
	for _, m := range members {
		rows.AddRow(m.Group_Member_ID, m.Group_Profile_ID, m.User_Profile_ID,
			m.Display_Name, m.Member_Role, m.Member_Status, m.Joined_At)
	}
	return rows
}

func approvedMember(userID, groupID int, role string) models.GroupMember {
	return models.GroupMember{
		Group_Member_ID:  1,
		Group_Profile_ID: groupID,
		User_Profile_ID:  userID,
		Display_Name:     "Test",
		Member_Role:      role,
		Member_Status:    models.StatusApproved,
		Joined_At:        time.Now(),
	}
}

func TestGetGroup_InvalidID(t *testing.T) {
	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Params = gin.Params{{Key: "group_profile_id", Value: "abc"}}

	GetGroup(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetGroupPosts_PendingMemberForbidden(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	pending := approvedMember(1, 5, models.RoleMember)
	pending.Member_Status = models.StatusPending
	mock.ExpectQuery("SELECT (.+) FROM \"group_member\"").
		WillReturnRows(memberRows(pending))

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Params = gin.Params{{Key: "group_profile_id", Value: "5"}}

	GetGroupPosts(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGroupPosts_NonMemberForbidden(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM \"group_member\"").
		WillReturnRows(memberRows())

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Params = gin.Params{{Key: "group_profile_id", Value: "5"}}

	GetGroupPosts(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateGroupFocus_MemberForbidden(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM \"group_member\"").
		WillReturnRows(memberRows(approvedMember(1, 5, models.RoleMember)))

	body, err := json.Marshal(models.GroupFocusUpdate{Focus_Text: "Pray for healing"})
	require.NoError(t, err)

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Params = gin.Params{{Key: "group_profile_id", Value: "5"}}
	c.Request = httptest.NewRequest("PATCH", "/groups/5/focus", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	UpdateGroupFocus(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJoinGroup_InvalidCode(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM \"group_invite\"").
		WillReturnRows(sqlmock.NewRows([]string{
			"group_invite_id", "group_profile_id", "invite_code", "is_active",
			"datetime_expires", "created_by", "updated_by",
		}))

	body, err := json.Marshal(models.JoinRequest{Invite_Code: "0005-BEEF"})
	require.NoError(t, err)

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Request = httptest.NewRequest("POST", "/groups/join", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	JoinGroup(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJoinGroup_ExpiredCode(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	expired := sqlmock.NewRows([]string{
		"group_invite_id", "group_profile_id", "invite_code", "is_active",
		"datetime_expires", "created_by", "updated_by",
	}).AddRow(9, 5, "0005-BEEF", true, time.Now().Add(-time.Hour), 2, 2)
	mock.ExpectQuery("SELECT (.+) FROM \"group_invite\"").
		WillReturnRows(expired)

	body, err := json.Marshal(models.JoinRequest{Invite_Code: "0005-beef"})
	require.NoError(t, err)

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Request = httptest.NewRequest("POST", "/groups/join", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	JoinGroup(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateInviteCode(t *testing.T) {
	code := generateInviteCode(42)

	assert.Len(t, code, 9)
	assert.Equal(t, "0042-", code[:5])
	assert.NotEqual(t, generateInviteCode(42), generateInviteCode(42))
}
