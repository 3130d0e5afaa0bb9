package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrayerJournal/initializers"
	"github.com/PrayerJournal/models"
	"github.com/PrayerJournal/services"
	"github.com/PrayerJournal/streaks"
	"github.com/doug-martin/goqu/v9"
)

func getMembership(userID, groupID int) (models.GroupMember, bool) {
	var membership models.GroupMember
	found, err := initializers.DB.From("group_member").
		Where(
			goqu.C("user_profile_id").Eq(userID),
			goqu.C("group_profile_id").Eq(groupID),
		).
		ScanStruct(&membership)
	if err != nil {
		log.Println("membership lookup failed:", err)
		return models.GroupMember{}, false
	}
	return membership, found
}

// requireApprovedMember aborts unless the current user is an approved
// member of the group, returning the membership when they are.
func requireApprovedMember(c *gin.Context, groupID int) (models.GroupMember, bool) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	membership, found := getMembership(currentUser.User_Profile_ID, groupID)
	if !found || membership.Member_Status != models.StatusApproved {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not an approved member of this group"})
		return models.GroupMember{}, false
	}
	return membership, true
}

func groupIDParam(c *gin.Context) (int, bool) {
	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return 0, false
	}
	return groupID, true
}

// GetUserGroups lists the groups the user belongs to, pending ones
// included so the UI can show "awaiting approval".
func GetUserGroups(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	var groups []models.GroupProfile
	err := initializers.DB.From("group_member").
		Select(
			"group_profile.group_profile_id",
			"group_profile.group_name",
			"group_profile.group_description",
			"group_profile.focus_text",
			"group_profile.focus_scripture",
			"group_profile.is_active",
			"group_profile.created_by",
			"group_profile.updated_by",
			"group_profile.datetime_create",
			"group_profile.datetime_update",
		).
		InnerJoin(
			goqu.T("group_profile"),
			goqu.On(goqu.Ex{"group_member.group_profile_id": goqu.I("group_profile.group_profile_id")}),
		).
		Where(
			goqu.C("user_profile_id").Table("group_member").Eq(currentUser.User_Profile_ID),
			goqu.C("is_active").Table("group_profile").IsTrue(),
		).
		ScanStructs(&groups)
	if err != nil {
		log.Println("Error fetching user groups:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, groups)
}

// CreateGroup makes a group and its creator the first approved admin.
func CreateGroup(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	var body models.GroupCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(body.Group_Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group name is required"})
		return
	}

	group := models.GroupProfile{
		Group_Name:        body.Group_Name,
		Group_Description: body.Group_Description,
		Is_Active:         true,
		Created_By:        currentUser.User_Profile_ID,
		Updated_By:        currentUser.User_Profile_ID,
	}

	var groupID int
	_, err := initializers.DB.Insert("group_profile").
		Rows(group).
		Returning("group_profile_id").
		Executor().
		ScanVal(&groupID)
	if err != nil {
		log.Println("Error creating group:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group", "details": err.Error()})
		return
	}

	displayName := strings.TrimSpace(body.Display_Name)
	if displayName == "" {
		displayName = currentUser.First_Name
	}

	member := models.GroupMember{
		Group_Profile_ID: groupID,
		User_Profile_ID:  currentUser.User_Profile_ID,
		Display_Name:     displayName,
		Member_Role:      models.RoleAdmin,
		Member_Status:    models.StatusApproved,
		Joined_At:        time.Now(),
	}
	if _, err := initializers.DB.Insert("group_member").Rows(member).Executor().Exec(); err != nil {
		log.Println("Error adding creator membership:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group membership", "details": err.Error()})
		return
	}

	group.Group_Profile_ID = groupID
	c.JSON(http.StatusCreated, group)
}

func GetGroup(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireApprovedMember(c, groupID); !ok {
		return
	}

	var group models.GroupProfile
	found, err := initializers.DB.From("group_profile").
		Where(goqu.C("group_profile_id").Eq(groupID), goqu.C("is_active").IsTrue()).
		ScanStruct(&group)
	if err != nil || !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	c.JSON(http.StatusOK, group)
}

// UpdateGroupFocus sets the group's prayer focus and scripture. Admin only.
func UpdateGroupFocus(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}

	membership, ok := requireApprovedMember(c, groupID)
	if !ok {
		return
	}
	if membership.Member_Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only group admins can update the focus"})
		return
	}

	var body models.GroupFocusUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := initializers.DB.Update("group_profile").
		Set(goqu.Record{
			"focus_text":      body.Focus_Text,
			"focus_scripture": body.Focus_Scripture,
			"updated_by":      currentUser.User_Profile_ID,
			"datetime_update": time.Now(),
		}).
		Where(goqu.C("group_profile_id").Eq(groupID)).
		Executor().Exec()
	if err != nil {
		log.Println("Error updating group focus:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update group", "details": err.Error()})
		return
	}

	services.NotifyGroupChange(groupID, "group_profile")
	c.JSON(http.StatusOK, gin.H{"message": "Group focus updated."})
}

// DeleteGroup soft-deletes the group. Admin only.
func DeleteGroup(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}

	membership, ok := requireApprovedMember(c, groupID)
	if !ok {
		return
	}
	if membership.Member_Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only group admins can delete the group"})
		return
	}

	_, err := initializers.DB.Update("group_profile").
		Set(goqu.Record{
			"is_active":       false,
			"updated_by":      currentUser.User_Profile_ID,
			"datetime_update": time.Now(),
		}).
		Where(goqu.C("group_profile_id").Eq(groupID)).
		Executor().Exec()
	if err != nil {
		log.Println("Error deleting group:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete group", "details": err.Error()})
		return
	}

	services.NotifyGroupChange(groupID, "group_profile")
	c.JSON(http.StatusOK, gin.H{"message": "Group deleted."})
}

// LeaveGroup removes the caller's own membership.
func LeaveGroup(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}

	result, err := initializers.DB.Delete("group_member").
		Where(
			goqu.C("group_profile_id").Eq(groupID),
			goqu.C("user_profile_id").Eq(currentUser.User_Profile_ID),
		).
		Executor().Exec()
	if err != nil {
		log.Println("Error leaving group:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave group", "details": err.Error()})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "You are not a member of this group"})
		return
	}

	services.NotifyGroupChange(groupID, "group_member")
	c.JSON(http.StatusOK, gin.H{"message": "Left group."})
}

// GetGroupMembers returns members with their time-log aggregates, sorted
// by total minutes.
func GetGroupMembers(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireApprovedMember(c, groupID); !ok {
		return
	}

	var members []models.GroupMember
	err := initializers.DB.From("group_member").
		Where(goqu.C("group_profile_id").Eq(groupID)).
		Order(goqu.C("joined_at").Asc()).
		ScanStructs(&members)
	if err != nil {
		log.Println("Error fetching group members:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members", "details": err.Error()})
		return
	}

	var logs []models.GroupTimeLog
	err = initializers.DB.From("group_time_log").
		Where(goqu.C("group_profile_id").Eq(groupID)).
		ScanStructs(&logs)
	if err != nil {
		log.Println("Error fetching group logs:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch time logs", "details": err.Error()})
		return
	}

	today := streaks.Today(time.Now())
	stats := make([]models.GroupMemberStats, 0, len(members))
	for _, m := range members {
		ms := models.GroupMemberStats{GroupMember: m}
		for _, l := range logs {
			if l.User_Profile_ID != m.User_Profile_ID {
				continue
			}
			ms.Total_Minutes += l.Minutes
			if l.Session_Date == today {
				ms.Today_Minutes += l.Minutes
			}
		}
		stats = append(stats, ms)
	}

	c.JSON(http.StatusOK, stats)
}

// ApproveMember flips a pending membership to approved. Admin only.
func ApproveMember(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	memberUserID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	membership, ok := requireApprovedMember(c, groupID)
	if !ok {
		return
	}
	if membership.Member_Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only group admins can approve members"})
		return
	}

	result, err := initializers.DB.Update("group_member").
		Set(goqu.Record{"member_status": models.StatusApproved}).
		Where(
			goqu.C("group_profile_id").Eq(groupID),
			goqu.C("user_profile_id").Eq(memberUserID),
			goqu.C("member_status").Eq(models.StatusPending),
		).
		Executor().Exec()
	if err != nil {
		log.Println("Error approving member:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve member", "details": err.Error()})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No pending membership found"})
		return
	}

	services.NotifyGroupChange(groupID, "group_member")
	c.JSON(http.StatusOK, gin.H{"message": "Member approved."})
}

// RemoveMember kicks a member. Admins can remove anyone but themselves;
// use LeaveGroup for that.
func RemoveMember(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	memberUserID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	membership, ok := requireApprovedMember(c, groupID)
	if !ok {
		return
	}
	if membership.Member_Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only group admins can remove members"})
		return
	}
	if memberUserID == currentUser.User_Profile_ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Use the leave endpoint to remove yourself"})
		return
	}

	_, err = initializers.DB.Delete("group_member").
		Where(
			goqu.C("group_profile_id").Eq(groupID),
			goqu.C("user_profile_id").Eq(memberUserID),
		).
		Executor().Exec()
	if err != nil {
		log.Println("Error removing member:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member", "details": err.Error()})
		return
	}

	services.NotifyGroupChange(groupID, "group_member")
	c.JSON(http.StatusOK, gin.H{"message": "Member removed."})
}

// GroupEvents streams change signals for the group over SSE. Each event
// is a bare "groupID:table" hint telling the client which list to refetch.
func GroupEvents(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireApprovedMember(c, groupID); !ok {
		return
	}

	events, cancel := services.SubscribeGroup(groupID)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")

	c.Stream(func(w io.Writer) bool {
		select {
		case payload, open := <-events:
			if !open {
				return false
			}
			c.SSEvent("change", payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func generateInviteCode(groupID int) string {
	randomBytes := make([]byte, 2)
	if _, err := rand.Read(randomBytes); err != nil {
		panic(err)
	}
	return strings.ToUpper(fmt.Sprintf("%04d-%s", groupID, hex.EncodeToString(randomBytes)))
}
