package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrayerJournal/initializers"
	"github.com/PrayerJournal/models"
	"github.com/PrayerJournal/services"
	"github.com/doug-martin/goqu/v9"
)

const inviteValidity = 7 * 24 * time.Hour

type inviteRequest struct {
	Email string `json:"email"`
}

// CreateGroupInvite mints a single-use invite code for the group and,
// when an email is supplied, mails it to the invitee.
func CreateGroupInvite(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	membership, ok := requireApprovedMember(c, groupID)
	if !ok {
		return
	}

	// body is optional; without an email the code is just returned
	var body inviteRequest
	_ = c.ShouldBindJSON(&body)

	now := time.Now()
	invite := models.GroupInvite{
		Group_Profile_ID: groupID,
		Invite_Code:      generateInviteCode(groupID),
		Is_Active:        true,
		Datetime_Expires: now.Add(inviteValidity),
		Created_By:       currentUser.User_Profile_ID,
		Updated_By:       currentUser.User_Profile_ID,
		Datetime_Create:  now,
		Datetime_Update:  now,
	}

	if _, err := initializers.DB.Insert("group_invite").Rows(invite).Executor().Exec(); err != nil {
		log.Println("Error creating invite:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invite", "details": err.Error()})
		return
	}

	if body.Email != "" {
		var group models.GroupProfile
		if found, err := initializers.DB.From("group_profile").
			Where(goqu.C("group_profile_id").Eq(groupID)).
			ScanStruct(&group); err == nil && found {
			go func() {
				err := services.GetEmailService().SendGroupInviteEmail(
					body.Email, membership.Display_Name, group.Group_Name, invite.Invite_Code)
				if err != nil {
					log.Println("invite email failed:", err)
				}
			}()
		}
	}

	c.JSON(http.StatusCreated, invite)
}

// JoinGroup redeems an invite code. The code is deactivated on use and the
// new membership starts pending until an admin approves it.
func JoinGroup(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	var body models.JoinRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(body.Invite_Code))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "inviteCode is required"})
		return
	}

	var invite models.GroupInvite
	found, err := initializers.DB.From("group_invite").
		Where(goqu.C("invite_code").Eq(code), goqu.C("is_active").IsTrue()).
		ScanStruct(&invite)
	if err != nil {
		log.Println("Error looking up invite:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up invite", "details": err.Error()})
		return
	}
	if !found || time.Now().After(invite.Datetime_Expires) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invite code is invalid or expired"})
		return
	}

	if _, already := getMembership(currentUser.User_Profile_ID, invite.Group_Profile_ID); already {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You are already a member of this group"})
		return
	}

	displayName := strings.TrimSpace(body.Display_Name)
	if displayName == "" {
		displayName = currentUser.First_Name
	}

	member := models.GroupMember{
		Group_Profile_ID: invite.Group_Profile_ID,
		User_Profile_ID:  currentUser.User_Profile_ID,
		Display_Name:     displayName,
		Member_Role:      models.RoleMember,
		Member_Status:    models.StatusPending,
		Joined_At:        time.Now(),
	}
	if _, err := initializers.DB.Insert("group_member").Rows(member).Executor().Exec(); err != nil {
		log.Println("Error joining group:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join group", "details": err.Error()})
		return
	}

	// one redemption per code
	if _, err := initializers.DB.Update("group_invite").
		Set(goqu.Record{
			"is_active":       false,
			"updated_by":      currentUser.User_Profile_ID,
			"datetime_update": time.Now(),
		}).
		Where(goqu.C("group_invite_id").Eq(invite.Group_Invite_ID)).
		Executor().Exec(); err != nil {
		log.Println("Error deactivating invite:", err)
	}

	services.NotifyGroupChange(invite.Group_Profile_ID, "group_member")
	c.JSON(http.StatusOK, gin.H{
		"message":        "Join request submitted. A group admin must approve it.",
		"groupProfileId": invite.Group_Profile_ID,
		"status":         models.StatusPending,
	})
}
