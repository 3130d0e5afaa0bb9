package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PrayerJournal/initializers"
	"github.com/PrayerJournal/models"
	"github.com/PrayerJournal/services"
	"github.com/doug-martin/goqu/v9"
)

var validPostTypes = map[string]bool{
	"request":       true,
	"testimony":     true,
	"encouragement": true,
}

// GetGroupPosts lists the group's feed, newest first.
func GetGroupPosts(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireApprovedMember(c, groupID); !ok {
		return
	}

	var posts []models.GroupPost
	err := initializers.DB.From("group_post").
		Where(goqu.C("group_profile_id").Eq(groupID)).
		Order(goqu.C("datetime_create").Desc()).
		ScanStructs(&posts)
	if err != nil {
		log.Println("Error fetching group posts:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// CreateGroupPost writes a post and fans a push notification out to the
// other approved members.
func CreateGroupPost(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	membership, ok := requireApprovedMember(c, groupID)
	if !ok {
		return
	}

	var body models.GroupPostCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(body.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}
	if !validPostTypes[body.Post_Type] {
		body.Post_Type = "request"
	}

	post := models.GroupPost{
		Group_Profile_ID: groupID,
		User_Profile_ID:  currentUser.User_Profile_ID,
		Display_Name:     membership.Display_Name,
		Post_Type:        body.Post_Type,
		Content:          body.Content,
	}

	var postID int
	_, err := initializers.DB.Insert("group_post").
		Rows(post).
		Returning("group_post_id").
		Executor().
		ScanVal(&postID)
	if err != nil {
		log.Println("Error creating post:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post", "details": err.Error()})
		return
	}
	post.Group_Post_ID = postID

	go notifyGroupPost(groupID, currentUser.User_Profile_ID, post)
	services.NotifyGroupChange(groupID, "group_post")

	c.JSON(http.StatusCreated, post)
}

func notifyGroupPost(groupID, authorID int, post models.GroupPost) {
	push := services.GetPushNotificationService()
	if push == nil {
		return
	}

	var members []models.GroupMember
	err := initializers.DB.From("group_member").
		Where(
			goqu.C("group_profile_id").Eq(groupID),
			goqu.C("member_status").Eq(models.StatusApproved),
			goqu.C("user_profile_id").Neq(authorID),
		).
		ScanStructs(&members)
	if err != nil {
		log.Println("post fanout member query failed:", err)
		return
	}

	title := fmt.Sprintf("New %s from %s", post.Post_Type, post.Display_Name)
	body := post.Content
	if len(body) > 120 {
		body = body[:117] + "..."
	}

	userIDs := make([]int, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.User_Profile_ID)
	}
	push.SendNotificationToUsers(userIDs, services.NotificationPayload{
		Title: title,
		Body:  body,
		Data: map[string]string{
			"kind":           "groupPost",
			"groupProfileId": strconv.Itoa(groupID),
		},
	})
}

// DeleteGroupPost removes a post. Authors can delete their own posts;
// admins can delete any.
func DeleteGroupPost(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	postID, err := strconv.Atoi(c.Param("group_post_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	membership, ok := requireApprovedMember(c, groupID)
	if !ok {
		return
	}

	where := []goqu.Expression{
		goqu.C("group_post_id").Eq(postID),
		goqu.C("group_profile_id").Eq(groupID),
	}
	if membership.Member_Role != models.RoleAdmin {
		where = append(where, goqu.C("user_profile_id").Eq(currentUser.User_Profile_ID))
	}

	result, err := initializers.DB.Delete("group_post").
		Where(where...).
		Executor().Exec()
	if err != nil {
		log.Println("Error deleting post:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post", "details": err.Error()})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	services.NotifyGroupChange(groupID, "group_post")
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted."})
}
