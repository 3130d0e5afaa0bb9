package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrayerJournal/initializers"
	"github.com/PrayerJournal/models"
	"github.com/PrayerJournal/services"
	"github.com/PrayerJournal/streaks"
	"github.com/doug-martin/goqu/v9"
)

// GetGroupTimeLogs returns the raw log rows, newest first. Aggregates live
// on the members endpoint.
func GetGroupTimeLogs(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireApprovedMember(c, groupID); !ok {
		return
	}

	var logs []models.GroupTimeLog
	err := initializers.DB.From("group_time_log").
		Where(goqu.C("group_profile_id").Eq(groupID)).
		Order(goqu.C("datetime_create").Desc()).
		ScanStructs(&logs)
	if err != nil {
		log.Println("Error fetching time logs:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch time logs", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, logs)
}

// CreateGroupTimeLog records prayer minutes for today. Minutes are floored
// at one so a logged session always counts.
func CreateGroupTimeLog(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireApprovedMember(c, groupID); !ok {
		return
	}

	var body models.GroupTimeLogCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Minutes < 1 {
		body.Minutes = 1
	}

	entry := models.GroupTimeLog{
		Group_Profile_ID: groupID,
		User_Profile_ID:  currentUser.User_Profile_ID,
		Minutes:          body.Minutes,
		Session_Date:     streaks.Today(time.Now()),
	}

	var logID int
	_, err := initializers.DB.Insert("group_time_log").
		Rows(entry).
		Returning("group_log_id").
		Executor().
		ScanVal(&logID)
	if err != nil {
		log.Println("Error creating time log:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log time", "details": err.Error()})
		return
	}
	entry.Group_Log_ID = logID

	services.NotifyGroupChange(groupID, "group_time_log")
	c.JSON(http.StatusCreated, entry)
}
