package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrayerJournal/initializers"
	"github.com/PrayerJournal/models"
	"github.com/PrayerJournal/services"
	"github.com/doug-martin/goqu/v9"
)

func settingsOwner(c *gin.Context) (int, bool) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)
	userID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	if currentUser.User_Profile_ID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only access your own settings"})
		return 0, false
	}
	return userID, true
}

// GetUserSettings returns the stored preference doc merged over defaults,
// so new preference fields pick up their default on old rows.
func GetUserSettings(c *gin.Context) {
	userID, ok := settingsOwner(c)
	if !ok {
		return
	}

	settings := models.DefaultSettings()

	var row models.SettingsRow
	found, err := initializers.DB.From("user_settings").
		Where(goqu.C("user_profile_id").Eq(userID)).
		ScanStruct(&row)
	if err != nil {
		log.Println("Error fetching settings:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings", "details": err.Error()})
		return
	}
	if found && len(row.Settings_Doc) > 0 {
		if err := json.Unmarshal(row.Settings_Doc, &settings); err != nil {
			log.Println("Ignoring corrupt settings doc for user", userID, ":", err)
			settings = models.DefaultSettings()
		}
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateUserSettings replaces the whole preference doc.
func UpdateUserSettings(c *gin.Context) {
	userID, ok := settingsOwner(c)
	if !ok {
		return
	}

	settings := models.DefaultSettings()
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := json.Marshal(settings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode settings"})
		return
	}

	row := models.SettingsRow{
		User_Profile_ID: userID,
		Settings_Doc:    doc,
		Datetime_Update: time.Now(),
	}
	_, err = initializers.DB.Insert("user_settings").
		Rows(row).
		OnConflict(goqu.DoUpdate("user_profile_id", row)).
		Executor().Exec()
	if err != nil {
		log.Println("Error saving settings:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}

func GetUserReminders(c *gin.Context) {
	userID, ok := settingsOwner(c)
	if !ok {
		return
	}

	reminders, err := services.UserReminders(userID)
	if err != nil {
		log.Println("Error fetching reminders:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reminders", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, reminders)
}

func UpdateUserReminders(c *gin.Context) {
	userID, ok := settingsOwner(c)
	if !ok {
		return
	}

	var reminders models.ReminderSettings
	if err := c.ShouldBindJSON(&reminders); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, t := range reminders.Times {
		if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reminder times must use a 24-hour clock"})
			return
		}
	}

	if err := services.ReplaceUserReminders(userID, reminders); err != nil {
		log.Println("Error saving reminders:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reminders", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, reminders)
}
