package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrayerJournal/initializers"
	"github.com/PrayerJournal/models"
	"github.com/doug-martin/goqu/v9"
)

// The prayer endpoints serve the synced client: rows are whole prayer
// documents keyed by (prayer_id, user_profile_id), and every query is
// owner-constrained. The server never edits the nested journal state; the
// client owns it and upserts the row as a unit.

func GetUserPrayers(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)
	userID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if currentUser.User_Profile_ID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only view your own prayers"})
		return
	}

	var rows []models.PrayerRow
	err = initializers.DB.From("prayer").
		Where(goqu.C("user_profile_id").Eq(userID)).
		Order(goqu.C("datetime_create").Desc()).
		ScanStructs(&rows)
	if err != nil {
		log.Println("Error fetching user prayers:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayers", "details": err.Error()})
		return
	}

	prayers := make([]models.Prayer, 0, len(rows))
	for _, row := range rows {
		prayer, err := row.ToPrayer()
		if err != nil {
			log.Println("Skipping corrupt prayer row", row.Prayer_ID, ":", err)
			continue
		}
		prayers = append(prayers, prayer)
	}

	c.JSON(http.StatusOK, prayers)
}

func UpsertUserPrayer(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)
	userID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if currentUser.User_Profile_ID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own prayers"})
		return
	}

	var prayer models.Prayer
	if err := c.ShouldBindJSON(&prayer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if prayer.Prayer_ID == "" || prayer.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and title are required"})
		return
	}

	row, err := prayer.ToRow(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer document", "details": err.Error()})
		return
	}
	row.Datetime_Update = time.Now()

	// the update arm only ever touches the caller's own row; a conflict
	// with someone else's prayer id is a no-op, not an overwrite
	result, err := initializers.DB.Insert("prayer").
		Rows(row).
		OnConflict(goqu.DoUpdate("prayer_id", row).
			Where(goqu.I("prayer.user_profile_id").Eq(userID))).
		Executor().Exec()
	if err != nil {
		log.Println("Error upserting prayer:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save prayer", "details": err.Error()})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own prayers"})
		return
	}

	c.JSON(http.StatusOK, prayer)
}

func DeleteUserPrayer(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	prayerID := c.Param("prayer_id")
	if prayerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID"})
		return
	}

	result, err := initializers.DB.Delete("prayer").
		Where(
			goqu.C("prayer_id").Eq(prayerID),
			goqu.C("user_profile_id").Eq(currentUser.User_Profile_ID),
		).
		Executor().Exec()
	if err != nil {
		log.Println("Error deleting prayer:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer", "details": err.Error()})
		return
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prayer deleted."})
}
