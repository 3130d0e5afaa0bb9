package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrayerJournal/initializers"
	"github.com/PrayerJournal/models"
	"github.com/PrayerJournal/streaks"
	"github.com/doug-martin/goqu/v9"
)

// GetUserStats recomputes streaks server-side from the synced rows. The
// numbers match what the client shows as long as its pushes have landed.
func GetUserStats(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)
	userID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	if currentUser.User_Profile_ID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only view your own stats"})
		return
	}

	var prayerRows []models.PrayerRow
	err = initializers.DB.From("prayer").
		Where(goqu.C("user_profile_id").Eq(userID)).
		ScanStructs(&prayerRows)
	if err != nil {
		log.Println("Error fetching prayers for stats:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats", "details": err.Error()})
		return
	}

	prayers := make([]models.Prayer, 0, len(prayerRows))
	answered := 0
	for _, row := range prayerRows {
		prayer, err := row.ToPrayer()
		if err != nil {
			continue
		}
		prayers = append(prayers, prayer)
		if prayer.Answered {
			answered++
		}
	}

	var checkins []string
	err = initializers.DB.From("daily_checkin").
		Select("checkin_date").
		Where(goqu.C("user_profile_id").Eq(userID)).
		ScanVals(&checkins)
	if err != nil {
		log.Println("Error fetching checkins for stats:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats", "details": err.Error()})
		return
	}

	var statsRow models.UserStatsRow
	if _, err := initializers.DB.From("user_stats").
		Where(goqu.C("user_profile_id").Eq(userID)).
		ScanStruct(&statsRow); err != nil {
		log.Println("Error fetching user stats row:", err)
	}

	summary := streaks.Summarize(prayers, checkins, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"currentStreak":   summary.CurrentStreak,
		"longestStreak":   summary.LongestStreak,
		"totalDaysPrayed": summary.TotalDaysPrayed,
		"hasPrayedToday":  summary.HasPrayedToday,
		"totalPrayers":    len(prayers),
		"answeredPrayers": answered,
		"completedPlans":  statsRow.Completed_Plans,
	})
}
