package services

import (
	"log"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/PrayerJournal/initializers"
	"github.com/PrayerJournal/models"
)

// reminderRow joins a user's reminder slot with its enabled flag.
type reminderRow struct {
	User_Profile_ID int    `json:"userProfileId"`
	Hour            int    `json:"hour"`
	Minute          int    `json:"minute"`
	Label           string `json:"label"`
	Enabled         bool   `json:"enabled"`
}

// StartReminderScheduler wakes once a minute and pushes a prayer reminder
// to every user with a matching enabled slot. Duplicate sends within the
// same minute are avoided by ticking on minute boundaries.
func StartReminderScheduler() {
	go func() {
		// align to the next minute boundary first
		now := time.Now()
		time.Sleep(now.Truncate(time.Minute).Add(time.Minute).Sub(now))

		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		deliverDueReminders(time.Now())
		for t := range ticker.C {
			deliverDueReminders(t)
		}
	}()

	log.Println("Reminder scheduler started")
}

func deliverDueReminders(now time.Time) {
	var due []reminderRow
	err := initializers.DB.From("user_reminder").
		Where(
			goqu.C("enabled").IsTrue(),
			goqu.C("hour").Eq(now.Hour()),
			goqu.C("minute").Eq(now.Minute()),
		).
		ScanStructs(&due)
	if err != nil {
		log.Println("reminder query failed:", err)
		return
	}

	push := GetPushNotificationService()
	if push == nil {
		return
	}

	for _, r := range due {
		label := r.Label
		if label == "" {
			label = "Time to pray"
		}
		err := push.SendNotificationToUser(r.User_Profile_ID, NotificationPayload{
			Title: "Prayer Journal 🙏",
			Body:  label,
			Data:  map[string]string{"kind": "reminder"},
		})
		if err != nil {
			log.Printf("reminder push to user %d failed: %v", r.User_Profile_ID, err)
		}
	}
}

// ReplaceUserReminders swaps a user's reminder slots in one transaction-ish
// sweep: delete then insert. A failure between the two leaves the user with
// no reminders rather than doubled ones.
func ReplaceUserReminders(userID int, settings models.ReminderSettings) error {
	if _, err := initializers.DB.Delete("user_reminder").
		Where(goqu.C("user_profile_id").Eq(userID)).
		Executor().Exec(); err != nil {
		return err
	}

	if len(settings.Times) == 0 {
		return nil
	}

	rows := make([]reminderRow, 0, len(settings.Times))
	for _, t := range settings.Times {
		rows = append(rows, reminderRow{
			User_Profile_ID: userID,
			Hour:            t.Hour,
			Minute:          t.Minute,
			Label:           t.Label,
			Enabled:         settings.Enabled,
		})
	}

	_, err := initializers.DB.Insert("user_reminder").
		Rows(rows).
		Executor().Exec()
	return err
}

// UserReminders loads a user's reminder schedule, defaulting when empty.
func UserReminders(userID int) (models.ReminderSettings, error) {
	var rows []reminderRow
	err := initializers.DB.From("user_reminder").
		Where(goqu.C("user_profile_id").Eq(userID)).
		Order(goqu.C("hour").Asc(), goqu.C("minute").Asc()).
		ScanStructs(&rows)
	if err != nil {
		return models.ReminderSettings{}, err
	}
	if len(rows) == 0 {
		return models.DefaultReminderSettings(), nil
	}

	out := models.ReminderSettings{}
	for _, r := range rows {
		out.Enabled = out.Enabled || r.Enabled
		out.Times = append(out.Times, models.ReminderTime{Hour: r.Hour, Minute: r.Minute, Label: r.Label})
	}
	return out, nil
}
