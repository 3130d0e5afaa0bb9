package client

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayerJournal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsDefaults(t *testing.T) {
	s := NewSettingsStore(testStore(t), nil)

	got := s.Get()
	assert.Equal(t, "dark", got.Theme)
	assert.Equal(t, "medium", got.Font_Size)
	assert.True(t, got.Show_Streak)
	assert.Equal(t, "NIV", got.Bible_Translation)
}

func TestSettingsUpdatePersists(t *testing.T) {
	store := testStore(t)

	first := NewSettingsStore(store, nil)
	first.Update(func(s *models.Settings) {
		s.Theme = "light"
		s.Show_Streak = false
	})

	second := NewSettingsStore(store, nil)
	got := second.Get()
	assert.Equal(t, "light", got.Theme)
	assert.False(t, got.Show_Streak)
	assert.Equal(t, "NIV", got.Bible_Translation, "untouched fields keep their defaults")
}

func TestRemindersDefaultAndUpdate(t *testing.T) {
	store := testStore(t)

	s := NewSettingsStore(store, nil)
	reminders := s.Reminders()
	assert.False(t, reminders.Enabled)
	assert.Equal(t, []models.ReminderTime{{Hour: 7, Minute: 0, Label: "Morning Prayer"}}, reminders.Times)

	s.UpdateReminders(models.ReminderSettings{
		Enabled: true,
		Times:   []models.ReminderTime{{Hour: 21, Minute: 30, Label: "Evening Prayer"}},
	})

	reopened := NewSettingsStore(store, nil)
	assert.True(t, reopened.Reminders().Enabled)
	assert.Equal(t, 21, reopened.Reminders().Times[0].Hour)
}

// A failed remote save restores the previous settings value, the same
// policy the collections apply to their pushes.
func TestSettingsFailedRemoteSaveReverts(t *testing.T) {
	db, mock := newMockDB(t)
	store := testStore(t)

	s := NewSettingsStore(store, db)
	mock.ExpectQuery("SELECT (.+) FROM \"user_settings\"").
		WillReturnRows(sqlmock.NewRows([]string{"user_profile_id", "settings_doc", "datetime_update"}))
	require.NoError(t, s.SetOwner(context.Background(), 7))

	mock.ExpectExec("INSERT INTO \"user_settings\"").
		WillReturnError(errors.New("network down"))

	s.Update(func(v *models.Settings) { v.Theme = "light" })
	s.Flush()

	assert.Equal(t, "dark", s.Get().Theme)

	reopened := NewSettingsStore(store, nil)
	assert.Equal(t, "dark", reopened.Get().Theme, "the revert must reach the persisted copy")
}

func TestSettingsSuccessfulRemoteSaveSticks(t *testing.T) {
	db, mock := newMockDB(t)

	s := NewSettingsStore(testStore(t), db)
	mock.ExpectQuery("SELECT (.+) FROM \"user_settings\"").
		WillReturnRows(sqlmock.NewRows([]string{"user_profile_id", "settings_doc", "datetime_update"}))
	require.NoError(t, s.SetOwner(context.Background(), 7))

	mock.ExpectExec("INSERT INTO \"user_settings\" (.+) ON CONFLICT \\(user_profile_id\\) DO UPDATE SET").
		WillReturnResult(sqlmock.NewResult(1, 1))

	s.Update(func(v *models.Settings) { v.Theme = "light" })
	s.Flush()

	assert.Equal(t, "light", s.Get().Theme)
	assert.NoError(t, mock.ExpectationsWereMet())
}
