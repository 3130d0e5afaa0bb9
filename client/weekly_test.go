package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyProjectStartsEmpty(t *testing.T) {
	s := NewWeeklyStore(testStore(t), nil, newTestClock())

	got := s.Get()
	assert.Empty(t, got.Title)
	assert.Empty(t, got.Content)
	assert.Nil(t, got.Last_Updated)
}

func TestWeeklyProjectUpdateStampsAndPersists(t *testing.T) {
	store := testStore(t)
	clock := newTestClock()

	first := NewWeeklyStore(store, nil, clock)
	updated := first.Update("  Unreached peoples  ", "Pray for workers in the harvest.")
	assert.Equal(t, "Unreached peoples", updated.Title)
	require.NotNil(t, updated.Last_Updated)
	assert.True(t, updated.Last_Updated.Equal(clock.Now()))

	second := NewWeeklyStore(store, nil, clock)
	got := second.Get()
	assert.Equal(t, "Unreached peoples", got.Title)
	assert.Equal(t, "Pray for workers in the harvest.", got.Content)
}

func TestWeeklyProjectFetchOverwritesLocal(t *testing.T) {
	db, mock := newMockDB(t)
	clock := newTestClock()

	s := NewWeeklyStore(testStore(t), db, clock)
	s.Update("stale local", "replaced on sign-in")

	remote := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	mock.ExpectQuery("SELECT (.+) FROM \"weekly_project\"").
		WillReturnRows(sqlmock.NewRows([]string{"user_profile_id", "title", "content", "datetime_update"}).
			AddRow(7, "Neighbors", "The families on our street.", remote))

	require.NoError(t, s.SetOwner(context.Background(), 7))

	got := s.Get()
	assert.Equal(t, "Neighbors", got.Title)
	require.NotNil(t, got.Last_Updated)
	assert.True(t, got.Last_Updated.Equal(remote))
}

func TestWeeklyProjectFailedRemoteSaveReverts(t *testing.T) {
	db, mock := newMockDB(t)
	store := testStore(t)

	s := NewWeeklyStore(store, db, newTestClock())
	mock.ExpectQuery("SELECT (.+) FROM \"weekly_project\"").
		WillReturnRows(sqlmock.NewRows([]string{"user_profile_id", "title", "content", "datetime_update"}))
	require.NoError(t, s.SetOwner(context.Background(), 7))

	mock.ExpectExec("INSERT INTO \"weekly_project\" (.+) ON CONFLICT \\(user_profile_id\\) DO UPDATE SET").
		WillReturnError(errors.New("network down"))

	s.Update("Unsaved", "never reached the server")
	s.Flush()

	got := s.Get()
	assert.Empty(t, got.Title, "the focus must roll back to its pre-mutation value")

	reopened := NewWeeklyStore(store, nil, newTestClock())
	assert.Empty(t, reopened.Get().Title)
}
