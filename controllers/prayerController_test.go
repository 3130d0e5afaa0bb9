package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayerJournal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guardedPrayerUpsert = "INSERT INTO \"prayer\" (.+) ON CONFLICT \\(prayer_id\\) DO UPDATE SET (.+) WHERE"

func upsertPrayerRequest(t *testing.T, prayer models.Prayer, userParam string) (*gin.Context, *httptest.ResponseRecorder) {
	body, err := json.Marshal(prayer)
	require.NoError(t, err)

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Params = gin.Params{{Key: "user_profile_id", Value: userParam}}
	c.Request = httptest.NewRequest("PUT", "/prayers", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestUpsertUserPrayer(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectExec(guardedPrayerUpsert).
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, w := upsertPrayerRequest(t, models.Prayer{Prayer_ID: "p1", Title: "Guidance"}, "1")

	UpsertUserPrayer(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Conflicting with another user's prayer id must leave that row alone and
// come back as forbidden, not silently rewrite its owner.
func TestUpsertUserPrayer_ForeignRowConflict(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectExec(guardedPrayerUpsert).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, w := upsertPrayerRequest(t, models.Prayer{Prayer_ID: "someone-elses", Title: "Guidance"}, "1")

	UpsertUserPrayer(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertUserPrayer_OtherUserForbidden(t *testing.T) {
	c, w := upsertPrayerRequest(t, models.Prayer{Prayer_ID: "p1", Title: "Guidance"}, "99")

	UpsertUserPrayer(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpsertUserPrayer_MissingFields(t *testing.T) {
	c, w := upsertPrayerRequest(t, models.Prayer{Prayer_ID: "p1"}, "1")

	UpsertUserPrayer(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUserPrayer_NotFound(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM \"prayer\"").
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockUser(), false)
	c.Params = gin.Params{{Key: "prayer_id", Value: "missing"}}

	DeleteUserPrayer(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
