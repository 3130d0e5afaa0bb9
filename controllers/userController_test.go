package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayerJournal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userProfileRows(users ...models.UserProfile) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"user_profile_id", "username", "password", "email",
		"first_name", "last_name",
	})
	for _, u := range users {
		rows.AddRow(u.User_Profile_ID, u.Username, u.Password, u.Email, u.First_Name, u.Last_Name)
	}
	return rows
}

func TestGetUserProfile(t *testing.T) {
	tests := []struct {
		name          string
		mockUser      models.UserProfile
		mockAdmin     bool
		expectedAdmin bool
	}{
		{
			name:          "returns regular user profile",
			mockUser:      MockUser(),
			mockAdmin:     false,
			expectedAdmin: false,
		},
		{
			name:          "returns admin user profile",
			mockUser:      MockAdminUser(),
			mockAdmin:     true,
			expectedAdmin: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := SetupTestContext()
			SetAuthenticatedUser(c, tt.mockUser, tt.mockAdmin)

			GetUserProfile(c)

			assert.Equal(t, http.StatusOK, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)

			assert.NotNil(t, response["user"])
			assert.Equal(t, tt.expectedAdmin, response["admin"])
		})
	}
}

func TestUserLogin(t *testing.T) {
	os.Setenv("SECRET", "test-secret-key")
	defer os.Unsetenv("SECRET")

	tests := []struct {
		name           string
		requestBody    models.Login
		mockRows       func(t *testing.T) *sqlmock.Rows
		expectedStatus int
		expectToken    bool
	}{
		{
			name:        "successful login",
			requestBody: models.Login{Username: "testuser", Password: "password123"},
			mockRows: func(t *testing.T) *sqlmock.Rows {
				return userProfileRows(MockUserWithPassword(t))
			},
			expectedStatus: http.StatusOK,
			expectToken:    true,
		},
		{
			name:        "invalid password",
			requestBody: models.Login{Username: "testuser", Password: "wrongpassword"},
			mockRows: func(t *testing.T) *sqlmock.Rows {
				return userProfileRows(MockUserWithPassword(t))
			},
			expectedStatus: http.StatusUnauthorized,
			expectToken:    false,
		},
		{
			name:        "unknown username",
			requestBody: models.Login{Username: "nobody", Password: "password123"},
			mockRows: func(t *testing.T) *sqlmock.Rows {
				return userProfileRows()
			},
			expectedStatus: http.StatusUnauthorized,
			expectToken:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			mock.ExpectQuery("SELECT (.+) FROM \"user_profile\"").
				WillReturnRows(tt.mockRows(t))

			body, err := json.Marshal(tt.requestBody)
			require.NoError(t, err)

			c, w := SetupTestContext()
			c.Request = httptest.NewRequest("POST", "/login", bytes.NewReader(body))
			c.Request.Header.Set("Content-Type", "application/json")

			UserLogin(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err = json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)

			if tt.expectToken {
				assert.NotEmpty(t, response["token"])
			} else {
				assert.NotNil(t, response["error"])
			}
		})
	}
}

func TestUserSignup_DuplicateUsername(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	body, err := json.Marshal(models.UserSignup{Username: "taken", Password: "secret"})
	require.NoError(t, err)

	c, w := SetupTestContext()
	c.Request = httptest.NewRequest("POST", "/signup", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	UserSignup(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserSignup_MissingFields(t *testing.T) {
	body, err := json.Marshal(models.UserSignup{Username: "  ", Password: ""})
	require.NoError(t, err)

	c, w := SetupTestContext()
	c.Request = httptest.NewRequest("POST", "/signup", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	UserSignup(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
