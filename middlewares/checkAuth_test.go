package middlewares

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayerJournal/initializers"
	"github.com/PrayerJournal/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func validToken(t *testing.T, userID int, role string, expiresIn time.Duration) string {
	return signToken(t, jwt.MapClaims{
		"id":   float64(userID),
		"exp":  float64(time.Now().Add(expiresIn).Unix()),
		"role": role,
	}, os.Getenv("SECRET"))
}

func setupTestDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	oldDB := initializers.DB
	initializers.DB = goqu.New("postgres", db)

	cleanup := func() {
		db.Close()
		initializers.DB = oldDB
	}
	return mock, cleanup
}

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/test", nil)
	return c, w
}

func userRows(exists bool, userID int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"user_profile_id", "username", "password", "email",
		"first_name", "last_name",
	})
	if exists {
		rows.AddRow(userID, "testuser", "hashedpassword", "test@example.com", "Test", "User")
	}
	return rows
}

func TestCheckAuth(t *testing.T) {
	os.Setenv("SECRET", "test-secret-key")
	defer os.Unsetenv("SECRET")

	tests := []struct {
		name           string
		authHeader     func(t *testing.T) string
		mockUserLookup bool
		userExists     bool
		expectAbort    bool
		expectAdmin    bool
	}{
		{
			name:        "missing authorization header",
			authHeader:  func(t *testing.T) string { return "" },
			expectAbort: true,
		},
		{
			name:        "not a bearer token",
			authHeader:  func(t *testing.T) string { return "Basic abc123" },
			expectAbort: true,
		},
		{
			name: "wrong signing key",
			authHeader: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.MapClaims{
					"id":   float64(1),
					"exp":  float64(time.Now().Add(time.Hour).Unix()),
					"role": "user",
				}, "wrong-secret-key")
			},
			expectAbort: true,
		},
		{
			name: "expired token",
			authHeader: func(t *testing.T) string {
				return "Bearer " + validToken(t, 1, "user", -time.Hour)
			},
			expectAbort: true,
		},
		{
			name: "valid token but user deleted",
			authHeader: func(t *testing.T) string {
				return "Bearer " + validToken(t, 999, "user", time.Hour)
			},
			mockUserLookup: true,
			userExists:     false,
			expectAbort:    true,
		},
		{
			name: "valid token regular user",
			authHeader: func(t *testing.T) string {
				return "Bearer " + validToken(t, 1, "user", time.Hour)
			},
			mockUserLookup: true,
			userExists:     true,
			expectAbort:    false,
			expectAdmin:    false,
		},
		{
			name: "valid token admin user",
			authHeader: func(t *testing.T) string {
				return "Bearer " + validToken(t, 1, "admin", time.Hour)
			},
			mockUserLookup: true,
			userExists:     true,
			expectAbort:    false,
			expectAdmin:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, cleanup := setupTestDB(t)
			defer cleanup()

			if tt.mockUserLookup {
				mock.ExpectQuery("SELECT").WillReturnRows(userRows(tt.userExists, 1))
			}

			c, w := setupTestContext()
			if header := tt.authHeader(t); header != "" {
				c.Request.Header.Set("Authorization", header)
			}

			CheckAuth(c)

			if tt.expectAbort {
				assert.True(t, c.IsAborted())
				assert.Equal(t, http.StatusUnauthorized, w.Code)
				_, exists := c.Get("currentUser")
				assert.False(t, exists)
				return
			}

			assert.False(t, c.IsAborted())

			user, exists := c.Get("currentUser")
			assert.True(t, exists)
			assert.Equal(t, 1, user.(models.UserProfile).User_Profile_ID)

			admin, exists := c.Get("admin")
			assert.True(t, exists)
			assert.Equal(t, tt.expectAdmin, admin.(bool))
		})
	}
}
