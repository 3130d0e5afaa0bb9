package controllers

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/PrayerJournal/initializers"
	"github.com/PrayerJournal/models"
	"github.com/doug-martin/goqu/v9"
)

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func UserSignup(c *gin.Context) {
	var signup models.UserSignup
	if err := c.ShouldBindJSON(&signup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(signup.Username) == "" || signup.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	userCount, err := initializers.DB.From("user_profile").
		Select("username").
		Where(goqu.C("username").Eq(signup.Username)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if userCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists."})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newUser := models.UserProfile{
		Username:   signup.Username,
		Password:   string(passwordHash),
		Email:      signup.Email,
		First_Name: signup.FirstName,
		Last_Name:  signup.LastName,
	}

	insert := initializers.DB.Insert("user_profile").Rows(newUser).Executor()
	if _, err := insert.Exec(); err != nil {
		log.Println("signup insert failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "User created successfully.",
		"username": signup.Username,
	})
}

func UserLogin(c *gin.Context) {
	var login models.Login
	if err := c.ShouldBindJSON(&login); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dbUser models.UserProfile
	found, err := initializers.DB.From("user_profile").
		Where(goqu.C("username").Eq(login.Username)).
		ScanStruct(&dbUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dbUser.Password), []byte(login.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	role := "user"
	if strings.HasPrefix(dbUser.Username, "admin") {
		role = "admin"
	}

	generateToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   dbUser.User_Profile_ID,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"role": role,
	})

	token, err := generateToken.SignedString([]byte(os.Getenv("SECRET")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in successfully.",
		"token":   token,
		"user":    dbUser,
	})
}

func GetUserProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user":  c.MustGet("currentUser"),
		"admin": c.MustGet("admin"),
	})
}

// ListUsers is admin-only and backs the support tooling.
func ListUsers(c *gin.Context) {
	var users []models.UserProfile
	err := initializers.DB.From("user_profile").
		Order(goqu.C("datetime_create").Desc()).
		ScanStructs(&users)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

// StorePushToken registers a device token for push delivery, replacing any
// prior registration of the same token.
func StorePushToken(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	var body models.PushTokenCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Push_Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pushToken is required"})
		return
	}

	if _, err := initializers.DB.Delete("user_push_token").
		Where(goqu.C("push_token").Eq(body.Push_Token)).
		Executor().Exec(); err != nil {
		log.Println("push token cleanup failed:", err)
	}

	token := models.PushToken{
		User_Profile_ID: currentUser.User_Profile_ID,
		Push_Token:      body.Push_Token,
		Platform:        body.Platform,
	}
	if _, err := initializers.DB.Insert("user_push_token").Rows(token).Executor().Exec(); err != nil {
		log.Println("push token insert failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store push token", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push token stored."})
}
