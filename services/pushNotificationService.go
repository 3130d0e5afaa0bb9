package services

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/PrayerJournal/initializers"
	"github.com/PrayerJournal/models"
	"github.com/doug-martin/goqu/v9"
)

type PushNotificationService struct {
	fcmClient *messaging.Client
}

type NotificationPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

var pushService *PushNotificationService

func InitPushNotificationService() {
	pushService = &PushNotificationService{}

	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")

	var app *firebase.App
	var err error

	if serviceAccountPath != "" {
		opt := option.WithCredentialsFile(serviceAccountPath)
		app, err = firebase.NewApp(context.Background(), nil, opt)
	} else {
		// Application Default Credentials
		app, err = firebase.NewApp(context.Background(), nil)
	}
	if err != nil {
		log.Printf("Failed to initialize Firebase app: %v", err)
		return
	}

	pushService.fcmClient, err = app.Messaging(context.Background())
	if err != nil {
		log.Printf("Failed to get Firebase messaging client: %v", err)
		return
	}

	log.Println("Push notification service initialized with FCM")
}

func GetPushNotificationService() *PushNotificationService {
	return pushService
}

// SendNotificationToUser delivers the payload to every device token the
// user has registered. Token-level failures are logged and skipped so one
// stale device does not block the rest.
func (s *PushNotificationService) SendNotificationToUser(userID int, payload NotificationPayload) error {
	var tokens []models.PushToken
	err := initializers.DB.From("user_push_token").
		Where(goqu.C("user_profile_id").Eq(userID)).
		ScanStructs(&tokens)
	if err != nil {
		return fmt.Errorf("failed to get push tokens for user %d: %v", userID, err)
	}
	if len(tokens) == 0 {
		return fmt.Errorf("no push tokens found for user %d", userID)
	}

	for _, token := range tokens {
		if err := s.sendToToken(token, payload); err != nil {
			log.Printf("Failed to send notification to token %s: %v", token.Push_Token, err)
		}
	}
	return nil
}

// SendNotificationToUsers fans a payload out to several users.
func (s *PushNotificationService) SendNotificationToUsers(userIDs []int, payload NotificationPayload) {
	for _, userID := range userIDs {
		if err := s.SendNotificationToUser(userID, payload); err != nil {
			log.Printf("Failed to send notification to user %d: %v", userID, err)
		}
	}
}

func (s *PushNotificationService) sendToToken(token models.PushToken, payload NotificationPayload) error {
	if s.fcmClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	message := &messaging.Message{
		Token: token.Push_Token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
	}

	if token.Platform == "ios" {
		message.APNS = &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		}
	}

	_, err := s.fcmClient.Send(context.Background(), message)
	return err
}
