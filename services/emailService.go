package services

import (
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client *resend.Client
}

var emailService *EmailService

// InitEmailService wires Resend; without an API key the service stays nil
// and invite emails are silently skipped.
func InitEmailService() {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email service will not be available.")
		return
	}

	emailService = &EmailService{client: resend.NewClient(apiKey)}
	log.Println("Email service initialized with Resend")
}

func GetEmailService() *EmailService {
	return emailService
}

// SendGroupInviteEmail mails an invite code for a prayer group.
func (s *EmailService) SendGroupInviteEmail(toEmail, inviterName, groupName, inviteCode string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; padding: 20px 0; border-bottom: 2px solid #8B5CF6; }
        .header h1 { color: #8B5CF6; margin: 0; }
        .code-container { background-color: #f5f5f5; border: 2px solid #8B5CF6; border-radius: 8px; padding: 20px; text-align: center; margin: 20px 0; }
        .code { font-size: 28px; font-weight: bold; letter-spacing: 6px; color: #8B5CF6; font-family: monospace; }
        .footer { text-align: center; padding: 20px 0; border-top: 1px solid #ddd; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="header"><h1>Prayer Journal</h1></div>
    <div class="content">
        <h2>You're invited to pray together</h2>
        <p>%s has invited you to join the prayer group <strong>%s</strong>.</p>
        <p>Use this invite code in the app to join:</p>
        <div class="code-container"><div class="code">%s</div></div>
        <p>The code expires in 7 days and can be used once.</p>
    </div>
    <div class="footer"><p>Sent by Prayer Journal. If you weren't expecting this, you can ignore it.</p></div>
</body>
</html>`, inviterName, groupName, inviteCode)

	fromEmail := os.Getenv("EMAIL_FROM")
	if fromEmail == "" {
		fromEmail = "Prayer Journal <invites@prayerjournal.app>"
	}

	params := &resend.SendEmailRequest{
		From:    fromEmail,
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Join %s on Prayer Journal", groupName),
		Html:    htmlBody,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send invite email: %v", err)
	}

	log.Printf("Invite email sent to %s (id %s)", toEmail, sent.Id)
	return nil
}
