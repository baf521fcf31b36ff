package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"pathway/internal/models"
)

// UserResolver maps a platform identity to the account it belongs to
type UserResolver interface {
	GetUserByExternalID(externalID string) (*models.User, error)
}

// MailNotifier delivers notifications by email via Amazon SES. When no
// sender address is configured the notifier runs disabled and drops
// every notification after logging it.
type MailNotifier struct {
	client    *sesv2.Client
	users     UserResolver
	fromEmail string
	fromName  string
	enabled   bool
}

// NewMailNotifier creates a new SES-backed notifier
func NewMailNotifier(ctx context.Context, users UserResolver, awsRegion, fromEmail, fromName string) (*MailNotifier, error) {
	if fromEmail == "" {
		log.Println("Mail notifier disabled: SES_FROM_EMAIL not configured")
		return &MailNotifier{users: users, enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Mail notifier enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &MailNotifier{
		client:    sesv2.NewFromConfig(cfg),
		users:     users,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// Notify emails the text to the address on the user's account. Users
// without a registered email address are skipped.
func (n *MailNotifier) Notify(ctx context.Context, externalID, text string) error {
	if !n.enabled {
		log.Printf("Skipping notification (notifier disabled): to=%s", externalID)
		return nil
	}

	user, err := n.users.GetUserByExternalID(externalID)
	if err != nil {
		return fmt.Errorf("failed to resolve recipient: %w", err)
	}
	if user == nil || user.Email == "" {
		log.Printf("Skipping notification: no email on record for %s", externalID)
		return nil
	}

	fromAddress := n.fromEmail
	if n.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{user.Email},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String("Pathway notification"),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(text),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send notification to %s: %w", externalID, err)
	}

	log.Printf("Notification sent: to=%s", externalID)
	return nil
}
