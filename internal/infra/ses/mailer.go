package ses

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SendEmailAPI is the part of the SES v2 client the mailer uses.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Mailer sends password reset links through Amazon SES. A mailer without a
// from address is disabled and only logs.
type Mailer struct {
	client   SendEmailAPI
	from     string
	fromName string
}

// NewMailer loads the default AWS configuration for region.
func NewMailer(ctx context.Context, region, from, fromName string) (*Mailer, error) {
	if from == "" {
		log.Println("email disabled: no from address configured")
		return &Mailer{}, nil
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	log.Printf("email enabled: from=%s region=%s", from, region)
	return NewMailerWithClient(sesv2.NewFromConfig(cfg), from, fromName), nil
}

// NewMailerWithClient wires a prebuilt client, used by tests.
func NewMailerWithClient(client SendEmailAPI, from, fromName string) *Mailer {
	return &Mailer{client: client, from: from, fromName: fromName}
}

func (m *Mailer) Enabled() bool {
	return m.client != nil && m.from != ""
}

func (m *Mailer) SendPasswordReset(ctx context.Context, toEmail, toName, link string) error {
	if !m.Enabled() {
		log.Printf("skipping password reset email to %s (email disabled)", toEmail)
		return nil
	}

	greeting := "Hi,"
	if toName != "" {
		greeting = fmt.Sprintf("Hi %s,", toName)
	}
	body := fmt.Sprintf("%s\n\nYou requested a password reset.\n\nReset your password: %s\n\nThe link expires shortly and can be used once.\n", greeting, link)

	from := m.from
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.from)
	}

	_, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination:      &types.Destination{ToAddresses: []string{toEmail}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String("Password Reset"), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body), Charset: aws.String("UTF-8")},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", toEmail, err)
	}
	log.Printf("password reset email sent to %s", toEmail)
	return nil
}
