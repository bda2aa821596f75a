package awsclients

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESMailer implements fulfillment.Mailer via SESv2's SendEmail API.
type SESMailer struct {
	client *sesv2.Client
	from   string
}

func NewSESMailer(client *sesv2.Client, fromEmail string) *SESMailer {
	return &SESMailer{client: client, from: fromEmail}
}

func (m *SESMailer) SendHTML(ctx context.Context, to, subject, html string) error {
	_, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(html)},
				},
			},
		},
	})
	return err
}
