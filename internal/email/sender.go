package email

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/Reece-Nunez/EHR/internal/config"
)

// Message is a single outbound email. HTML is the rendered body; Text is
// an optional plain-text alternative.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New builds the sender selected by EMAIL_PROVIDER.
func New(ctx context.Context, cfg config.Config) (Sender, error) {
	switch strings.ToLower(cfg.EmailProvider) {
	case "resend":
		if cfg.ResendAPIKey == "" {
			return nil, fmt.Errorf("RESEND_API_KEY not set for EMAIL_PROVIDER=resend")
		}
		return NewResendSender(cfg.ResendAPIKey), nil

	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AwsRegion))
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		return NewSESSender(sesv2.NewFromConfig(awsCfg)), nil

	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY not set for EMAIL_PROVIDER=sendgrid")
		}
		return NewSendGridSender(cfg.SendGridAPIKey), nil

	case "smtp":
		if cfg.SMTPHost == "" || cfg.SMTPUser == "" || cfg.SMTPPassword == "" {
			return nil, fmt.Errorf("SMTP_HOST, SMTP_USER and SMTP_PASSWORD required for EMAIL_PROVIDER=smtp")
		}
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword), nil

	default:
		return nil, fmt.Errorf("unknown EMAIL_PROVIDER: %s", cfg.EmailProvider)
	}
}

// splitAddress breaks a "Display Name <box@domain>" address into its
// parts. A bare address comes back with an empty name.
func splitAddress(addr string) (name, address string) {
	start := strings.LastIndex(addr, "<")
	end := strings.LastIndex(addr, ">")
	if start == -1 || end == -1 || end < start {
		return "", strings.TrimSpace(addr)
	}
	return strings.TrimSpace(addr[:start]), strings.TrimSpace(addr[start+1 : end])
}
