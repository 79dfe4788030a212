package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	StripeSecretKey      string `env:"STRIPE_SECRET_KEY,required"`
	StripeWebhookSecret  string `env:"STRIPE_WEBHOOK_SECRET,required"`
	StripePublishableKey string `env:"STRIPE_PUBLISHABLE_KEY"`

	EmailProvider  string `env:"EMAIL_PROVIDER" envDefault:"resend"`
	ResendAPIKey   string `env:"RESEND_API_KEY"`
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	SMTPHost       string `env:"SMTP_HOST"`
	SMTPPort       string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser       string `env:"SMTP_USER"`
	SMTPPassword   string `env:"SMTP_PASSWORD"`

	EmailFrom        string `env:"EMAIL_FROM" envDefault:"EHR Research Institute <noreply@erhri.org>"`
	OversightEmail   string `env:"RECEIPT_OVERSIGHT_EMAIL" envDefault:"erhri@proton.me"`
	OrganizationName string `env:"ORGANIZATION_NAME" envDefault:"EHR Research Institute"`

	// EventsTableName enables webhook deduplication when set. Left empty,
	// retried deliveries dispatch again.
	EventsTableName string `env:"EVENTS_TABLE_NAME"`
	AwsRegion       string `env:"AWS_REGION" envDefault:"us-east-1"`

	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"dev"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
