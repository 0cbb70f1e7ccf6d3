package email

import (
	"fmt"
	"time"
)

// Provider names accepted by EMAIL_PROVIDER.
const (
	ProviderPostmark = "postmark"
	ProviderSES      = "ses"
	ProviderSMTP     = "smtp"
	ProviderDev      = "dev"
)

// Config holds email service configuration.
// Only the block for the selected Provider has to be filled in.
// SenderEmail is always required; it is parsed at startup so a misconfigured
// sender fails the process instead of the first signup.
type Config struct {
	Provider     string        `env:"EMAIL_PROVIDER" envDefault:"dev"`
	SenderEmail  string        `env:"SENDER_EMAIL,required"`
	SenderName   string        `env:"SENDER_NAME"`
	SupportEmail string        `env:"SUPPORT_EMAIL"`
	SendTimeout  time.Duration `env:"EMAIL_SEND_TIMEOUT" envDefault:"10s"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	PostmarkBaseURL      string `env:"POSTMARK_BASE_URL"`

	SESRegion           string `env:"SES_REGION" envDefault:"us-east-1"`
	SESAccessKey        string `env:"SES_ACCESS_KEY"`
	SESSecretKey        string `env:"SES_SECRET_KEY"`
	SESConfigurationSet string `env:"SES_CONFIGURATION_SET"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	DevDir string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

func (c Config) validateSender() error {
	if c.SenderEmail == "" {
		return fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !isValidAddress(c.SenderEmail) {
		return fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if c.SupportEmail != "" && !isValidAddress(c.SupportEmail) {
		return fmt.Errorf("%w: SupportEmail must be a valid email address", ErrInvalidConfig)
	}
	return nil
}

// from formats the From header value.
func (c Config) from() string {
	if c.SenderName == "" {
		return c.SenderEmail
	}
	return fmt.Sprintf("%s <%s>", c.SenderName, c.SenderEmail)
}
