package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// sesAPI is the subset of the SES v2 client used by sesSender.
type sesAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesSender struct {
	api    sesAPI
	config Config
}

// NewSESSender creates an Amazon SES v2 backed email sender.
// Static credentials are used when SESAccessKey is set; otherwise the default
// AWS credential chain applies (env, shared config, instance role).
func NewSESSender(ctx context.Context, cfg Config) (EmailSender, error) {
	if cfg.SESRegion == "" {
		return nil, fmt.Errorf("%w: SESRegion is required", ErrInvalidConfig)
	}
	if err := cfg.validateSender(); err != nil {
		return nil, err
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.SESRegion),
	}
	if cfg.SESAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.SESAccessKey, cfg.SESSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: loading AWS config: %v", ErrInvalidConfig, err)
	}

	return newSESSender(sesv2.NewFromConfig(awsCfg), cfg), nil
}

func newSESSender(api sesAPI, cfg Config) *sesSender {
	return &sesSender{api: api, config: cfg}
}

func (s *sesSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	body := &types.Body{}
	if params.BodyHTML != "" {
		body.Html = utf8Content(params.BodyHTML)
	}
	if params.BodyText != "" {
		body.Text = utf8Content(params.BodyText)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.config.from()),
		Destination:      &types.Destination{ToAddresses: []string{params.SendTo}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: utf8Content(params.Subject),
				Body:    body,
			},
		},
	}
	if s.config.SupportEmail != "" {
		input.ReplyToAddresses = []string{s.config.SupportEmail}
	}
	if s.config.SESConfigurationSet != "" {
		input.ConfigurationSetName = aws.String(s.config.SESConfigurationSet)
	}
	if params.Tag != "" {
		input.EmailTags = []types.MessageTag{{Name: aws.String("tag"), Value: aws.String(params.Tag)}}
	}

	if _, err := s.api.SendEmail(ctx, input); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return nil
}

func utf8Content(data string) *types.Content {
	return &types.Content{Data: aws.String(data), Charset: aws.String("UTF-8")}
}
