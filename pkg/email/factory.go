package email

import (
	"context"
	"fmt"
)

// NewSender builds the sender selected by cfg.Provider and wraps it with the
// configured send timeout.
func NewSender(ctx context.Context, cfg Config) (EmailSender, error) {
	var (
		sender EmailSender
		err    error
	)

	switch cfg.Provider {
	case ProviderPostmark:
		sender, err = NewPostmarkClient(cfg)
	case ProviderSES:
		sender, err = NewSESSender(ctx, cfg)
	case ProviderSMTP:
		sender, err = NewSMTPSender(cfg)
	case ProviderDev, "":
		if err = cfg.validateSender(); err == nil {
			sender = NewDevSender(cfg.DevDir)
		}
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return WithTimeout(sender, cfg.SendTimeout), nil
}
