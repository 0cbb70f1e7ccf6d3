package logger

import (
	"log/slog"
	"strings"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// SubscriberID records the subscriber identifier under the key "subscriber_id".
// If id is nil, it returns an empty Attr.
func SubscriberID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("subscriber_id", id)
}

// Email records a redacted address under the key "email".
func Email(address string) slog.Attr {
	return slog.String("email", RedactEmail(address))
}

// RedactEmail masks the local part of an address for logging:
// "john.doe@example.com" becomes "jo***@example.com". Local parts of two
// characters or fewer are fully masked.
func RedactEmail(address string) string {
	local, domain, ok := strings.Cut(address, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***@***"
	}
	if len(local) > 2 {
		return local[:2] + "***@" + domain
	}
	return "***@" + domain
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

func Sent(n int) slog.Attr {
	return slog.Int("sent", n)
}

func Skipped(n int) slog.Attr {
	return slog.Int("skipped", n)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
