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

// UserID records the user identifier under the key "user_id".
// If id is empty, it returns an empty Attr.
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Channel records an OTP delivery channel ("email", "mobile").
func Channel(ch string) slog.Attr {
	return slog.String("channel", ch)
}

// Provider records an identity provider ("google", "apple", ...).
func Provider(p string) slog.Attr {
	return slog.String("provider", p)
}

// Identifier records an email address or phone number with most characters
// masked, so logs can correlate requests without storing contact details.
func Identifier(id string) slog.Attr {
	return slog.String("identifier", Mask(id))
}

// Mask keeps the first character and the domain of an email address
// ("j***@example.com") or the last three digits of anything else ("***456").
func Mask(s string) string {
	if s == "" {
		return ""
	}
	if at := strings.LastIndexByte(s, '@'); at > 0 {
		return s[:1] + "***" + s[at:]
	}
	if len(s) <= 3 {
		return "***"
	}
	return "***" + s[len(s)-3:]
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
