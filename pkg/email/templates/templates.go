package templates

//go:generate templ generate

import (
	"fmt"
	"time"
)

const (
	// OTPSubject is the subject line used for one-time password emails.
	OTPSubject = "Your Travel Tinder Login OTP"
	// WelcomeSubject is the subject line of the welcome email.
	WelcomeSubject = "Welcome to Travel Tinder! 🌍"
)

// formatTTL renders durations the way people say them: "10 minutes", "1 hour".
func formatTTL(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	default:
		return plural(int(d.Round(time.Second)/time.Second), "second")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
