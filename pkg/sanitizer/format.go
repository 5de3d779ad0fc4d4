package sanitizer

import (
	"regexp"
	"strings"
)

var (
	dotRegex      = regexp.MustCompile(`\.{2,}`)
	nonDigitRegex = regexp.MustCompile(`[^0-9]`)
)

// NormalizeEmail trims and lowercases an address and collapses repeated
// dots in the local part.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	local = strings.Trim(dotRegex.ReplaceAllString(local, "."), ".")
	return local + "@" + domain
}

// NormalizePhone strips every non-digit character.
func NormalizePhone(phone string) string {
	return nonDigitRegex.ReplaceAllString(phone, "")
}

// NormalizeMobile keeps the digits of a phone number and a leading "+",
// so "+1 (555) 123-4567" and "+15551234567" map to the same key.
func NormalizeMobile(mobile string) string {
	mobile = strings.TrimSpace(mobile)
	digits := NormalizePhone(mobile)
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(mobile, "+") {
		return "+" + digits
	}
	return digits
}
