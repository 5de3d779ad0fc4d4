package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

var (
	// E.164 with an optional leading plus, 7 to 15 digits.
	mobileRegex = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)
	digitsRegex = regexp.MustCompile(`^[0-9]+$`)
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value, message string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{Field: field, Message: message},
	}
}

// ValidEmail validates an RFC 5322 address with a dotted domain.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != strings.TrimSpace(value) {
				return false
			}
			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" {
				return false
			}
			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}
			return true
		},
		Error: ValidationError{Field: field, Message: "Valid email is required"},
	}
}

// ValidMobile validates an international mobile number. Spaces, dashes
// and parentheses are ignored.
func ValidMobile(field, value string) Rule {
	return Rule{
		Check: func() bool {
			cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(value))
			return mobileRegex.MatchString(cleaned)
		},
		Error: ValidationError{Field: field, Message: "Valid mobile number is required"},
	}
}

// ValidOTP validates a numeric one-time code of exactly length digits.
func ValidOTP(field, value string, length int) Rule {
	return Rule{
		Check: func() bool { return len(value) == length && digitsRegex.MatchString(value) },
		Error: ValidationError{Field: field, Message: fmt.Sprintf("OTP must be %d digits", length)},
	}
}

// PasswordPolicy describes the minimum password strength.
type PasswordPolicy struct {
	MinLength      int
	MaxLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireDigit   bool
	RequireSpecial bool
}

// DefaultPasswordPolicy requires 8 to 128 characters with an uppercase
// letter, a lowercase letter and a digit.
var DefaultPasswordPolicy = PasswordPolicy{
	MinLength:    8,
	MaxLength:    128,
	RequireUpper: true,
	RequireLower: true,
	RequireDigit: true,
}

// PasswordLength checks the policy's length bounds.
func PasswordLength(field, value string, p PasswordPolicy) Rule {
	return Rule{
		Check: func() bool {
			n := len([]rune(value))
			return n >= p.MinLength && (p.MaxLength == 0 || n <= p.MaxLength)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("Password must be at least %d characters", p.MinLength),
		},
	}
}

// StrongPassword checks the policy's character class requirements.
func StrongPassword(field, value string, p PasswordPolicy) Rule {
	return Rule{
		Check: func() bool {
			var upper, lower, digit, special bool
			for _, r := range value {
				switch {
				case unicode.IsUpper(r):
					upper = true
				case unicode.IsLower(r):
					lower = true
				case unicode.IsDigit(r):
					digit = true
				case unicode.IsPunct(r) || unicode.IsSymbol(r):
					special = true
				}
			}
			return (!p.RequireUpper || upper) &&
				(!p.RequireLower || lower) &&
				(!p.RequireDigit || digit) &&
				(!p.RequireSpecial || special)
		},
		Error: ValidationError{
			Field:   field,
			Message: "Password must contain at least one uppercase letter, one lowercase letter, and one number",
		},
	}
}
