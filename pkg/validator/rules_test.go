package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveltinder/backend/pkg/validator"
)

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@x.com", "jane.doe+trip@example.co.uk"}
	invalid := []string{"", "   ", "plain", "user@", "@example.com", "user@localhost", "user@.com", "user@example..com", "Jane <jane@example.com>"}

	for _, v := range valid {
		assert.True(t, validator.ValidEmail("email", v).Check(), v)
	}
	for _, v := range invalid {
		assert.False(t, validator.ValidEmail("email", v).Check(), v)
	}
}

func TestValidMobile(t *testing.T) {
	t.Parallel()

	valid := []string{"+15551234567", "15551234567", "+44 20 7946 0958", "+1 (555) 123-4567"}
	invalid := []string{"", "12345", "+0123456789", "phone", "+1555123456789012"}

	for _, v := range valid {
		assert.True(t, validator.ValidMobile("mobile", v).Check(), v)
	}
	for _, v := range invalid {
		assert.False(t, validator.ValidMobile("mobile", v).Check(), v)
	}
}

func TestValidOTP(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.ValidOTP("otp", "123456", 6).Check())
	assert.False(t, validator.ValidOTP("otp", "12345", 6).Check())
	assert.False(t, validator.ValidOTP("otp", "12345a", 6).Check())
	assert.False(t, validator.ValidOTP("otp", "1234567", 6).Check())
}

func TestPasswordRules(t *testing.T) {
	t.Parallel()

	p := validator.DefaultPasswordPolicy
	tests := []struct {
		password string
		length   bool
		strong   bool
	}{
		{"Travel123", true, true},
		{"short1A", false, true},
		{"alllowercase1", true, false},
		{"ALLUPPERCASE1", true, false},
		{"NoDigitsHere", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.length, validator.PasswordLength("password", tt.password, p).Check())
			assert.Equal(t, tt.strong, validator.StrongPassword("password", tt.password, p).Check())
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("no errors", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, validator.Apply(
			validator.ValidEmail("email", "a@x.com"),
			validator.RequiredString("firstName", "Ana", "First name is required"),
		))
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.ValidEmail("email", "bad"),
			validator.RequiredString("firstName", " ", "First name is required"),
			validator.When(false, validator.ValidMobile("mobile", "x")),
		)
		require.Error(t, err)

		ve := validator.ExtractValidationErrors(err)
		require.Len(t, ve, 2)
		assert.True(t, ve.Has("email"))
		assert.True(t, ve.Has("firstName"))
		assert.False(t, ve.Has("mobile"))
		assert.Equal(t, "Valid email is required", ve.First())
		assert.Equal(t, []string{"First name is required"}, ve.Fields()["firstName"])
	})

	t.Run("detects wrapped validation errors", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("register: %w", validator.Apply(validator.ValidEmail("email", "")))
		assert.True(t, validator.IsValidationError(err))
		assert.False(t, validator.IsValidationError(errors.New("other")))
	})
}
