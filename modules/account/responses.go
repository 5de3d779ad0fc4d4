package account

import (
	"github.com/traveltinder/backend/pkg/auth"
	"github.com/traveltinder/backend/svc/session"
)

// UserDTO is the public view of an account. It never carries the
// password hash or provider subject ids.
type UserDTO struct {
	ID               string `json:"id"`
	Email            string `json:"email,omitempty"`
	Mobile           string `json:"mobile,omitempty"`
	FirstName        string `json:"firstName,omitempty"`
	LastName         string `json:"lastName,omitempty"`
	ProfilePicture   string `json:"profilePicture,omitempty"`
	IsEmailVerified  bool   `json:"isEmailVerified"`
	IsMobileVerified bool   `json:"isMobileVerified"`
	AuthProvider     string `json:"authProvider"`
}

func newUserDTO(u *auth.User) UserDTO {
	return UserDTO{
		ID:               u.ID,
		Email:            u.Email,
		Mobile:           u.Mobile,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		ProfilePicture:   u.ProfilePicture,
		IsEmailVerified:  u.IsEmailVerified,
		IsMobileVerified: u.IsMobileVerified,
		AuthProvider:     string(u.AuthProvider),
	}
}

// SessionData is the data of every successful sign-in.
type SessionData struct {
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	IsNewUser    bool    `json:"isNewUser"`
}

func newSessionData(s *session.Session) SessionData {
	return SessionData{
		User:         newUserDTO(s.User),
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		IsNewUser:    s.Created,
	}
}

// RegisterData is returned by email registration.
type RegisterData struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// RefreshData is returned by token refresh.
type RefreshData struct {
	AccessToken string `json:"accessToken"`
}

// OTPData carries the generated code in development only.
type OTPData struct {
	OTP string `json:"otp"`
}

// ProfileData wraps the profile response.
type ProfileData struct {
	User UserDTO `json:"user"`
}
