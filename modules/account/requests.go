package account

// RegisterRequest is the body of POST /auth/register/email.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest is the body of POST /auth/login/email.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SendEmailOTPRequest is the body of POST /auth/otp/email/send.
type SendEmailOTPRequest struct {
	Email string `json:"email"`
}

// VerifyEmailOTPRequest is the body of POST /auth/otp/email/verify.
type VerifyEmailOTPRequest struct {
	Email     string `json:"email"`
	OTP       string `json:"otp"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SendMobileOTPRequest is the body of POST /auth/otp/mobile/send.
type SendMobileOTPRequest struct {
	Mobile string `json:"mobile"`
}

// VerifyMobileOTPRequest is the body of POST /auth/otp/mobile/verify.
type VerifyMobileOTPRequest struct {
	Mobile    string `json:"mobile"`
	OTP       string `json:"otp"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// GoogleRequest is the body of POST /auth/oauth/google. Native clients
// send idToken; the web flow sends the authorization code.
type GoogleRequest struct {
	IDToken string `json:"idToken"`
	Code    string `json:"code"`
}

// AppleRequest is the body of POST /auth/oauth/apple. Apple sends the
// user's name to the client on first authorization only, either flat or
// inside the user object. Any email in the body is ignored; the verified
// token is the only source of the address.
type AppleRequest struct {
	IdentityToken string     `json:"identityToken"`
	AppleID       string     `json:"appleId"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	User          *AppleUser `json:"user"`
}

// AppleUser mirrors the user object of Sign in with Apple JS.
type AppleUser struct {
	Name struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"name"`
}

func (r AppleRequest) names() (string, string) {
	first, last := r.FirstName, r.LastName
	if r.User != nil {
		if first == "" {
			first = r.User.Name.FirstName
		}
		if last == "" {
			last = r.User.Name.LastName
		}
	}
	return first, last
}

// RefreshRequest is the body of POST /auth/refresh and POST /auth/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// EmptyRequest is used by routes without a body.
type EmptyRequest struct{}
