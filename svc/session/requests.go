package session

// LoginRequest is one of EmailPasswordLogin, EmailOTPLogin, MobileOTPLogin,
// GoogleLogin or AppleLogin.
type LoginRequest interface {
	loginRequest()
}

// EmailPasswordLogin signs in an account created through registration.
type EmailPasswordLogin struct {
	Email    string
	Password string
}

// EmailOTPLogin completes an email one-time password sign-in. Names are
// used only when the account is created.
type EmailOTPLogin struct {
	Email     string
	Code      string
	FirstName string
	LastName  string
}

// MobileOTPLogin completes a mobile one-time password sign-in.
type MobileOTPLogin struct {
	Mobile    string
	Code      string
	FirstName string
	LastName  string
}

// GoogleLogin carries either an ID token from a native client or an
// authorization code from the web flow. IDToken takes precedence.
type GoogleLogin struct {
	IDToken string
	Code    string
}

// AppleLogin carries an Apple identity token. Apple shares the user's name
// with the client only on first authorization, so names come from the
// request; the email always comes from the token.
type AppleLogin struct {
	IdentityToken string
	AppleID       string
	FirstName     string
	LastName      string
}

func (EmailPasswordLogin) loginRequest() {}
func (EmailOTPLogin) loginRequest()      {}
func (MobileOTPLogin) loginRequest()     {}
func (GoogleLogin) loginRequest()        {}
func (AppleLogin) loginRequest()         {}

// RegisterInput holds the fields of an email and password sign-up.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}
