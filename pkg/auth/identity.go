package auth

// Kind is the type of proof a sign-in presented.
type Kind string

const (
	KindEmailPassword Kind = "email_password"
	KindEmailOTP      Kind = "email_otp"
	KindMobileOTP     Kind = "mobile_otp"
	KindGoogle        Kind = "google"
	KindApple         Kind = "apple"
)

// Provider returns the account provider recorded for users created by k.
func (k Kind) Provider() Provider {
	switch k {
	case KindMobileOTP:
		return ProviderMobile
	case KindGoogle:
		return ProviderGoogle
	case KindApple:
		return ProviderApple
	default:
		return ProviderEmail
	}
}

// Identity is a verified claim about who is signing in. Fields a proof does
// not carry are left empty.
type Identity struct {
	Kind          Kind
	Email         string
	Mobile        string
	SubjectID     string // Google or Apple subject
	FirstName     string
	LastName      string
	Picture       string
	EmailVerified bool
}

// ProviderProfile is what an external identity provider asserted.
type ProviderProfile struct {
	Provider      Provider
	Subject       string
	Email         string
	EmailVerified bool
	FirstName     string
	LastName      string
	Picture       string
}

// Identity converts the profile into a resolver input.
func (p ProviderProfile) Identity() Identity {
	kind := KindGoogle
	if p.Provider == ProviderApple {
		kind = KindApple
	}
	return Identity{
		Kind:          kind,
		Email:         p.Email,
		SubjectID:     p.Subject,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Picture:       p.Picture,
		EmailVerified: p.EmailVerified,
	}
}
