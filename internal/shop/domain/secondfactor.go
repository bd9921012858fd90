package domain

import "time"

// SecondFactorMethod names a configured second factor. Only TOTP is verifiable today.
type SecondFactorMethod string

const (
	MethodTOTP SecondFactorMethod = "TOTP"
)

// SecondFactorMethodInfo is one configured method of an account.
type SecondFactorMethodInfo struct {
	Method      SecondFactorMethod
	IsPreferred bool
}

// SecondFactorChallenge is the pending state between a correct password and
// a correct second factor code. It is keyed by an opaque random token.
type SecondFactorChallenge struct {
	Token     string
	EmailHash string
	ExpiresAt time.Time
	Attempts  int
}

// Expired reports whether the challenge is no longer usable at now.
// A challenge expiring exactly at now is expired.
func (c SecondFactorChallenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// TOTPEnrollment is returned when a user starts enabling TOTP.
type TOTPEnrollment struct {
	Secret  string // base32 encoded
	URL     string // otpauth:// URL for QR code generation
	Issuer  string
	Account string
}
