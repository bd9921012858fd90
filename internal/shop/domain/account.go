package domain

import "time"

// Profile is the public view of an account returned after a successful login.
type Profile struct {
	UserID          string
	Username        string
	Discriminator   int
	LanguageISO     string
	IsEmailVerified bool
	CreatedAt       time.Time
	LastLoginAt     *time.Time
}

// Handle renders "username#0042".
func (p Profile) Handle() string {
	return FormatHandle(p.Username, p.Discriminator)
}

// NewAccount is everything needed to turn a pending registration into an account.
type NewAccount struct {
	RegistrationTokenHash string // fingerprint of the confirmation token
	Username              string // sanitised
	Discriminator         int    // 0..9999
	PasswordHash          string // argon2id PHC string
	LanguageID            *int   // optional preferred language
	OTPSecret             string // base32 TOTP secret, not yet enabled
}

// PendingRegistration is created when an email address asks for a confirmation link.
type PendingRegistration struct {
	EmailEncrypted string // AES-GCM, base64
	EmailHash      string // hex sha256 of the normalised email
	TokenHash      string // fingerprint of the confirmation token
	ExpiresAt      time.Time
}
