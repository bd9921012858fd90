package domain

import "time"

// DeviceInfo is the fingerprint derived from the caller's User-Agent.
type DeviceInfo struct {
	OS             string `json:"os"`
	OSVersion      string `json:"os_version"`
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browser_version"`
	Device         string `json:"device"`
	IsMobile       bool   `json:"is_mobile"`
	IsTablet       bool   `json:"is_tablet"`
	IsPC           bool   `json:"is_pc"`
	IsBot          bool   `json:"is_bot"`
}

// ClientInfo describes where a login came from.
type ClientInfo struct {
	Device    DeviceInfo
	IPAddress string
}

// SessionRecord is a persisted session or refresh token. Only the token
// fingerprint is stored.
type SessionRecord struct {
	ID         string
	UserID     string
	TokenHash  string
	DeviceInfo DeviceInfo
	IPAddress  string
	CreatedAt  time.Time
}

// IssuedSession is the result of a completed login.
type IssuedSession struct {
	Profile      Profile
	SessionToken string
	RefreshToken string
}
