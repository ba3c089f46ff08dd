package domain

import "time"

// Session is the decoded content of a signed session cookie. It is never
// persisted server-side; all of it round-trips through the client.
type Session struct {
	Id          string // jti, used by the active-session tracker
	Username    Username
	DisplayName DisplayName
	IssuedAt    time.Time
	ExpiresAt   time.Time
}
