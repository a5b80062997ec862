package models

import "time"

// Session binds a user to an opaque access token for a validity window.
// A session does not own its user; UserID is a lookup reference only.
type Session struct {
	UserID      string
	AccessToken string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// ValidAt reports whether the session is still usable at t.
func (s *Session) ValidAt(t time.Time) bool {
	return !t.After(s.ExpiresAt)
}
