package model

import "time"

// ApplicationSession is a short-lived, rate-limited token scoping anonymous
// file uploads to a single job-application flow.
type ApplicationSession struct {
	ID          string    `json:"id"`
	Token       string    `json:"token"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	IP          string    `json:"-"`
	UploadCount int       `json:"upload_count"`
	MaxUploads  int       `json:"max_uploads"`
	Completed   bool      `json:"completed"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Expired reports whether the session expiry has passed at the given instant.
func (s ApplicationSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
