package model

import "time"

// UploadErrorType classifies where a failed upload attempt broke down.
type UploadErrorType string

const (
	UploadErrorValidation UploadErrorType = "validation"
	UploadErrorStorage    UploadErrorType = "storage"
	UploadErrorDatabase   UploadErrorType = "database"
	UploadErrorNetwork    UploadErrorType = "network"
)

// Valid reports whether t is a known upload error type.
func (t UploadErrorType) Valid() bool {
	switch t {
	case UploadErrorValidation, UploadErrorStorage, UploadErrorDatabase, UploadErrorNetwork:
		return true
	}
	return false
}

// UploadError is a structured record of a failed file upload attempt.
type UploadError struct {
	ID           string          `json:"id"`
	SessionToken string          `json:"session_token,omitempty"`
	FileName     string          `json:"file_name"`
	ErrorType    UploadErrorType `json:"error_type"`
	Message      string          `json:"message"`
	Retryable    bool            `json:"retryable"`
	Resolved     bool            `json:"resolved"`
	IP           string          `json:"-"`
	UserAgent    string          `json:"user_agent"`
	CreatedAt    time.Time       `json:"created_at"`
}
