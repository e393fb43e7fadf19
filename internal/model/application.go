package model

import "time"

// ApplicationStatus is the review state of a job application.
type ApplicationStatus string

const (
	ApplicationStatusPending      ApplicationStatus = "pending"
	ApplicationStatusApproved     ApplicationStatus = "approved"
	ApplicationStatusRejected     ApplicationStatus = "rejected"
	ApplicationStatusInterviewing ApplicationStatus = "interviewing"
)

// Valid reports whether s is a known application status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected, ApplicationStatusInterviewing:
		return true
	}
	return false
}

// JobApplication represents an applicant submission.
type JobApplication struct {
	ID             string            `json:"id"`
	SessionToken   string            `json:"session_token,omitempty"`
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Position       string            `json:"position"`
	Address        string            `json:"address"`
	Education      string            `json:"education"`
	WorkExperience string            `json:"work_experience"`
	Skills         string            `json:"skills"`
	Status         ApplicationStatus `json:"status"`
	DeletedAt      *time.Time        `json:"deleted_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// FileCategory classifies an uploaded application file.
type FileCategory string

const (
	FileCategoryResume    FileCategory = "resume"
	FileCategoryLicense   FileCategory = "license"
	FileCategoryInsurance FileCategory = "insurance"
	FileCategoryPhoto     FileCategory = "photo"
)

// Valid reports whether c is a known file category.
func (c FileCategory) Valid() bool {
	switch c {
	case FileCategoryResume, FileCategoryLicense, FileCategoryInsurance, FileCategoryPhoto:
		return true
	}
	return false
}

// ApplicationFile is the metadata record for a stored upload.
type ApplicationFile struct {
	ID            string       `json:"id"`
	ApplicationID string       `json:"application_id,omitempty"`
	SessionToken  string       `json:"session_token"`
	Category      FileCategory `json:"category"`
	StoragePath   string       `json:"storage_path"`
	Filename      string       `json:"filename"`
	Size          int64        `json:"size"`
	ContentType   string       `json:"content_type"`
	CreatedAt     time.Time    `json:"created_at"`
}
