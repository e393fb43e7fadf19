package model

// Package model contains domain models/data structures.
// These are pure domain types with no database-specific dependencies or tags
// beyond JSON serialization; they can be used across layers without coupling
// to persistence.

import "time"

// UserType is the authorization role carried on a user profile.
type UserType string

const (
	UserTypeClient     UserType = "CLIENT"
	UserTypeVendor     UserType = "VENDOR"
	UserTypeDriver     UserType = "DRIVER"
	UserTypeHelpdesk   UserType = "HELPDESK"
	UserTypeAdmin      UserType = "ADMIN"
	UserTypeSuperAdmin UserType = "SUPER_ADMIN"
)

// Valid reports whether t is a known user type.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeClient, UserTypeVendor, UserTypeDriver, UserTypeHelpdesk, UserTypeAdmin, UserTypeSuperAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the type may access admin read endpoints.
func (t UserType) IsStaff() bool {
	switch t {
	case UserTypeHelpdesk, UserTypeAdmin, UserTypeSuperAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the type may perform admin mutations.
func (t UserType) IsAdmin() bool {
	return t == UserTypeAdmin || t == UserTypeSuperAdmin
}

// User is the local profile joined to the external identity by AuthID.
type User struct {
	ID        string     `json:"id"`
	AuthID    string     `json:"auth_id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Type      UserType   `json:"type"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
