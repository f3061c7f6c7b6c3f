package domain

import "time"

// User is the domain model for an account on the platform. Base identity
// fields and the profile extension live on one flat struct.
type User struct {
	ID              string
	Username        string
	Email           string
	PasswordHash    string
	IsStaff         bool
	IsSuperuser     bool
	ProfilePhotoKey *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
