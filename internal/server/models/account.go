// Package models contains the data structures shared by the identity
// services and repositories.
package models

import "time"

// Account is a persisted user identity. ID is assigned by the credential
// store at creation and never changes. AvatarKey and AvatarUploadedAt are
// optional profile fields set through the profile update service.
type Account struct {
	ID               string
	UserName         string
	Email            string
	PasswordHash     string
	AvatarKey        string
	AvatarUploadedAt *time.Time
	CreatedAt        time.Time
}
