// Package api contains the client-side contract for talking to the
// identity backend over HTTP.
//
// The package provides a transport-agnostic Client interface
// (Register/Login, Profile, UploadAvatar, Ping) and a concrete HTTP
// implementation that injects the bearer token into requests and maps
// response status codes to sentinel errors callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrRejected.
package api

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRejected     = errors.New("request rejected")
)

// RegisterResult mirrors the backend's registration outcome: either the
// account was created, or Reasons explains the rejection.
type RegisterResult struct {
	Succeeded bool     `json:"succeeded"`
	Reasons   []string `json:"reasons"`
}

// Profile is the authenticated account view returned by the backend.
type Profile struct {
	AccountID        string `json:"account_id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	AvatarURL        string `json:"avatar_url"`
	AvatarUploadedAt string `json:"avatar_uploaded_at"`
}

type Client interface {
	Register(ctx context.Context, username, email, password string) (RegisterResult, error)
	Login(ctx context.Context, username, password string) (string, error)
	Profile(ctx context.Context, token string) (*Profile, error)
	UploadAvatar(ctx context.Context, token, fileName string, body io.Reader, uploadedAt time.Time) (string, error)
	Ping(ctx context.Context) error
}
