package services

import (
	"context"

	"github.com/clubtreasury/treasury/internal/dto"
)

// AuthSvc issues session tokens.
type AuthSvc interface {
	// Login verifies a username and password and returns a signed JWT.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// LoginWithGoogle validates a Google ID token and signs in the matching member.
	LoginWithGoogle(ctx context.Context, req dto.GoogleLoginRequest) (*dto.LoginResponse, error)
}
