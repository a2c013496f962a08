package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/clubtreasury/treasury/internal/core/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/clubtreasury/treasury/internal/platform/config"
	"github.com/clubtreasury/treasury/internal/repositories/memory"
	"github.com/clubtreasury/treasury/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func authConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "treasury-test",
		GoogleClientID:    "client-123.apps.googleusercontent.com",
	}
}

func stubValidator(claims map[string]interface{}, err error) services.IDTokenValidator {
	return func(_ context.Context, idToken, audience string) (*idtoken.Payload, error) {
		if err != nil {
			return nil, err
		}
		return &idtoken.Payload{Audience: audience, Subject: idToken, Claims: claims}, nil
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	cfg := authConfig()
	members := services.NewMemberService(memory.NewStore(), "reset-1234")
	_, err := members.Register(ctx, dto.RegisterRequest{Username: "erin", Password: "secret1", RealName: "Erin"})
	require.NoError(t, err)

	auth := services.NewAuthService(cfg, members, stubValidator(nil, errors.New("unused")))

	res, err := auth.Login(ctx, dto.LoginRequest{Username: "erin", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "erin", res.Member.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)

	claims, err := utils.ParseAndValidateJWT(res.Token, cfg.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, res.Member.MemberID, claims.Subject)
	assert.Equal(t, string(domain.RoleMember), claims.Role)
	assert.Equal(t, "treasury-test", claims.Issuer)

	_, err = auth.Login(ctx, dto.LoginRequest{Username: "erin", Password: "nope-nope"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates member on first sign-in", func(t *testing.T) {
		members := services.NewMemberService(memory.NewStore(), "reset-1234")
		auth := services.NewAuthService(authConfig(), members, stubValidator(map[string]interface{}{
			"email":          "frank@example.com",
			"email_verified": true,
			"name":           "Frank Ocean",
		}, nil))

		first, err := auth.LoginWithGoogle(ctx, dto.GoogleLoginRequest{IDToken: "tok"})
		require.NoError(t, err)
		assert.Equal(t, "frank", first.Member.Username)
		assert.Equal(t, "Frank Ocean", first.Member.RealName)

		second, err := auth.LoginWithGoogle(ctx, dto.GoogleLoginRequest{IDToken: "tok"})
		require.NoError(t, err)
		assert.Equal(t, first.Member.MemberID, second.Member.MemberID)
	})

	t.Run("unverified email", func(t *testing.T) {
		members := services.NewMemberService(memory.NewStore(), "reset-1234")
		auth := services.NewAuthService(authConfig(), members, stubValidator(map[string]interface{}{
			"email":          "frank@example.com",
			"email_verified": false,
		}, nil))

		_, err := auth.LoginWithGoogle(ctx, dto.GoogleLoginRequest{IDToken: "tok"})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("invalid token", func(t *testing.T) {
		members := services.NewMemberService(memory.NewStore(), "reset-1234")
		auth := services.NewAuthService(authConfig(), members, stubValidator(nil, errors.New("bad audience")))

		_, err := auth.LoginWithGoogle(ctx, dto.GoogleLoginRequest{IDToken: "tok"})
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("not configured", func(t *testing.T) {
		cfg := authConfig()
		cfg.GoogleClientID = ""
		auth := services.NewAuthService(cfg, services.NewMemberService(memory.NewStore(), "reset-1234"), nil)

		_, err := auth.LoginWithGoogle(ctx, dto.GoogleLoginRequest{IDToken: "tok"})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}
