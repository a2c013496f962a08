package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/clubtreasury/treasury/internal/platform/config"
	"github.com/clubtreasury/treasury/internal/utils"
	"google.golang.org/api/idtoken"
)

// IDTokenValidator checks a Google ID token for the given audience.
type IDTokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// authService implements portssvc.AuthSvc on top of the member service.
type authService struct {
	BaseService
	cfg            *config.Config
	members        portssvc.MemberSvcFacade
	validateGoogle IDTokenValidator
}

// NewAuthService creates an auth service signing tokens with cfg's JWT
// settings. A nil validator selects idtoken.Validate.
func NewAuthService(cfg *config.Config, members portssvc.MemberSvcFacade, validator IDTokenValidator, opts ...ServiceOption) portssvc.AuthSvc {
	if validator == nil {
		validator = idtoken.Validate
	}
	return &authService{
		BaseService:    newBaseService(opts...),
		cfg:            cfg,
		members:        members,
		validateGoogle: validator,
	}
}

func (s *authService) issue(member *domain.Member) (*dto.LoginResponse, error) {
	expiresAt := s.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(member.MemberID, string(member.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Member:    dto.ToMemberResponse(member),
	}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	member, err := s.members.AuthenticateMember(ctx, req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUnauthorized) {
			s.LogError(ctx, err, "Login lookup failed")
		}
		return nil, err
	}
	res, err := s.issue(member)
	if err != nil {
		s.LogError(ctx, err, "Failed to issue token", slog.String("member_id", member.MemberID))
		return nil, err
	}
	s.LogInfo(ctx, "Member logged in", slog.String("member_id", member.MemberID))
	return res, nil
}

func (s *authService) LoginWithGoogle(ctx context.Context, req dto.GoogleLoginRequest) (*dto.LoginResponse, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, fmt.Errorf("%w: google sign-in is not configured", apperrors.ErrForbidden)
	}
	payload, err := s.validateGoogle(ctx, req.IDToken, s.cfg.GoogleClientID)
	if err != nil {
		s.GetLogger(ctx).Warn("Google ID token rejected", slog.String("error", err.Error()))
		return nil, apperrors.ErrUnauthorized
	}

	email, _ := payload.Claims["email"].(string)
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, fmt.Errorf("%w: google email is not verified", apperrors.ErrUnauthorized)
	}
	name, _ := payload.Claims["name"].(string)

	member, err := s.members.FindOrCreateByEmail(ctx, email, name)
	if err != nil {
		return nil, err
	}
	return s.issue(member)
}
