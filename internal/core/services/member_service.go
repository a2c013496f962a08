package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/clubtreasury/treasury/internal/utils"
	"github.com/google/uuid"
)

const systemActor = "system"

var usernameDisallowed = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// memberService implements portssvc.MemberSvcFacade
type memberService struct {
	BaseService
	memberRepo           portsrepo.MemberRepositoryFacade
	defaultResetPassword string
}

// NewMemberService creates a member service. defaultResetPassword is what
// ResetPassword assigns.
func NewMemberService(repo portsrepo.MemberRepositoryFacade, defaultResetPassword string, opts ...ServiceOption) portssvc.MemberSvcFacade {
	return &memberService{
		BaseService:          newBaseService(opts...),
		memberRepo:           repo,
		defaultResetPassword: defaultResetPassword,
	}
}

func (s *memberService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Member, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || strings.TrimSpace(req.RealName) == "" {
		return nil, fmt.Errorf("%w: username and real name are required", apperrors.ErrValidation)
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	memberID := uuid.NewString()
	member := domain.Member{
		MemberID:     memberID,
		Username:     username,
		PasswordHash: hash,
		RealName:     strings.TrimSpace(req.RealName),
		Department:   strings.TrimSpace(req.Department),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Role:         domain.RoleMember,
		AuditFields:  domain.NewAuditFields(memberID, s.Now()),
	}
	if err := s.memberRepo.SaveMember(ctx, member); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save member", slog.String("username", username))
		}
		return nil, fmt.Errorf("failed to register member: %w", err)
	}

	s.LogInfo(ctx, "Member registered", slog.String("member_id", memberID))
	return &member, nil
}

func (s *memberService) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member %s: %w", memberID, err)
	}
	return member, nil
}

func (s *memberService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	members, err := s.memberRepo.ListMembersByRole(ctx, domain.RoleMember)
	if err != nil {
		s.LogError(ctx, err, "Failed to list members")
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (s *memberService) UpdateProfile(ctx context.Context, memberID string, req dto.UpdateProfileRequest) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to find member for update: %w", err)
	}

	if req.RealName != nil {
		name := strings.TrimSpace(*req.RealName)
		if name == "" {
			return nil, fmt.Errorf("%w: real name cannot be empty", apperrors.ErrValidation)
		}
		member.RealName = name
	}
	if req.Department != nil {
		member.Department = strings.TrimSpace(*req.Department)
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		member.PasswordHash = hash
	}
	member.Touch(memberID, s.Now())

	if err := s.memberRepo.UpdateMember(ctx, *member); err != nil {
		s.LogError(ctx, err, "Failed to update member", slog.String("member_id", memberID))
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	return member, nil
}

// findNonAdmin loads a member that an admin may act on.
func (s *memberService) findNonAdmin(ctx context.Context, memberID string) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to find member %s: %w", memberID, err)
	}
	if member.IsAdmin() {
		return nil, fmt.Errorf("%w: admin accounts cannot be modified from the roster", apperrors.ErrConflict)
	}
	return member, nil
}

func (s *memberService) ResetPassword(ctx context.Context, memberID string, adminID string) error {
	member, err := s.findNonAdmin(ctx, memberID)
	if err != nil {
		return err
	}
	hash, err := utils.HashPassword(s.defaultResetPassword)
	if err != nil {
		s.LogError(ctx, err, "Configured reset password is unusable")
		return fmt.Errorf("failed to hash reset password: %w", err)
	}
	member.PasswordHash = hash
	member.Touch(adminID, s.Now())
	if err := s.memberRepo.UpdateMember(ctx, *member); err != nil {
		s.LogError(ctx, err, "Failed to reset password", slog.String("member_id", memberID))
		return fmt.Errorf("failed to reset password: %w", err)
	}
	s.LogInfo(ctx, "Password reset", slog.String("member_id", memberID), slog.String("admin_id", adminID))
	return nil
}

func (s *memberService) DeleteMember(ctx context.Context, memberID string, adminID string) error {
	if _, err := s.findNonAdmin(ctx, memberID); err != nil {
		return err
	}
	if err := s.memberRepo.DeleteMember(ctx, memberID); err != nil {
		s.LogError(ctx, err, "Failed to delete member", slog.String("member_id", memberID))
		return fmt.Errorf("failed to delete member: %w", err)
	}
	s.LogInfo(ctx, "Member deleted", slog.String("member_id", memberID), slog.String("admin_id", adminID))
	return nil
}

func (s *memberService) EnsureBootstrapAdmin(ctx context.Context, username, password string) error {
	count, err := s.memberRepo.CountMembersByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}
	if username == "" || password == "" {
		s.GetLogger(ctx).Warn("No admin exists and no bootstrap credentials are configured")
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("bootstrap admin password: %w", err)
	}
	admin := domain.Member{
		MemberID:     uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		RealName:     "Administrator",
		Role:         domain.RoleAdmin,
		AuditFields:  domain.NewAuditFields(systemActor, s.Now()),
	}
	if err := s.memberRepo.SaveMember(ctx, admin); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	s.LogInfo(ctx, "Bootstrap admin created", slog.String("username", username))
	return nil
}

func (s *memberService) AuthenticateMember(ctx context.Context, username, password string) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}
	if !utils.CheckPasswordHash(password, member.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return member, nil
}

func (s *memberService) FindOrCreateByEmail(ctx context.Context, email, realName string) (*domain.Member, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	member, err := s.memberRepo.FindMemberByEmail(ctx, email)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up member by email: %w", err)
	}

	// Google accounts never log in by password, so the hash guards a random secret.
	secret, err := utils.RandomHex(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate placeholder password: %w", err)
	}
	hash, err := utils.HashPassword(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}
	if strings.TrimSpace(realName) == "" {
		realName = email
	}
	base := usernameDisallowed.ReplaceAllString(strings.SplitN(email, "@", 2)[0], "")
	if len(base) < 3 {
		base = "member"
	}

	memberID := uuid.NewString()
	created := domain.Member{
		MemberID:     memberID,
		Username:     base,
		PasswordHash: hash,
		RealName:     realName,
		Email:        email,
		Role:         domain.RoleMember,
		AuditFields:  domain.NewAuditFields(memberID, s.Now()),
	}
	for attempt := 0; attempt < 3; attempt++ {
		err = s.memberRepo.SaveMember(ctx, created)
		if !errors.Is(err, apperrors.ErrDuplicate) {
			break
		}
		suffix, rerr := utils.RandomHex(2)
		if rerr != nil {
			return nil, fmt.Errorf("failed to generate username suffix: %w", rerr)
		}
		created.Username = base + suffix
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to create member from Google account")
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	s.LogInfo(ctx, "Member registered via Google", slog.String("member_id", memberID))
	return &created, nil
}
