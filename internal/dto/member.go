package dto

import (
	"time"

	"github.com/clubtreasury/treasury/internal/core/domain"
)

// RegisterRequest defines the data needed to sign up as a club member.
type RegisterRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=50,alphanum"`
	Password   string `json:"password" binding:"required,min=6,max=72"`
	RealName   string `json:"realName" binding:"required,max=100"`
	Department string `json:"department" binding:"max=100"`
	Email      string `json:"email" binding:"omitempty,email"`
}

// LoginRequest defines the credentials for password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries an ID token obtained by the client from Google Sign-In.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// UpdateProfileRequest defines the fields a member may change on their own profile.
// Pointers distinguish omitted fields from empty ones.
type UpdateProfileRequest struct {
	RealName   *string `json:"realName" binding:"omitempty,min=1,max=100"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Password   *string `json:"password" binding:"omitempty,min=6,max=72"`
}

// MemberResponse defines the data returned for a member.
type MemberResponse struct {
	MemberID   string      `json:"memberID"`
	Username   string      `json:"username"`
	RealName   string      `json:"realName"`
	Department string      `json:"department"`
	Email      string      `json:"email,omitempty"`
	Role       domain.Role `json:"role"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// ToMemberResponse converts a domain.Member to MemberResponse DTO
func ToMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		MemberID:   m.MemberID,
		Username:   m.Username,
		RealName:   m.RealName,
		Department: m.Department,
		Email:      m.Email,
		Role:       m.Role,
		CreatedAt:  m.CreatedAt,
	}
}

// ListMembersResponse wraps the member roster.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}

// ToListMembersResponse converts a slice of domain.Member to ListMembersResponse
func ToListMembersResponse(members []domain.Member) ListMembersResponse {
	res := make([]MemberResponse, len(members))
	for i := range members {
		res[i] = ToMemberResponse(&members[i])
	}
	return ListMembersResponse{Members: res}
}
