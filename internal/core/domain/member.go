package domain

// Role distinguishes club treasurers from ordinary members.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Member represents a registered person in the club.
type Member struct {
	MemberID     string `json:"memberID"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	RealName     string `json:"realName"`
	Department   string `json:"department"`
	Email        string `json:"email,omitempty"`
	Role         Role   `json:"role"`
	AuditFields
}

// IsAdmin reports whether the member holds the admin role.
func (m Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}
