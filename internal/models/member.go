package models

// Member is a row of the members table.
type Member struct {
	MemberID     string  `db:"member_id"`
	Username     string  `db:"username"`
	PasswordHash string  `db:"password_hash"`
	RealName     string  `db:"real_name"`
	Department   string  `db:"department"`
	Email        *string `db:"email"` // Unique when set
	Role         string  `db:"role"`
	AuditFields
}
