package mapping

import (
	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/clubtreasury/treasury/internal/models"
)

// ToModelMember converts a domain Member to a model Member
func ToModelMember(d domain.Member) models.Member {
	return models.Member{
		MemberID:     d.MemberID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		RealName:     d.RealName,
		Department:   d.Department,
		Email:        domain.StringPtr(d.Email),
		Role:         string(d.Role),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMember converts a model Member to a domain Member
func ToDomainMember(m models.Member) domain.Member {
	d := domain.Member{
		MemberID:     m.MemberID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		RealName:     m.RealName,
		Department:   m.Department,
		Role:         domain.Role(m.Role),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.Email != nil {
		d.Email = *m.Email
	}
	return d
}

// ToDomainMemberSlice converts a slice of model Members to domain Members
func ToDomainMemberSlice(ms []models.Member) []domain.Member {
	ds := make([]domain.Member, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMember(m)
	}
	return ds
}
