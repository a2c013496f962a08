package mapping

import (
	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/clubtreasury/treasury/internal/models"
)

func ToModelSemester(d domain.Semester) models.Semester {
	return models.Semester{
		SemesterID:  d.SemesterID,
		Name:        d.Name,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainSemester(m models.Semester) domain.Semester {
	return domain.Semester{
		SemesterID:  m.SemesterID,
		Name:        m.Name,
		StartDate:   domain.NormalizeDate(m.StartDate),
		EndDate:     domain.NormalizeDate(m.EndDate),
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelSlot(d domain.Slot) models.WeeklySlot {
	return models.WeeklySlot{
		SlotID:     d.SlotID,
		SemesterID: d.SemesterID,
		WeekNumber: d.WeekNumber,
		StartDate:  d.StartDate,
		EndDate:    d.EndDate,
	}
}

func ToDomainSlot(m models.WeeklySlot) domain.Slot {
	return domain.Slot{
		SlotID:     m.SlotID,
		SemesterID: m.SemesterID,
		WeekNumber: m.WeekNumber,
		StartDate:  domain.NormalizeDate(m.StartDate),
		EndDate:    domain.NormalizeDate(m.EndDate),
	}
}
