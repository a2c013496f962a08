package dto

import (
	"time"

	"github.com/clubtreasury/treasury/internal/core/domain"
)

// CreateSemesterRequest defines the data needed to open a semester.
// Dates use the YYYY-MM-DD layout.
type CreateSemesterRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02"`
}

// UpdateSemesterRequest defines the editable fields of a semester.
// Changing dates does not regenerate slots.
type UpdateSemesterRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02"`
}

// SlotResponse defines the data returned for a weekly slot.
type SlotResponse struct {
	SlotID     string `json:"slotID"`
	WeekNumber int    `json:"weekNumber"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

// SemesterResponse defines the data returned for a semester.
type SemesterResponse struct {
	SemesterID string         `json:"semesterID"`
	Name       string         `json:"name"`
	StartDate  string         `json:"startDate"`
	EndDate    string         `json:"endDate"`
	IsActive   bool           `json:"isActive"`
	CreatedAt  time.Time      `json:"createdAt"`
	Slots      []SlotResponse `json:"slots,omitempty"`
}

// ToSlotResponse converts a domain.Slot to SlotResponse DTO
func ToSlotResponse(s domain.Slot) SlotResponse {
	return SlotResponse{
		SlotID:     s.SlotID,
		WeekNumber: s.WeekNumber,
		StartDate:  s.StartDate.Format(domain.DateLayout),
		EndDate:    s.EndDate.Format(domain.DateLayout),
	}
}

// ToSemesterResponse converts a domain.Semester and optionally its slots.
func ToSemesterResponse(s *domain.Semester, slots []domain.Slot) SemesterResponse {
	res := SemesterResponse{
		SemesterID: s.SemesterID,
		Name:       s.Name,
		StartDate:  s.StartDate.Format(domain.DateLayout),
		EndDate:    s.EndDate.Format(domain.DateLayout),
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt,
	}
	for _, slot := range slots {
		res.Slots = append(res.Slots, ToSlotResponse(slot))
	}
	return res
}

// ToListSemesterResponse converts semesters without their slots.
func ToListSemesterResponse(semesters []domain.Semester) []SemesterResponse {
	res := make([]SemesterResponse, len(semesters))
	for i := range semesters {
		res[i] = ToSemesterResponse(&semesters[i], nil)
	}
	return res
}
