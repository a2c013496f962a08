package domain

import (
	"fmt"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
)

// DateLayout is the calendar date format used for semester and slot boundaries.
const DateLayout = "2006-01-02"

// slotDays is the length of a full weekly slot, inclusive of both ends.
const slotDays = 7

// Semester is a named accounting period divided into weekly dues slots.
type Semester struct {
	SemesterID string    `json:"semesterID"`
	Name       string    `json:"name"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	IsActive   bool      `json:"isActive"`
	AuditFields
}

// Slot is one week-long dues obligation window within a semester.
type Slot struct {
	SlotID     string    `json:"slotID"`
	SemesterID string    `json:"semesterID"`
	WeekNumber int       `json:"weekNumber"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
}

// Contains reports whether day falls inside the slot, both ends inclusive.
func (s Slot) Contains(day time.Time) bool {
	d := NormalizeDate(day)
	return !d.Before(s.StartDate) && !d.After(s.EndDate)
}

// NormalizeDate truncates t to midnight UTC of its calendar day.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, use YYYY-MM-DD", apperrors.ErrValidation, s)
	}
	return t, nil
}

// ValidateDateRange checks that a semester range is well formed.
func ValidateDateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", apperrors.ErrValidation)
	}
	if !NormalizeDate(start).Before(NormalizeDate(end)) {
		return fmt.Errorf("%w: start date must be before end date", apperrors.ErrValidation)
	}
	return nil
}

// GenerateSlots partitions [start, end] into consecutive seven-day slots.
// The final slot is clipped to end, week numbers start at 1, and every
// calendar day of the range belongs to exactly one slot. newID supplies
// slot identifiers.
func GenerateSlots(semesterID string, start, end time.Time, newID func() string) ([]Slot, error) {
	if err := ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	start, end = NormalizeDate(start), NormalizeDate(end)

	var slots []Slot
	week := 1
	for cursor := start; !cursor.After(end); week++ {
		weekEnd := cursor.AddDate(0, 0, slotDays-1)
		if weekEnd.After(end) {
			weekEnd = end
		}
		slots = append(slots, Slot{
			SlotID:     newID(),
			SemesterID: semesterID,
			WeekNumber: week,
			StartDate:  cursor,
			EndDate:    weekEnd,
		})
		cursor = weekEnd.AddDate(0, 0, 1)
	}
	return slots, nil
}
