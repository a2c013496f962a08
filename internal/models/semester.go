package models

import "time"

// Semester is a row of the semesters table.
type Semester struct {
	SemesterID string    `db:"semester_id"`
	Name       string    `db:"name"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	IsActive   bool      `db:"is_active"`
	AuditFields
}

// WeeklySlot is a row of the weekly_slots table.
type WeeklySlot struct {
	SlotID     string    `db:"slot_id"`
	SemesterID string    `db:"semester_id"` // FK, ON DELETE CASCADE
	WeekNumber int       `db:"week_number"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
}
