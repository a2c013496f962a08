package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a row of the ledger_entries table. Every link column is
// nullable and set to NULL when its parent row is deleted.
type LedgerEntry struct {
	EntryID         string          `db:"entry_id"`
	EntryType       string          `db:"entry_type"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	EntryDate       time.Time       `db:"entry_date"`
	Status          string          `db:"status"`
	RejectionReason *string         `db:"rejection_reason"`
	MemberID        *string         `db:"member_id"`
	SlotID          *string         `db:"slot_id"`
	ProjectID       *string         `db:"project_id"`
	SemesterID      *string         `db:"semester_id"`
	EvidenceRef     *string         `db:"evidence_ref"`
	AuditFields
}
