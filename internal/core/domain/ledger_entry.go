package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryType classifies a ledger entry.
type EntryType string

const (
	EntryIncomeDues     EntryType = "income_dues"
	EntryIncomeDonation EntryType = "income_donation"
	EntryExpense        EntryType = "expense"
)

// IsValid reports whether t is a known entry type.
func (t EntryType) IsValid() bool {
	switch t {
	case EntryIncomeDues, EntryIncomeDonation, EntryExpense:
		return true
	}
	return false
}

// IsIncome reports whether entries of this type add to the balance.
func (t EntryType) IsIncome() bool {
	return strings.HasPrefix(string(t), "income")
}

// IsManual reports whether an admin may record this type directly.
func (t EntryType) IsManual() bool {
	return t == EntryIncomeDonation || t == EntryExpense
}

// EntryStatus is the approval state of a ledger entry.
type EntryStatus string

const (
	StatusPending  EntryStatus = "pending"
	StatusApproved EntryStatus = "approved"
	StatusRejected EntryStatus = "rejected"
)

// IsValid reports whether s is a known status.
func (s EntryStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// LedgerEntry is a single financial transaction in the club treasury.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`                   // Primary Key (UUID)
	EntryType       EntryType       `json:"entryType"`                 // income_dues, income_donation or expense
	Amount          decimal.Decimal `json:"amount"`                    // Never negative
	Description     string          `json:"description"`
	EntryDate       time.Time       `json:"entryDate"`                 // Calendar date of the transaction
	Status          EntryStatus     `json:"status"`                    // pending, approved or rejected
	RejectionReason *string         `json:"rejectionReason,omitempty"` // Set only when rejected
	MemberID        *string         `json:"memberID,omitempty"`        // Payer, nulled when the member is deleted
	SlotID          *string         `json:"slotID,omitempty"`          // Dues week, nulled when the slot is deleted
	ProjectID       *string         `json:"projectID,omitempty"`       // Cost center, nulled when the project is deleted
	SemesterID      *string         `json:"semesterID,omitempty"`      // Accounting period, nulled when the semester is deleted
	EvidenceRef     *string         `json:"evidenceRef,omitempty"`     // Opaque handle into the evidence store
	AuditFields
}

// Validate checks the structural invariants of a new entry.
func (e LedgerEntry) Validate() error {
	if !e.EntryType.IsValid() {
		return fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, e.EntryType)
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if !e.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, e.Status)
	}
	if e.EntryType == EntryIncomeDues {
		if e.SlotID == nil || e.MemberID == nil {
			return fmt.Errorf("%w: dues entries need a member and a slot", apperrors.ErrValidation)
		}
		if e.ProjectID != nil {
			return fmt.Errorf("%w: dues entries cannot belong to a project", apperrors.ErrValidation)
		}
	}
	return nil
}

// IsApproved reports whether the entry counts toward balances and reports.
func (e LedgerEntry) IsApproved() bool {
	return e.Status == StatusApproved
}

// IsOpenDues reports whether the entry is a dues payment that still settles its slot.
func (e LedgerEntry) IsOpenDues() bool {
	return e.EntryType == EntryIncomeDues && (e.Status == StatusPending || e.Status == StatusApproved)
}

// Approve moves a pending entry to approved. It returns false without error
// when the entry is already approved.
func (e *LedgerEntry) Approve(actorID string, now time.Time) (bool, error) {
	switch e.Status {
	case StatusApproved:
		return false, nil
	case StatusRejected:
		return false, fmt.Errorf("%w: entry %s was rejected", apperrors.ErrConflict, e.EntryID)
	}
	e.Status = StatusApproved
	e.RejectionReason = nil
	e.Touch(actorID, now)
	return true, nil
}

// Reject moves a pending entry to rejected with a reason. Approved entries
// are final. It returns false without error when already rejected.
func (e *LedgerEntry) Reject(reason, actorID string, now time.Time) (bool, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return false, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}
	switch e.Status {
	case StatusRejected:
		return false, nil
	case StatusApproved:
		return false, fmt.Errorf("%w: entry %s is already approved", apperrors.ErrConflict, e.EntryID)
	}
	e.Status = StatusRejected
	e.RejectionReason = &reason
	e.Touch(actorID, now)
	return true, nil
}

// NewerThan orders entries by date, then creation time, then id.
func (e LedgerEntry) NewerThan(o LedgerEntry) bool {
	if !e.EntryDate.Equal(o.EntryDate) {
		return e.EntryDate.After(o.EntryDate)
	}
	if !e.CreatedAt.Equal(o.CreatedAt) {
		return e.CreatedAt.After(o.CreatedAt)
	}
	return e.EntryID > o.EntryID
}

// DuesDescription is the default description for a dues payment.
func DuesDescription(weekNumber int) string {
	return fmt.Sprintf("Week %d Dues", weekNumber)
}
