package domain

import (
	"github.com/shopspring/decimal"
)

// Balance is the aggregate of approved ledger entries.
type Balance struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"` // Income minus Expense
}

// ZeroBalance returns a balance with every field set to zero.
func ZeroBalance() Balance {
	return Balance{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero}
}

// LedgerFilter narrows ledger queries. Nil fields are not applied.
type LedgerFilter struct {
	SemesterID *string
	ProjectID  *string
	MemberID   *string
	SlotID     *string
	Type       *EntryType
	Status     *EntryStatus
}

// Matches reports whether e satisfies every set field of f.
func (f LedgerFilter) Matches(e LedgerEntry) bool {
	if f.SemesterID != nil && (e.SemesterID == nil || *e.SemesterID != *f.SemesterID) {
		return false
	}
	if f.ProjectID != nil && (e.ProjectID == nil || *e.ProjectID != *f.ProjectID) {
		return false
	}
	if f.MemberID != nil && (e.MemberID == nil || *e.MemberID != *f.MemberID) {
		return false
	}
	if f.SlotID != nil && (e.SlotID == nil || *e.SlotID != *f.SlotID) {
		return false
	}
	if f.Type != nil && e.EntryType != *f.Type {
		return false
	}
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	return true
}

// ApprovedOnly returns a copy of f restricted to approved entries.
func (f LedgerFilter) ApprovedOnly() LedgerFilter {
	approved := StatusApproved
	f.Status = &approved
	return f
}

// TreasuryPage is one page of the approved ledger, newest first.
type TreasuryPage struct {
	Entries   []LedgerEntry   `json:"entries"`
	TotalDues decimal.Decimal `json:"totalDues"` // Sum of approved dues under the same filter
	NextToken *string         `json:"nextToken,omitempty"`
}

// Dashboard summarises the treasury for the admin landing view.
type Dashboard struct {
	Balance          Balance   `json:"balance"`
	PendingDuesCount int       `json:"pendingDuesCount"`
	ActiveSemester   *Semester `json:"activeSemester,omitempty"`
	MemberCount      int       `json:"memberCount"`
}
