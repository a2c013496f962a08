package dto

import (
	"io"
	"time"

	"github.com/clubtreasury/treasury/internal/core/domain"
)

// Upload is an evidence file received with a request.
type Upload struct {
	Filename string
	Content  io.Reader
}

// SubmitDuesRequest holds the form fields of a dues payment. The transfer
// slip arrives as the multipart file "slip".
type SubmitDuesRequest struct {
	Amount string `form:"amount" binding:"required"`
}

// ManualTransactionRequest defines an admin-recorded donation or expense.
type ManualTransactionRequest struct {
	EntryType   domain.EntryType `form:"entryType" json:"entryType" binding:"required,manualentrytype"`
	Amount      string           `form:"amount" json:"amount" binding:"required"`
	Description string           `form:"description" json:"description" binding:"required,max=255"`
	EntryDate   string           `form:"entryDate" json:"entryDate" binding:"omitempty,datetime=2006-01-02"` // Defaults to today
	ProjectID   *string          `form:"projectID" json:"projectID" binding:"omitempty,uuid"`
}

// ManualDuesRequest defines dues an admin records on behalf of a member.
type ManualDuesRequest struct {
	MemberID    string `json:"memberID" binding:"required,uuid"`
	SlotID      string `json:"slotID" binding:"required,uuid"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"max=255"`
}

// RejectEntryRequest carries the reason shown to the member.
type RejectEntryRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID         string             `json:"entryID"`
	EntryType       domain.EntryType   `json:"entryType"`
	Amount          string             `json:"amount"`
	Description     string             `json:"description"`
	EntryDate       string             `json:"entryDate"`
	Status          domain.EntryStatus `json:"status"`
	RejectionReason *string            `json:"rejectionReason,omitempty"`
	MemberID        *string            `json:"memberID,omitempty"`
	SlotID          *string            `json:"slotID,omitempty"`
	ProjectID       *string            `json:"projectID,omitempty"`
	SemesterID      *string            `json:"semesterID,omitempty"`
	EvidenceRef     *string            `json:"evidenceRef,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:         e.EntryID,
		EntryType:       e.EntryType,
		Amount:          e.Amount.StringFixed(2),
		Description:     e.Description,
		EntryDate:       e.EntryDate.Format(domain.DateLayout),
		Status:          e.Status,
		RejectionReason: e.RejectionReason,
		MemberID:        e.MemberID,
		SlotID:          e.SlotID,
		ProjectID:       e.ProjectID,
		SemesterID:      e.SemesterID,
		EvidenceRef:     e.EvidenceRef,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToListLedgerEntryResponse converts a slice of entries.
func ToListLedgerEntryResponse(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToLedgerEntryResponse(&entries[i])
	}
	return res
}
