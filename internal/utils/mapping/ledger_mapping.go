package mapping

import (
	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/clubtreasury/treasury/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to its row form
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:         d.EntryID,
		EntryType:       string(d.EntryType),
		Amount:          d.Amount,
		Description:     d.Description,
		EntryDate:       d.EntryDate,
		Status:          string(d.Status),
		RejectionReason: d.RejectionReason,
		MemberID:        d.MemberID,
		SlotID:          d.SlotID,
		ProjectID:       d.ProjectID,
		SemesterID:      d.SemesterID,
		EvidenceRef:     d.EvidenceRef,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a ledger row to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:         m.EntryID,
		EntryType:       domain.EntryType(m.EntryType),
		Amount:          m.Amount,
		Description:     m.Description,
		EntryDate:       domain.NormalizeDate(m.EntryDate),
		Status:          domain.EntryStatus(m.Status),
		RejectionReason: m.RejectionReason,
		MemberID:        m.MemberID,
		SlotID:          m.SlotID,
		ProjectID:       m.ProjectID,
		SemesterID:      m.SemesterID,
		EvidenceRef:     m.EvidenceRef,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts ledger rows to domain entries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
