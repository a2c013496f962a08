package memory

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/clubtreasury/treasury/internal/utils/accounting"
	"github.com/clubtreasury/treasury/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

func (s *Store) FindEntryByID(_ context.Context, entryID string) (*domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[entryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	e = cloneEntry(e)
	return &e, nil
}

func (s *Store) matching(filter domain.LedgerFilter) []domain.LedgerEntry {
	out := []domain.LedgerEntry{}
	for _, e := range s.entries {
		if filter.Matches(e) {
			out = append(out, cloneEntry(e))
		}
	}
	return out
}

func (s *Store) ListEntries(_ context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.matching(filter)
	sort.Slice(out, func(i, j int) bool { return out[j].NewerThan(out[i]) })
	return out, nil
}

func olderThanCursor(e domain.LedgerEntry, cur pagination.Cursor) bool {
	return domain.LedgerEntry{
		EntryID:     cur.EntryID,
		EntryDate:   cur.EntryDate,
		AuditFields: domain.AuditFields{CreatedAt: cur.CreatedAt},
	}.NewerThan(e)
}

func (s *Store) ListEntriesPage(_ context.Context, filter domain.LedgerFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	limit = pagination.NormalizeLimit(limit)

	var cur *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		cur = &c
	}

	s.mu.RLock()
	all := s.matching(filter)
	s.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].NewerThan(all[j]) })

	page := make([]domain.LedgerEntry, 0, limit)
	var next *string
	for _, e := range all {
		if cur != nil && !olderThanCursor(e, *cur) {
			continue
		}
		if len(page) == limit {
			last := page[limit-1]
			token := pagination.EncodeToken(last.EntryDate, last.CreatedAt, last.EntryID)
			next = &token
			break
		}
		page = append(page, e)
	}
	return page, next, nil
}

func (s *Store) findOpenDuesLocked(memberID, slotID string) *domain.LedgerEntry {
	var found *domain.LedgerEntry
	for _, e := range s.entries {
		if e.IsOpenDues() && eq(e.MemberID, memberID) && eq(e.SlotID, slotID) {
			if found == nil || e.NewerThan(*found) {
				c := cloneEntry(e)
				found = &c
			}
		}
	}
	return found
}

func (s *Store) FindOpenDues(_ context.Context, memberID, slotID string) (*domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e := s.findOpenDuesLocked(memberID, slotID); e != nil {
		return e, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) ListEvidenceRefs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]bool{}
	out := []string{}
	for _, e := range s.entries {
		if e.EvidenceRef != nil && !seen[*e.EvidenceRef] {
			seen[*e.EvidenceRef] = true
			out = append(out, *e.EvidenceRef)
		}
	}
	return out, nil
}

func (s *Store) checkLinks(e domain.LedgerEntry) error {
	missing := func(what string) error {
		return fmt.Errorf("%w: referenced %s no longer exists", apperrors.ErrNotFound, what)
	}
	if e.MemberID != nil {
		if _, ok := s.members[*e.MemberID]; !ok {
			return missing("member")
		}
	}
	if e.SlotID != nil {
		if _, ok := s.slots[*e.SlotID]; !ok {
			return missing("slot")
		}
	}
	if e.ProjectID != nil {
		if _, ok := s.projects[*e.ProjectID]; !ok {
			return missing("project")
		}
	}
	if e.SemesterID != nil {
		if _, ok := s.semesters[*e.SemesterID]; !ok {
			return missing("semester")
		}
	}
	return nil
}

func (s *Store) CreateEntry(_ context.Context, entry domain.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.EntryID]; ok {
		return fmt.Errorf("%w: entry %s", apperrors.ErrDuplicate, entry.EntryID)
	}
	if err := s.checkLinks(entry); err != nil {
		return err
	}
	if entry.IsOpenDues() && s.findOpenDuesLocked(*entry.MemberID, *entry.SlotID) != nil {
		return fmt.Errorf("%w: dues for this week were already submitted", apperrors.ErrConflict)
	}
	s.entries[entry.EntryID] = cloneEntry(entry)
	return nil
}

func (s *Store) TransitionStatus(_ context.Context, entryID string, from, to domain.EntryStatus, reason *string, updatedBy string, updatedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[entryID]
	if !ok || e.Status != from {
		return false, nil
	}
	e.Status = to
	e.RejectionReason = clonePtr(reason)
	e.Touch(updatedBy, updatedAt)
	s.entries[entryID] = e
	return true, nil
}

func (s *Store) DeleteEntry(_ context.Context, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entryID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.entries, entryID)
	return nil
}

func (s *Store) SumBalance(_ context.Context, filter domain.LedgerFilter) (domain.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return accounting.SummarizeEntries(s.matching(filter.ApprovedOnly())), nil
}

func (s *Store) SumDues(_ context.Context, filter domain.LedgerFilter) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return accounting.SumDues(s.matching(filter)), nil
}

func (s *Store) CountEntries(_ context.Context, filter domain.LedgerFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matching(filter)), nil
}
