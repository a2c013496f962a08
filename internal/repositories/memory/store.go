// Package memory is an in-process implementation of every repository port.
// It applies the same deletion policy as the postgres schema and serialises
// all access with one mutex.
package memory

import (
	"sync"

	"github.com/clubtreasury/treasury/internal/core/domain"
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
)

// Store holds every table in maps keyed by id.
type Store struct {
	mu sync.RWMutex

	members       map[string]domain.Member
	semesters     map[string]domain.Semester
	slots         map[string]domain.Slot
	projects      map[string]domain.Project
	entries       map[string]domain.LedgerEntry
	announcements map[string]domain.Announcement
	events        map[string]domain.Event
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		members:       map[string]domain.Member{},
		semesters:     map[string]domain.Semester{},
		slots:         map[string]domain.Slot{},
		projects:      map[string]domain.Project{},
		entries:       map[string]domain.LedgerEntry{},
		announcements: map[string]domain.Announcement{},
		events:        map[string]domain.Event{},
	}
}

// NewRepositoryProvider wires one store behind every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MemberRepo:    store,
		SemesterRepo:  store,
		ProjectRepo:   store,
		LedgerRepo:    store,
		ReportingRepo: store,
		ContentRepo:   store,
	}
}

var (
	_ portsrepo.MemberRepositoryFacade   = (*Store)(nil)
	_ portsrepo.SemesterRepositoryFacade = (*Store)(nil)
	_ portsrepo.ProjectRepositoryFacade  = (*Store)(nil)
	_ portsrepo.LedgerRepositoryFacade   = (*Store)(nil)
	_ portsrepo.ReportingRepository      = (*Store)(nil)
	_ portsrepo.ContentRepositoryFacade  = (*Store)(nil)
)

// detach nulls every ledger link for which match reports true.
func (s *Store) detach(match func(e *domain.LedgerEntry) bool, clear func(e *domain.LedgerEntry)) {
	for id, e := range s.entries {
		if match(&e) {
			clear(&e)
			s.entries[id] = e
		}
	}
}

func eq(p *string, v string) bool {
	return p != nil && *p == v
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneEntry copies pointer fields so callers cannot mutate stored rows.
func cloneEntry(e domain.LedgerEntry) domain.LedgerEntry {
	e.RejectionReason = clonePtr(e.RejectionReason)
	e.MemberID = clonePtr(e.MemberID)
	e.SlotID = clonePtr(e.SlotID)
	e.ProjectID = clonePtr(e.ProjectID)
	e.SemesterID = clonePtr(e.SemesterID)
	e.EvidenceRef = clonePtr(e.EvidenceRef)
	return e
}
