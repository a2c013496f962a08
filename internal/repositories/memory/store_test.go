package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *Store
	now   time.Time
	slots []domain.Slot
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewStore()
	s.now = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(s.T(), s.store.SaveMember(s.ctx, domain.Member{MemberID: "m1", Username: "alice", Role: domain.RoleMember}))
	require.NoError(s.T(), s.store.SaveProject(s.ctx, domain.Project{ProjectID: "p1", Name: "Camp", Status: domain.ProjectActive}))

	n := 0
	slots, err := domain.GenerateSlots("sem1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), func() string {
		n++
		return fmt.Sprintf("slot%d", n)
	})
	require.NoError(s.T(), err)
	s.slots = slots
	require.NoError(s.T(), s.store.CreateSemesterWithSlots(s.ctx, domain.Semester{SemesterID: "sem1", IsActive: true}, slots))
}

func (s *StoreTestSuite) entry(id string, typ domain.EntryType, status domain.EntryStatus) domain.LedgerEntry {
	e := domain.LedgerEntry{
		EntryID:     id,
		EntryType:   typ,
		Amount:      decimal.NewFromInt(10),
		Status:      status,
		EntryDate:   s.now,
		SemesterID:  domain.StringPtr("sem1"),
		AuditFields: domain.NewAuditFields("m1", s.now),
	}
	if typ == domain.EntryIncomeDues {
		e.MemberID = domain.StringPtr("m1")
		e.SlotID = domain.StringPtr("slot1")
	} else {
		e.ProjectID = domain.StringPtr("p1")
	}
	return e
}

func (s *StoreTestSuite) TestDeleteSemester_DeletesSlotsDetachesEntries() {
	require.NoError(s.T(), s.store.CreateEntry(s.ctx, s.entry("e1", domain.EntryIncomeDues, domain.StatusApproved)))

	require.NoError(s.T(), s.store.DeleteSemester(s.ctx, "sem1"))

	slots, err := s.store.ListSlots(s.ctx, "sem1")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), slots)

	e, err := s.store.FindEntryByID(s.ctx, "e1")
	require.NoError(s.T(), err)
	assert.Nil(s.T(), e.SlotID)
	assert.Nil(s.T(), e.SemesterID)
	assert.NotNil(s.T(), e.MemberID)
}

func (s *StoreTestSuite) TestDeleteProject_DetachesEntries() {
	require.NoError(s.T(), s.store.CreateEntry(s.ctx, s.entry("x1", domain.EntryExpense, domain.StatusApproved)))
	require.NoError(s.T(), s.store.DeleteProject(s.ctx, "p1"))

	e, err := s.store.FindEntryByID(s.ctx, "x1")
	require.NoError(s.T(), err)
	assert.Nil(s.T(), e.ProjectID)

	b, err := s.store.SumBalance(s.ctx, domain.LedgerFilter{})
	require.NoError(s.T(), err)
	assert.True(s.T(), b.Expense.Equal(decimal.NewFromInt(10)))
}

func (s *StoreTestSuite) TestDeleteMember_DetachesEntries() {
	require.NoError(s.T(), s.store.CreateEntry(s.ctx, s.entry("e1", domain.EntryIncomeDues, domain.StatusPending)))
	require.NoError(s.T(), s.store.DeleteMember(s.ctx, "m1"))

	e, err := s.store.FindEntryByID(s.ctx, "e1")
	require.NoError(s.T(), err)
	assert.Nil(s.T(), e.MemberID)
}

func (s *StoreTestSuite) TestDeleteEntry_HardDelete() {
	require.NoError(s.T(), s.store.CreateEntry(s.ctx, s.entry("e1", domain.EntryIncomeDues, domain.StatusPending)))
	require.NoError(s.T(), s.store.DeleteEntry(s.ctx, "e1"))
	_, err := s.store.FindEntryByID(s.ctx, "e1")
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
	assert.ErrorIs(s.T(), s.store.DeleteEntry(s.ctx, "e1"), apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestCreateEntry_OneOpenDuesPerSlot() {
	require.NoError(s.T(), s.store.CreateEntry(s.ctx, s.entry("e1", domain.EntryIncomeDues, domain.StatusPending)))
	err := s.store.CreateEntry(s.ctx, s.entry("e2", domain.EntryIncomeDues, domain.StatusPending))
	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)

	changed, err := s.store.TransitionStatus(s.ctx, "e1", domain.StatusPending, domain.StatusRejected, domain.StringPtr("blurry"), "admin", s.now)
	require.NoError(s.T(), err)
	assert.True(s.T(), changed)
	assert.NoError(s.T(), s.store.CreateEntry(s.ctx, s.entry("e3", domain.EntryIncomeDues, domain.StatusPending)))
}

func (s *StoreTestSuite) TestCreateEntry_MissingLink() {
	e := s.entry("e1", domain.EntryExpense, domain.StatusApproved)
	e.ProjectID = domain.StringPtr("nope")
	assert.ErrorIs(s.T(), s.store.CreateEntry(s.ctx, e), apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestTransitionStatus_OnlyFromExpected() {
	require.NoError(s.T(), s.store.CreateEntry(s.ctx, s.entry("e1", domain.EntryIncomeDues, domain.StatusPending)))

	changed, err := s.store.TransitionStatus(s.ctx, "e1", domain.StatusPending, domain.StatusApproved, nil, "admin", s.now)
	require.NoError(s.T(), err)
	assert.True(s.T(), changed)

	changed, err = s.store.TransitionStatus(s.ctx, "e1", domain.StatusPending, domain.StatusApproved, nil, "admin", s.now)
	require.NoError(s.T(), err)
	assert.False(s.T(), changed)
}

func (s *StoreTestSuite) TestSetSemesterActive_Exclusive() {
	require.NoError(s.T(), s.store.CreateSemesterWithSlots(s.ctx, domain.Semester{SemesterID: "sem2"}, nil))
	require.NoError(s.T(), s.store.SetSemesterActive(s.ctx, "sem2", true, "admin", s.now))

	active, err := s.store.FindActiveSemester(s.ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "sem2", active.SemesterID)

	sem1, err := s.store.FindSemesterByID(s.ctx, "sem1")
	require.NoError(s.T(), err)
	assert.False(s.T(), sem1.IsActive)

	require.NoError(s.T(), s.store.SetSemesterActive(s.ctx, "sem2", false, "admin", s.now))
	_, err = s.store.FindActiveSemester(s.ctx)
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)

	assert.ErrorIs(s.T(), s.store.SetSemesterActive(s.ctx, "missing", true, "admin", s.now), apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestListEntriesPage_WalksNewestFirst() {
	for i := 0; i < 5; i++ {
		e := s.entry(fmt.Sprintf("d%d", i), domain.EntryIncomeDonation, domain.StatusApproved)
		e.EntryDate = s.now.AddDate(0, 0, i)
		require.NoError(s.T(), s.store.CreateEntry(s.ctx, e))
	}

	var seen []string
	var token *string
	for {
		page, next, err := s.store.ListEntriesPage(s.ctx, domain.LedgerFilter{}, 2, token)
		require.NoError(s.T(), err)
		for _, e := range page {
			seen = append(seen, e.EntryID)
		}
		if next == nil {
			break
		}
		token = next
	}
	assert.Equal(s.T(), []string{"d4", "d3", "d2", "d1", "d0"}, seen)

	bad := "%%%"
	_, _, err := s.store.ListEntriesPage(s.ctx, domain.LedgerFilter{}, 2, &bad)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}
