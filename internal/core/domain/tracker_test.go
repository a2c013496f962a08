package domain_test

import (
	"testing"
	"time"

	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func duesEntry(id, member, slot string, status domain.EntryStatus, day int) domain.LedgerEntry {
	e := domain.LedgerEntry{
		EntryID:   id,
		EntryType: domain.EntryIncomeDues,
		Status:    status,
		MemberID:  &member,
		SlotID:    &slot,
		EntryDate: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
	}
	if status == domain.StatusRejected {
		e.RejectionReason = stringPtr("reason " + id)
	}
	return e
}

func TestBuildTracker_Completeness(t *testing.T) {
	slots, err := domain.GenerateSlots("sem", date(t, "2024-01-01"), date(t, "2024-01-20"), sequentialIDs())
	require.NoError(t, err)

	members := []domain.Member{
		{MemberID: "m1", Role: domain.RoleMember},
		{MemberID: "m2", Role: domain.RoleMember},
		{MemberID: "admin", Role: domain.RoleAdmin},
	}
	entries := []domain.LedgerEntry{
		duesEntry("e1", "m1", "slot-1", domain.StatusApproved, 2),
		duesEntry("e2", "m2", "slot-2", domain.StatusPending, 9),
		duesEntry("e3", "m2", "slot-3", domain.StatusRejected, 16),
		duesEntry("ghost", "gone", "slot-1", domain.StatusApproved, 2),
	}

	tr := domain.BuildTracker(domain.Semester{SemesterID: "sem"}, slots, members, entries)
	require.Len(t, tr.Rows, 2, "admins are not tracked")
	assert.Equal(t, 2*3, tr.CellCount())

	allowed := map[domain.CellStatus]bool{domain.CellUnpaid: true, domain.CellPending: true, domain.CellApproved: true}
	for _, row := range tr.Rows {
		for _, c := range row.Cells {
			assert.True(t, allowed[c.Status])
		}
	}

	assert.Equal(t, domain.CellApproved, tr.Rows[0].Cells[0].Status)
	assert.Equal(t, domain.CellUnpaid, tr.Rows[0].Cells[1].Status)
	assert.Equal(t, domain.CellPending, tr.Rows[1].Cells[1].Status)
	assert.Equal(t, domain.CellUnpaid, tr.Rows[1].Cells[2].Status)
	require.NotNil(t, tr.Rows[1].Cells[2].RejectionReason)
	assert.Equal(t, "reason e3", *tr.Rows[1].Cells[2].RejectionReason)
}

func TestResolveDues_NewestOpenEntryWins(t *testing.T) {
	slot := domain.Slot{SlotID: "s", WeekNumber: 1}

	cell := domain.ResolveDues(slot, []domain.LedgerEntry{
		duesEntry("old", "m", "s", domain.StatusApproved, 2),
		duesEntry("new", "m", "s", domain.StatusPending, 5),
		duesEntry("rej", "m", "s", domain.StatusRejected, 7),
	})
	assert.Equal(t, domain.CellPending, cell.Status)
	require.NotNil(t, cell.EntryID)
	assert.Equal(t, "new", *cell.EntryID)
	assert.Nil(t, cell.RejectionReason)
}

func TestResolveDues_TieBrokenDeterministically(t *testing.T) {
	slot := domain.Slot{SlotID: "s", WeekNumber: 1}
	a := duesEntry("a", "m", "s", domain.StatusPending, 3)
	b := duesEntry("b", "m", "s", domain.StatusApproved, 3)

	first := domain.ResolveDues(slot, []domain.LedgerEntry{a, b})
	second := domain.ResolveDues(slot, []domain.LedgerEntry{b, a})
	assert.Equal(t, first, second)
	assert.Equal(t, "b", *first.EntryID)
}

func TestResolveDues_NoEntries(t *testing.T) {
	cell := domain.ResolveDues(domain.Slot{SlotID: "s", WeekNumber: 4}, nil)
	assert.Equal(t, domain.CellUnpaid, cell.Status)
	assert.Equal(t, 4, cell.WeekNumber)
	assert.Nil(t, cell.EntryID)
}
