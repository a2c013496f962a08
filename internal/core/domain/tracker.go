package domain

import "sort"

// CellStatus is the settled state of one member's dues for one slot.
type CellStatus string

const (
	CellUnpaid   CellStatus = "unpaid"
	CellPending  CellStatus = "pending"
	CellApproved CellStatus = "approved"
)

// TrackerCell is one (member, slot) intersection of the tracker grid.
type TrackerCell struct {
	SlotID          string     `json:"slotID"`
	WeekNumber      int        `json:"weekNumber"`
	Status          CellStatus `json:"status"`
	EntryID         *string    `json:"entryID,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"` // Latest rejection when the slot is still unpaid
}

// TrackerRow holds one member's cells ordered by week number.
type TrackerRow struct {
	MemberID   string        `json:"memberID"`
	Username   string        `json:"username"`
	RealName   string        `json:"realName"`
	Department string        `json:"department"`
	Cells      []TrackerCell `json:"cells"`
}

// Tracker is the members-by-slots dues grid of one semester.
type Tracker struct {
	Semester Semester     `json:"semester"`
	Slots    []Slot       `json:"slots"`
	Rows     []TrackerRow `json:"rows"`
}

// CellCount returns the number of cells in the grid.
func (t Tracker) CellCount() int {
	n := 0
	for _, r := range t.Rows {
		n += len(r.Cells)
	}
	return n
}

// ResolveDues derives the cell for a slot from every dues entry recorded
// against it by one member. The newest open entry wins. With no open entry
// the cell is unpaid and carries the newest rejection reason, if any.
func ResolveDues(slot Slot, entries []LedgerEntry) TrackerCell {
	cell := TrackerCell{SlotID: slot.SlotID, WeekNumber: slot.WeekNumber, Status: CellUnpaid}

	var open, rejected *LedgerEntry
	for i := range entries {
		e := &entries[i]
		if e.EntryType != EntryIncomeDues {
			continue
		}
		switch {
		case e.IsOpenDues():
			if open == nil || e.NewerThan(*open) {
				open = e
			}
		case e.Status == StatusRejected:
			if rejected == nil || e.NewerThan(*rejected) {
				rejected = e
			}
		}
	}

	switch {
	case open != nil:
		id := open.EntryID
		cell.EntryID = &id
		if open.Status == StatusApproved {
			cell.Status = CellApproved
		} else {
			cell.Status = CellPending
		}
	case rejected != nil:
		id := rejected.EntryID
		cell.EntryID = &id
		cell.RejectionReason = rejected.RejectionReason
	}
	return cell
}

type memberSlotKey struct {
	memberID string
	slotID   string
}

// BuildTracker assembles the grid for semester from its slots, the
// role-member roster and the dues entries of the semester. Every member
// gets exactly one cell per slot.
func BuildTracker(semester Semester, slots []Slot, members []Member, entries []LedgerEntry) Tracker {
	ordered := make([]Slot, len(slots))
	copy(ordered, slots)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].WeekNumber < ordered[j].WeekNumber })

	byPair := make(map[memberSlotKey][]LedgerEntry)
	for _, e := range entries {
		if e.EntryType != EntryIncomeDues || e.MemberID == nil || e.SlotID == nil {
			continue
		}
		k := memberSlotKey{memberID: *e.MemberID, slotID: *e.SlotID}
		byPair[k] = append(byPair[k], e)
	}

	rows := make([]TrackerRow, 0, len(members))
	for _, m := range members {
		if m.Role != RoleMember {
			continue
		}
		row := TrackerRow{
			MemberID:   m.MemberID,
			Username:   m.Username,
			RealName:   m.RealName,
			Department: m.Department,
			Cells:      make([]TrackerCell, 0, len(ordered)),
		}
		for _, s := range ordered {
			row.Cells = append(row.Cells, ResolveDues(s, byPair[memberSlotKey{memberID: m.MemberID, slotID: s.SlotID}]))
		}
		rows = append(rows, row)
	}

	return Tracker{Semester: semester, Slots: ordered, Rows: rows}
}

// DuesSlot is one week of a member's own dues overview.
type DuesSlot struct {
	Slot Slot        `json:"slot"`
	Cell TrackerCell `json:"cell"`
}

// DuesOverview lists the active semester's slots for one member.
type DuesOverview struct {
	Semester *Semester  `json:"semester,omitempty"`
	Slots    []DuesSlot `json:"slots"`
}
