package pgsql

import (
	"strconv"
	"strings"

	"github.com/clubtreasury/treasury/internal/core/domain"
)

// ledgerWhere renders filter as a WHERE clause, appending its arguments to args.
func ledgerWhere(filter domain.LedgerFilter, args []any) (string, []any) {
	var conds []string
	add := func(column string, v any) {
		args = append(args, v)
		conds = append(conds, column+" = $"+strconv.Itoa(len(args)))
	}
	if filter.SemesterID != nil {
		add("semester_id", *filter.SemesterID)
	}
	if filter.ProjectID != nil {
		add("project_id", *filter.ProjectID)
	}
	if filter.MemberID != nil {
		add("member_id", *filter.MemberID)
	}
	if filter.SlotID != nil {
		add("slot_id", *filter.SlotID)
	}
	if filter.Type != nil {
		add("entry_type", string(*filter.Type))
	}
	if filter.Status != nil {
		add("status", string(*filter.Status))
	}
	if len(conds) == 0 {
		return "WHERE TRUE", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}
