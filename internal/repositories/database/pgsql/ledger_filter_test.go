package pgsql

import (
	"testing"

	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestLedgerWhere(t *testing.T) {
	where, args := ledgerWhere(domain.LedgerFilter{}, nil)
	assert.Equal(t, "WHERE TRUE", where)
	assert.Empty(t, args)

	sem := "sem-1"
	f := domain.LedgerFilter{SemesterID: &sem}.ApprovedOnly()
	where, args = ledgerWhere(f, []any{"first"})
	assert.Equal(t, "WHERE semester_id = $2 AND status = $3", where)
	assert.Equal(t, []any{"first", "sem-1", "approved"}, args)
}
