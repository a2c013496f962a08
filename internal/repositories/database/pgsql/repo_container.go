package pgsql

import (
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MemberRepo:    newPgxMemberRepository(dbPool),
		SemesterRepo:  newPgxSemesterRepository(dbPool),
		ProjectRepo:   newPgxProjectRepository(dbPool),
		LedgerRepo:    newPgxLedgerRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
		ContentRepo:   newPgxContentRepository(dbPool),
	}
}
