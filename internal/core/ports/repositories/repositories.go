package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Both the postgres and the in-memory drivers build one.
type RepositoryProvider struct {
	MemberRepo    MemberRepositoryFacade
	SemesterRepo  SemesterRepositoryFacade
	ProjectRepo   ProjectRepositoryFacade
	LedgerRepo    LedgerRepositoryFacade
	ReportingRepo ReportingRepository
	ContentRepo   ContentRepositoryFacade
}
