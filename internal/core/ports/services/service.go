package services

// ServiceContainer holds instances of all the application services.
// Handlers receive it from main and pick the facades they need.
type ServiceContainer struct {
	Member    MemberSvcFacade
	Auth      AuthSvc
	Semester  SemesterSvcFacade
	Ledger    LedgerSvcFacade
	Reporting ReportingService
	Tracker   TrackerService
	Project   ProjectSvcFacade
	Content   ContentSvcFacade
	Evidence  EvidenceSvc
}
