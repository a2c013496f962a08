package services

import (
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/platform/config"
	"github.com/clubtreasury/treasury/internal/utils"
)

// Infrastructure bundles the non-repository collaborators services need.
type Infrastructure struct {
	Evidence  portsrepo.EvidenceStore
	Balances  portsrepo.BalanceCache
	Analytics *utils.PosthogClientWrapper
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, infra Infrastructure, opts ...ServiceOption) *portssvc.ServiceContainer {
	opts = append([]ServiceOption{WithAnalytics(infra.Analytics)}, opts...)

	container := &portssvc.ServiceContainer{}
	container.Member = NewMemberService(repos.MemberRepo, cfg.DefaultResetPassword, opts...)
	container.Auth = NewAuthService(cfg, container.Member, nil, opts...)
	container.Semester = NewSemesterService(repos.SemesterRepo, infra.Balances, opts...)
	container.Ledger = NewLedgerService(repos, infra.Evidence, infra.Balances, opts...)
	container.Reporting = NewReportingService(repos, infra.Balances, opts...)
	container.Tracker = NewTrackerService(repos, opts...)
	container.Project = NewProjectService(repos.ProjectRepo, opts...)
	container.Content = NewContentService(repos.ContentRepo, infra.Evidence, opts...)
	container.Evidence = NewEvidenceService(infra.Evidence, repos, opts...)
	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.MemberSvcFacade   = (*memberService)(nil)
	_ portssvc.AuthSvc           = (*authService)(nil)
	_ portssvc.SemesterSvcFacade = (*semesterService)(nil)
	_ portssvc.LedgerSvcFacade   = (*ledgerService)(nil)
	_ portssvc.TrackerService    = (*trackerService)(nil)
	_ portssvc.ProjectSvcFacade  = (*projectService)(nil)
	_ portssvc.ContentSvcFacade  = (*contentService)(nil)
	_ portssvc.EvidenceSvc       = (*evidenceService)(nil)
)
