package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/clubtreasury/treasury/internal/utils/accounting"
	"github.com/clubtreasury/treasury/internal/utils/pagination"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Report"

var reportColumnWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "B", 16},
	{"C", "C", 36},
	{"D", "D", 20},
	{"E", "F", 12},
}

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	ledgerRepo    portsrepo.LedgerReader
	semesterRepo  portsrepo.SemesterReader
	memberRepo    portsrepo.MemberReader
	projectRepo   portsrepo.ProjectRepositoryFacade
	balanceCache  portsrepo.BalanceCache
}

// NewReportingService creates a reporting service reading through cache.
func NewReportingService(repos portsrepo.RepositoryProvider, cache portsrepo.BalanceCache, opts ...ServiceOption) portssvc.ReportingService {
	return &reportingService{
		BaseService:   newBaseService(opts...),
		reportingRepo: repos.ReportingRepo,
		ledgerRepo:    repos.LedgerRepo,
		semesterRepo:  repos.SemesterRepo,
		memberRepo:    repos.MemberRepo,
		projectRepo:   repos.ProjectRepo,
		balanceCache:  cache,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func balanceCacheKey(semesterID *string) string {
	if semesterID == nil {
		return "all"
	}
	return "semester:" + *semesterID
}

func (s *reportingService) Balance(ctx context.Context, semesterID *string) (domain.Balance, error) {
	key := balanceCacheKey(semesterID)
	cached, version, ok := s.balanceCache.GetBalance(ctx, key)
	if ok {
		return *cached, nil
	}

	balance, err := s.reportingRepo.SumBalance(ctx, domain.LedgerFilter{SemesterID: semesterID}.ApprovedOnly())
	if err != nil {
		s.LogError(ctx, err, "Failed to sum balance", slog.String("key", key))
		return domain.Balance{}, fmt.Errorf("failed to compute balance: %w", err)
	}
	s.balanceCache.SetBalance(ctx, key, version, balance)
	return balance, nil
}

func (s *reportingService) Report(ctx context.Context, params dto.ReportParams) ([]domain.LedgerEntry, domain.Balance, error) {
	filter := domain.LedgerFilter{ProjectID: params.ProjectID, SemesterID: params.SemesterID}.ApprovedOnly()
	entries, err := s.ledgerRepo.ListEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list report entries")
		return nil, domain.Balance{}, fmt.Errorf("failed to build report: %w", err)
	}
	return entries, accounting.SummarizeEntries(entries), nil
}

func (s *reportingService) TreasuryListing(ctx context.Context, params dto.TreasuryListParams) (*domain.TreasuryPage, error) {
	filter := domain.LedgerFilter{SemesterID: params.SemesterID}.ApprovedOnly()

	entries, next, err := s.ledgerRepo.ListEntriesPage(ctx, filter, pagination.NormalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list treasury page")
		}
		return nil, fmt.Errorf("failed to list treasury: %w", err)
	}

	dues, err := s.reportingRepo.SumDues(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum dues")
		return nil, fmt.Errorf("failed to sum dues: %w", err)
	}

	return &domain.TreasuryPage{Entries: entries, TotalDues: dues, NextToken: next}, nil
}

func (s *reportingService) PendingDuesCount(ctx context.Context) (int, error) {
	duesType := domain.EntryIncomeDues
	pending := domain.StatusPending
	n, err := s.reportingRepo.CountEntries(ctx, domain.LedgerFilter{Type: &duesType, Status: &pending})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending dues: %w", err)
	}
	return n, nil
}

func (s *reportingService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	balance, err := s.Balance(ctx, nil)
	if err != nil {
		return nil, err
	}
	pending, err := s.PendingDuesCount(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.memberRepo.CountMembersByRole(ctx, domain.RoleMember)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	dashboard := &domain.Dashboard{Balance: balance, PendingDuesCount: pending, MemberCount: members}
	active, err := s.semesterRepo.FindActiveSemester(ctx)
	switch {
	case err == nil:
		dashboard.ActiveSemester = active
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("failed to find active semester: %w", err)
	}
	return dashboard, nil
}

func (s *reportingService) ExportReportXLSX(ctx context.Context, params dto.ReportParams, w io.Writer) error {
	entries, balance, err := s.Report(ctx, params)
	if err != nil {
		return err
	}
	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	projectNames := make(map[string]string, len(projects))
	for _, p := range projects {
		projectNames[p.ProjectID] = p.Name
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.LogError(ctx, cerr, "Failed to close workbook")
		}
	}()
	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	rows := [][]any{{"Date", "Type", "Description", "Project", "Income", "Expense"}}
	for _, e := range entries {
		project := ""
		if e.ProjectID != nil {
			project = projectNames[*e.ProjectID]
		}
		var income, expense any
		if e.EntryType.IsIncome() {
			income = e.Amount.InexactFloat64()
		} else {
			expense = e.Amount.InexactFloat64()
		}
		rows = append(rows, []any{e.EntryDate.Format(domain.DateLayout), string(e.EntryType), e.Description, project, income, expense})
	}
	rows = append(rows,
		[]any{},
		[]any{"", "", "Total", "", balance.Income.InexactFloat64(), balance.Expense.InexactFloat64()},
		[]any{"", "", "Net", "", balance.Net.InexactFloat64()},
	)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	for _, cw := range reportColumnWidths {
		if err := f.SetColWidth(reportSheet, cw.from, cw.to, cw.width); err != nil {
			return fmt.Errorf("failed to size columns %s:%s: %w", cw.from, cw.to, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	s.LogInfo(ctx, "Report exported", slog.Int("entries", len(entries)))
	return nil
}
