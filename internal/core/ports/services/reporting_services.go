package services

import (
	"context"
	"io"

	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/clubtreasury/treasury/internal/dto"
)

// ReportingService defines aggregate views over approved ledger entries
type ReportingService interface {
	// Balance sums approved entries, optionally within one semester.
	Balance(ctx context.Context, semesterID *string) (domain.Balance, error)

	// Report lists approved entries by ascending date with their balance.
	Report(ctx context.Context, params dto.ReportParams) ([]domain.LedgerEntry, domain.Balance, error)

	// TreasuryListing pages through approved entries, newest first.
	TreasuryListing(ctx context.Context, params dto.TreasuryListParams) (*domain.TreasuryPage, error)

	// PendingDuesCount counts dues awaiting review.
	PendingDuesCount(ctx context.Context) (int, error)

	// Dashboard summarises the treasury for admins.
	Dashboard(ctx context.Context) (*domain.Dashboard, error)

	// ExportReportXLSX writes the report as an XLSX workbook to w.
	ExportReportXLSX(ctx context.Context, params dto.ReportParams, w io.Writer) error
}

// TrackerService builds the members-by-slots dues grid
type TrackerService interface {
	// BuildTracker uses the active semester when semesterID is nil.
	BuildTracker(ctx context.Context, semesterID *string) (*domain.Tracker, error)
}
