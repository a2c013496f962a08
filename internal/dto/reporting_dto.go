package dto

import (
	"github.com/clubtreasury/treasury/internal/core/domain"
)

// BalanceParams selects the period of a balance query.
type BalanceParams struct {
	SemesterID *string `form:"semesterID" binding:"omitempty,uuid"`
}

// ReportParams filters the approved ledger report.
type ReportParams struct {
	ProjectID  *string `form:"projectID" binding:"omitempty,uuid"`
	SemesterID *string `form:"semesterID" binding:"omitempty,uuid"`
}

// TreasuryListParams defines query parameters for the paginated treasury listing.
type TreasuryListParams struct {
	SemesterID *string `form:"semesterID" binding:"omitempty,uuid"`
	Limit      int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken  *string `form:"nextToken"`
}

// TrackerParams selects the semester shown by the tracker. The active one is used when omitted.
type TrackerParams struct {
	SemesterID *string `form:"semesterID" binding:"omitempty,uuid"`
}

// BalanceResponse represents income, expense and net over approved entries.
type BalanceResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

// ToBalanceResponse formats a balance with two decimals.
func ToBalanceResponse(b domain.Balance) BalanceResponse {
	return BalanceResponse{
		Income:  b.Income.StringFixed(2),
		Expense: b.Expense.StringFixed(2),
		Net:     b.Net.StringFixed(2),
	}
}

// ReportResponse represents the approved entries matching a report filter.
type ReportResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
	Balance BalanceResponse       `json:"balance"`
}

// TreasuryPageResponse represents one page of the treasury listing.
type TreasuryPageResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	TotalDues string                `json:"totalDues"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToTreasuryPageResponse converts a domain.TreasuryPage.
func ToTreasuryPageResponse(p *domain.TreasuryPage) TreasuryPageResponse {
	return TreasuryPageResponse{
		Entries:   ToListLedgerEntryResponse(p.Entries),
		TotalDues: p.TotalDues.StringFixed(2),
		NextToken: p.NextToken,
	}
}

// DashboardResponse represents the admin landing summary.
type DashboardResponse struct {
	Balance          BalanceResponse   `json:"balance"`
	PendingDuesCount int               `json:"pendingDuesCount"`
	MemberCount      int               `json:"memberCount"`
	ActiveSemester   *SemesterResponse `json:"activeSemester,omitempty"`
}

// ToDashboardResponse converts a domain.Dashboard.
func ToDashboardResponse(d *domain.Dashboard) DashboardResponse {
	res := DashboardResponse{
		Balance:          ToBalanceResponse(d.Balance),
		PendingDuesCount: d.PendingDuesCount,
		MemberCount:      d.MemberCount,
	}
	if d.ActiveSemester != nil {
		s := ToSemesterResponse(d.ActiveSemester, nil)
		res.ActiveSemester = &s
	}
	return res
}
