package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/clubtreasury/treasury/internal/handlers"
	"github.com/clubtreasury/treasury/internal/platform/config"
	"github.com/clubtreasury/treasury/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testSecret = "handler-test-secret"

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) SubmitDuesPayment(ctx context.Context, memberID, slotID string, req dto.SubmitDuesRequest, slip *dto.Upload) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, memberID, slotID, req, slip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) MemberDuesOverview(ctx context.Context, memberID string) (*domain.DuesOverview, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DuesOverview), args.Error(1)
}

func (m *MockLedgerService) ListPendingDues(ctx context.Context) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ApproveEntry(ctx context.Context, entryID string, adminID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) RejectEntry(ctx context.Context, entryID string, req dto.RejectEntryRequest, adminID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) RecordManualTransaction(ctx context.Context, req dto.ManualTransactionRequest, evidence *dto.Upload, adminID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, req, evidence, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) RecordManualDues(ctx context.Context, req dto.ManualDuesRequest, adminID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) DeleteEntry(ctx context.Context, entryID string, adminID string) error {
	args := m.Called(ctx, entryID, adminID)
	return args.Error(0)
}

type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Balance(ctx context.Context, semesterID *string) (domain.Balance, error) {
	args := m.Called(ctx, semesterID)
	return args.Get(0).(domain.Balance), args.Error(1)
}

func (m *MockReportingService) Report(ctx context.Context, params dto.ReportParams) ([]domain.LedgerEntry, domain.Balance, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(domain.Balance), args.Error(2)
}

func (m *MockReportingService) TreasuryListing(ctx context.Context, params dto.TreasuryListParams) (*domain.TreasuryPage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TreasuryPage), args.Error(1)
}

func (m *MockReportingService) PendingDuesCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockReportingService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}

func (m *MockReportingService) ExportReportXLSX(ctx context.Context, params dto.ReportParams, w io.Writer) error {
	args := m.Called(ctx, params, w)
	return args.Error(0)
}

type RoutesTestSuite struct {
	suite.Suite
	router    *gin.Engine
	ledger    *MockLedgerService
	reporting *MockReportingService
}

func (s *RoutesTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ledger = new(MockLedgerService)
	s.reporting = new(MockReportingService)

	cfg := &config.Config{
		JWTSecret:           testSecret,
		LoginRateLimit:      "100-M",
		IsProduction:        true,
		EvidenceOrphanGrace: time.Hour,
	}
	container := &portssvc.ServiceContainer{Ledger: s.ledger, Reporting: s.reporting}

	s.router = gin.New()
	require.NoError(s.T(), handlers.RegisterRoutes(s.router, cfg, container, &utils.PosthogClientWrapper{}))
}

func (s *RoutesTestSuite) TearDownTest() {
	s.ledger.AssertExpectations(s.T())
	s.reporting.AssertExpectations(s.T())
}

func (s *RoutesTestSuite) token(memberID string, role domain.Role) string {
	tok, err := utils.GenerateJWT(memberID, string(role), testSecret, time.Hour, "test")
	require.NoError(s.T(), err)
	return tok
}

func (s *RoutesTestSuite) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func approvedEntry(id string) *domain.LedgerEntry {
	member, slot := "member-1", "slot-1"
	return &domain.LedgerEntry{
		EntryID:   id,
		EntryType: domain.EntryIncomeDues,
		Amount:    decimal.NewFromInt(50),
		Status:    domain.StatusApproved,
		MemberID:  &member,
		SlotID:    &slot,
		EntryDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func (s *RoutesTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/api/v1/health", "", "")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
}

func (s *RoutesTestSuite) TestMissingToken() {
	w := s.do(http.MethodGet, "/api/v1/admin/approvals", "", "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RoutesTestSuite) TestInvalidToken() {
	w := s.do(http.MethodGet, "/api/v1/admin/approvals", "not-a-jwt", "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RoutesTestSuite) TestMemberRefusedOnAdminRoutes() {
	w := s.do(http.MethodPost, "/api/v1/admin/approvals/entry-1/approve", s.token("member-1", domain.RoleMember), "")
	s.Equal(http.StatusForbidden, w.Code)
	s.JSONEq(`{"error":"Admin access required"}`, w.Body.String())
	s.ledger.AssertNotCalled(s.T(), "ApproveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RoutesTestSuite) TestApprove() {
	s.ledger.On("ApproveEntry", mock.Anything, "entry-1", "admin-1").Return(approvedEntry("entry-1"), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/admin/approvals/entry-1/approve", s.token("admin-1", domain.RoleAdmin), "")
	s.Require().Equal(http.StatusOK, w.Code)

	var res dto.LedgerEntryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.Equal("entry-1", res.EntryID)
	s.Equal(domain.StatusApproved, res.Status)
	s.Equal("50.00", res.Amount)
}

func (s *RoutesTestSuite) TestApproveErrorMapping() {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "rejected entry", err: fmt.Errorf("%w: entry was rejected", apperrors.ErrConflict), want: http.StatusConflict},
		{name: "missing entry", err: fmt.Errorf("%w: ledger entry", apperrors.ErrNotFound), want: http.StatusNotFound},
		{name: "unexpected", err: fmt.Errorf("db down"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.ledger.On("ApproveEntry", mock.Anything, "entry-x", "admin-1").Return(nil, tt.err).Once()
			w := s.do(http.MethodPost, "/api/v1/admin/approvals/entry-x/approve", s.token("admin-1", domain.RoleAdmin), "")
			s.Equal(tt.want, w.Code)
		})
	}
}

func (s *RoutesTestSuite) TestRejectRequiresReason() {
	w := s.do(http.MethodPost, "/api/v1/admin/approvals/entry-1/reject", s.token("admin-1", domain.RoleAdmin), `{}`)
	s.Equal(http.StatusBadRequest, w.Code)

	var res handlers.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.Contains(res.Error, "Invalid request format")
}

func (s *RoutesTestSuite) TestReject() {
	rejected := approvedEntry("entry-1")
	rejected.Status = domain.StatusRejected
	reason := "blurry slip"
	rejected.RejectionReason = &reason
	s.ledger.On("RejectEntry", mock.Anything, "entry-1", dto.RejectEntryRequest{Reason: reason}, "admin-1").Return(rejected, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/admin/approvals/entry-1/reject", s.token("admin-1", domain.RoleAdmin), `{"reason":"blurry slip"}`)
	s.Require().Equal(http.StatusOK, w.Code)

	var res dto.LedgerEntryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.Require().NotNil(res.RejectionReason)
	s.Equal(reason, *res.RejectionReason)
}

func (s *RoutesTestSuite) TestTransparencyIsPublic() {
	s.reporting.On("Balance", mock.Anything, (*string)(nil)).Return(domain.Balance{
		Income:  decimal.NewFromInt(70),
		Expense: decimal.NewFromInt(30),
		Net:     decimal.NewFromInt(40),
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/transparency", "", "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"income":"70.00","expense":"30.00","net":"40.00"}`, w.Body.String())
}

func (s *RoutesTestSuite) TestPendingList() {
	s.ledger.On("ListPendingDues", mock.Anything).Return([]domain.LedgerEntry{*approvedEntry("a"), *approvedEntry("b")}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/admin/approvals", s.token("admin-1", domain.RoleAdmin), "")
	s.Require().Equal(http.StatusOK, w.Code)

	var res []dto.LedgerEntryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.Len(res, 2)
}

func (s *RoutesTestSuite) TestMemberDuesOverview() {
	s.ledger.On("MemberDuesOverview", mock.Anything, "member-1").Return(&domain.DuesOverview{Slots: []domain.DuesSlot{}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/dues", s.token("member-1", domain.RoleMember), "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *RoutesTestSuite) TestDeleteEntry() {
	s.ledger.On("DeleteEntry", mock.Anything, "entry-1", "admin-1").Return(nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/admin/treasury/entry-1", s.token("admin-1", domain.RoleAdmin), "")
	s.Equal(http.StatusNoContent, w.Code)
}

func TestRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}

func TestRegisterRoutes_BadRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWTSecret: testSecret, LoginRateLimit: "lots", IsProduction: true}
	err := handlers.RegisterRoutes(gin.New(), cfg, &portssvc.ServiceContainer{}, nil)
	assert.Error(t, err)
}
