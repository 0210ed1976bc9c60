package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine_app/internal/apperrors"
	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine_app/internal/core/services"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
	"github.com/SscSPs/ledger_engine_app/internal/handlers"
	"github.com/SscSPs/ledger_engine_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) PostEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) UpdateEntry(ctx context.Context, tenantID string, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ReverseEntry(ctx context.Context, tenantID string, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) GetEntryByID(ctx context.Context, tenantID string, entryID string, userID string, withLines bool) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, userID, withLines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) GetEntryByReference(ctx context.Context, tenantID string, reference string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, reference, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams, userID string) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, tenantID, params, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Test Suite ---
type JournalHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockJournalService *MockJournalService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *JournalHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockJournalService = new(MockJournalService)

	handlers.RegisterCustomValidators()
	v1 := suite.router.Group("/api/v1/tenants/:tenantID")
	handlers.RegisterJournalRoutes(v1, suite.mockJournalService)
}

// --- Test Cases ---

func (suite *JournalHandlerTestSuite) TestPostEntry_Success() {
	tenantID := uuid.NewString()
	userID := uuid.NewString()
	debitAccount := uuid.NewString()
	creditAccount := uuid.NewString()

	entryDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	reqBody := dto.CreateJournalEntryRequest{
		Date:         entryDate,
		Description:  "Office rent June",
		CurrencyCode: "USD",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: debitAccount, Debit: decimal.NewFromInt(1200)},
			{AccountID: creditAccount, Credit: decimal.NewFromInt(1200)},
		},
	}

	created := &domain.JournalEntry{
		EntryID:      uuid.NewString(),
		TenantID:     tenantID,
		EntryNumber:  7,
		EntryDate:    entryDate,
		Description:  "Office rent June",
		CurrencyCode: "USD",
		Status:       domain.Posted,
	}

	suite.mockJournalService.On("PostEntry",
		mock.AnythingOfType("*context.valueCtx"),
		tenantID,
		mock.MatchedBy(func(r dto.CreateJournalEntryRequest) bool {
			return len(r.Lines) == 2 && r.CurrencyCode == "USD"
		}),
		userID,
	).Return(created, nil).Once()

	body, _ := json.Marshal(reqBody)
	url := fmt.Sprintf("/api/v1/tenants/%s/entries", tenantID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.JournalEntryResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(created.EntryID, responseBody.EntryID)
	suite.Equal(int64(7), responseBody.EntryNumber)
	suite.Equal(string(domain.Posted), responseBody.Status)

	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestPostEntry_UnbalancedReturns400() {
	tenantID := uuid.NewString()
	userID := uuid.NewString()

	reqBody := dto.CreateJournalEntryRequest{
		Date:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CurrencyCode: "USD",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(100)},
			{AccountID: uuid.NewString(), Credit: decimal.NewFromInt(90)},
		},
	}

	suite.mockJournalService.On("PostEntry",
		mock.AnythingOfType("*context.valueCtx"), tenantID, mock.Anything, userID,
	).Return(nil, services.ErrUnbalancedEntry).Once()

	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/tenants/%s/entries", tenantID), bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestPostEntry_DuplicateReferenceReturns409() {
	tenantID := uuid.NewString()
	userID := uuid.NewString()

	reqBody := dto.CreateJournalEntryRequest{
		Date:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Reference:    "INV-42",
		CurrencyCode: "USD",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(100)},
			{AccountID: uuid.NewString(), Credit: decimal.NewFromInt(100)},
		},
	}

	suite.mockJournalService.On("PostEntry",
		mock.AnythingOfType("*context.valueCtx"), tenantID, mock.Anything, userID,
	).Return(nil, apperrors.ErrDuplicate).Once()

	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/tenants/%s/entries", tenantID), bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestPostEntry_MissingTokenReturns401() {
	tenantID := uuid.NewString()

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/tenants/%s/entries", tenantID), bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestReverseEntry_AlreadyReversedReturns409() {
	tenantID := uuid.NewString()
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockJournalService.On("ReverseEntry",
		mock.AnythingOfType("*context.valueCtx"), tenantID, entryID, userID,
	).Return(nil, services.ErrAlreadyReversed).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/entries/%s/reverse", tenantID, entryID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestListEntries_Success() {
	tenantID := uuid.NewString()
	userID := uuid.NewString()
	limit := 10

	nextToken := "b3BhcXVl"
	expectedResponse := &dto.ListEntriesResponse{
		Entries: []dto.JournalEntryResponse{
			{EntryID: uuid.NewString(), TenantID: tenantID, EntryNumber: 2, Status: string(domain.Posted)},
			{EntryID: uuid.NewString(), TenantID: tenantID, EntryNumber: 1, Status: string(domain.Posted)},
		},
		NextToken: &nextToken,
	}

	suite.mockJournalService.On("ListEntries",
		mock.AnythingOfType("*context.valueCtx"),
		tenantID,
		mock.MatchedBy(func(p dto.ListEntriesParams) bool {
			return p.Limit == limit
		}),
		userID,
	).Return(expectedResponse, nil).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/entries?limit=%d", tenantID, limit)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.ListEntriesResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Len(responseBody.Entries, 2)
	suite.Require().NotNil(responseBody.NextToken)
	suite.Equal(nextToken, *responseBody.NextToken)

	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestGetEntry_NotFoundReturns404() {
	tenantID := uuid.NewString()
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockJournalService.On("GetEntryByID",
		mock.AnythingOfType("*context.valueCtx"), tenantID, entryID, userID, true,
	).Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/entries/%s", tenantID, entryID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Run Test Suite ---
func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
