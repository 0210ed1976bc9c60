package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine_app/internal/apperrors"
	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine_app/internal/core/services"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAccountSvc   *MockAccountService
	mockTxManager    *MockTransactionManager
	service          portssvc.JournalSvcFacade
	tenantID         string
	userID           string
	assetAccount     domain.Account
	liabilityAccount domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockTxManager = new(MockTransactionManager)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc, suite.mockTxManager, nil)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.assetAccount = domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
		IsActive:     true,
	}
	suite.liabilityAccount = domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		AccountType:  domain.Liability,
		CurrencyCode: "USD",
		IsActive:     true,
	}
}

func (suite *JournalServiceTestSuite) balancedRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		Date:         time.Now(),
		Description:  "Office supplies",
		CurrencyCode: "USD",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.liabilityAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}
}

func (suite *JournalServiceTestSuite) expectAccounts(accounts ...domain.Account) {
	accountsMap := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		accountsMap[a.AccountID] = a
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", mock.Anything, suite.tenantID, mock.AnythingOfType("[]string"), suite.userID).
		Return(accountsMap, nil).Once()
}

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.expectAccounts(suite.assetAccount, suite.liabilityAccount)
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("*domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(suite.tenantID, entry.TenantID)
	suite.Equal(domain.Posted, entry.Status)
	suite.Len(entry.Lines, 2)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[1].Credit = decimal.NewFromInt(90)

	_, err := suite.service.PostEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnbalancedEntry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_SingleLineRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines = req.Lines[:1]

	_, err := suite.service.PostEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryMinLines)
}

func (suite *JournalServiceTestSuite) TestPostEntry_SingleAccountRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[1].AccountID = suite.assetAccount.AccountID

	_, err := suite.service.PostEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryMinAccounts)
}

func (suite *JournalServiceTestSuite) TestPostEntry_BothSidesSetRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Credit = decimal.NewFromInt(5)
	req.Lines[0].Debit = decimal.NewFromInt(105)

	_, err := suite.service.PostEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnbalancedEntry)
}

func (suite *JournalServiceTestSuite) TestPostEntry_CurrencyMismatch() {
	ctx := context.Background()
	req := suite.balancedRequest()
	eurAccount := suite.liabilityAccount
	eurAccount.CurrencyCode = "EUR"

	suite.expectAccounts(suite.assetAccount, eurAccount)

	_, err := suite.service.PostEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCurrencyMismatch)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()
	inactive := suite.liabilityAccount
	inactive.IsActive = false

	suite.expectAccounts(suite.assetAccount, inactive)

	_, err := suite.service.PostEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInactiveAccount)
}

func (suite *JournalServiceTestSuite) TestPostEntry_DuplicateReferenceNotRetried() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Reference = "INV-001"

	suite.expectAccounts(suite.assetAccount, suite.liabilityAccount)
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("*domain.JournalEntry")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.PostEntry(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockJournalRepo.AssertNumberOfCalls(suite.T(), "SaveEntry", 1)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_MirrorsLines() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:      originalID,
		TenantID:     suite.tenantID,
		EntryNumber:  7,
		CurrencyCode: "USD",
		Status:       domain.Posted,
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), EntryID: originalID, AccountID: suite.assetAccount.AccountID, Debit: decimal.NewFromInt(250), Credit: decimal.Zero},
			{LineID: uuid.NewString(), EntryID: originalID, AccountID: suite.liabilityAccount.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(250)},
		},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, originalID, true).Return(original, nil).Once()
	suite.mockTxManager.On("WithTx", ctx).Return(nil).Once()

	var saved *domain.JournalEntry
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("*domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.JournalEntry)
		}).Return(nil).Once()
	suite.mockJournalRepo.On("MarkEntryReversed", ctx, suite.tenantID, originalID, mock.AnythingOfType("string"), suite.userID).
		Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, suite.tenantID, originalID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Require().NotNil(saved)
	suite.Equal(&originalID, reversal.OriginalEntryID)
	suite.Len(saved.Lines, 2)
	// debits and credits swapped, amounts untouched
	suite.True(saved.Lines[0].Credit.Equal(decimal.NewFromInt(250)))
	suite.True(saved.Lines[0].Debit.IsZero())
	suite.True(saved.Lines[1].Debit.Equal(decimal.NewFromInt(250)))
	suite.True(saved.Lines[1].Credit.IsZero())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reversed := &domain.JournalEntry{
		EntryID:  entryID,
		TenantID: suite.tenantID,
		Status:   domain.Reversed,
		Lines: []domain.JournalLine{
			{AccountID: suite.assetAccount.AccountID, Debit: decimal.NewFromInt(10)},
			{AccountID: suite.liabilityAccount.AccountID, Credit: decimal.NewFromInt(10)},
		},
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID, true).Return(reversed, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_ReversalOfReversal() {
	ctx := context.Background()
	entryID := uuid.NewString()
	sourceID := uuid.NewString()
	reversal := &domain.JournalEntry{
		EntryID:         entryID,
		TenantID:        suite.tenantID,
		Status:          domain.Posted,
		OriginalEntryID: &sourceID,
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID, true).Return(reversal, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.tenantID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReversalOfReversal)
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_ReversedIsImmutable() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reversed := &domain.JournalEntry{
		EntryID:  entryID,
		TenantID: suite.tenantID,
		Status:   domain.Reversed,
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.tenantID, entryID, false).Return(reversed, nil).Once()

	newDesc := "corrected"
	_, err := suite.service.UpdateEntry(ctx, suite.tenantID, entryID, dto.UpdateJournalEntryRequest{Description: &newDesc}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntryHeader", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListEntries_PaginatesWithToken() {
	ctx := context.Background()
	now := time.Now()

	// limit 2 asks the repository for 3 rows; 3 returned means a next page exists
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), TenantID: suite.tenantID, EntryDate: now, AuditFields: domain.AuditFields{CreatedAt: now}},
		{EntryID: uuid.NewString(), TenantID: suite.tenantID, EntryDate: now.Add(-time.Hour), AuditFields: domain.AuditFields{CreatedAt: now.Add(-time.Hour)}},
		{EntryID: uuid.NewString(), TenantID: suite.tenantID, EntryDate: now.Add(-2 * time.Hour), AuditFields: domain.AuditFields{CreatedAt: now.Add(-2 * time.Hour)}},
	}
	suite.mockJournalRepo.On("ListEntries", ctx, suite.tenantID, mock.MatchedBy(func(f portsrepo.ListEntriesFilter) bool {
		return f.Limit == 3
	})).Return(entries, nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.tenantID, dto.ListEntriesParams{Limit: 2}, suite.userID)

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.NotEmpty(*resp.NextToken)
}

func (suite *JournalServiceTestSuite) TestListEntries_LastPageHasNoToken() {
	ctx := context.Background()
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), TenantID: suite.tenantID, EntryDate: time.Now()},
	}
	suite.mockJournalRepo.On("ListEntries", ctx, suite.tenantID, mock.AnythingOfType("repositories.ListEntriesFilter")).
		Return(entries, nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.tenantID, dto.ListEntriesParams{Limit: 10}, suite.userID)

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Nil(resp.NextToken)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
