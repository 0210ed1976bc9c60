package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine_app/internal/apperrors"
	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine_app/internal/core/services"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockPurchaseRepo *MockPurchaseRepository
	mockPartyRepo    *MockPartyRepository
	mockJournalSvc   *MockJournalService
	mockAccountSvc   *MockAccountService
	service          portssvc.ReconciliationSvcFacade
	tenantID         string
	userID           string
	purchasesAccount domain.Account
	supplierAccount  domain.Account
	cashAccount      domain.Account
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockPurchaseRepo = new(MockPurchaseRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.mockJournalSvc = new(MockJournalService)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewReconciliationService(suite.mockPurchaseRepo, suite.mockPartyRepo, suite.mockJournalSvc, suite.mockAccountSvc, nil)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.purchasesAccount = domain.Account{AccountID: uuid.NewString(), TenantID: suite.tenantID, Name: "Purchases", AccountType: domain.Expense, CurrencyCode: "USD", IsActive: true}
	suite.supplierAccount = domain.Account{AccountID: uuid.NewString(), TenantID: suite.tenantID, Name: "Acme Ltd", AccountType: domain.Liability, CurrencyCode: "USD", IsActive: true}
	suite.cashAccount = domain.Account{AccountID: uuid.NewString(), TenantID: suite.tenantID, Name: "Cash", AccountType: domain.Asset, CurrencyCode: "USD", IsActive: true}
}

func (suite *ReconciliationServiceTestSuite) invoice(number string, total, paid int64) domain.PurchaseInvoice {
	return domain.PurchaseInvoice{
		InvoiceID:     uuid.NewString(),
		TenantID:      suite.tenantID,
		InvoiceNumber: number,
		SupplierName:  "Acme Ltd",
		InvoiceDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CurrencyCode:  "USD",
		Total:         decimal.NewFromInt(total),
		AmountPaid:    decimal.NewFromInt(paid),
	}
}

func (suite *ReconciliationServiceTestSuite) expectAccountResolution(withCash bool) {
	suite.mockAccountSvc.On("FindOrCreateAccountByName", mock.Anything, suite.tenantID, "Purchases", domain.Expense, "USD", suite.userID).
		Return(&suite.purchasesAccount, nil)
	suite.mockAccountSvc.On("FindOrCreateAccountByName", mock.Anything, suite.tenantID, "Acme Ltd", domain.Liability, "USD", suite.userID).
		Return(&suite.supplierAccount, nil)
	if withCash {
		suite.mockAccountSvc.On("FindOrCreateAccountByName", mock.Anything, suite.tenantID, "Cash", domain.Asset, "USD", suite.userID).
			Return(&suite.cashAccount, nil)
	}
}

func (suite *ReconciliationServiceTestSuite) TestSync_BackfillsMissingEntry() {
	ctx := context.Background()
	inv := suite.invoice("INV-100", 500, 0)

	suite.mockPurchaseRepo.On("ListAllPurchaseInvoices", ctx, suite.tenantID).
		Return([]domain.PurchaseInvoice{inv}, nil).Once()
	suite.mockJournalSvc.On("GetEntryByReference", ctx, suite.tenantID, "INV-100", suite.userID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.expectAccountResolution(false)

	var posted dto.CreateJournalEntryRequest
	suite.mockJournalSvc.On("PostEntry", ctx, suite.tenantID, mock.AnythingOfType("dto.CreateJournalEntryRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			posted = args.Get(2).(dto.CreateJournalEntryRequest)
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()

	result, err := suite.service.SyncPurchasesToLedger(ctx, suite.tenantID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.FixedCount)
	suite.Equal(0, result.SkippedCount)
	suite.Equal(0, result.FailedCount)

	suite.Equal("INV-100", posted.Reference)
	suite.Require().Len(posted.Lines, 2)
	suite.Equal(suite.purchasesAccount.AccountID, posted.Lines[0].AccountID)
	suite.True(posted.Lines[0].Debit.Equal(decimal.NewFromInt(500)))
	suite.Equal(suite.supplierAccount.AccountID, posted.Lines[1].AccountID)
	suite.True(posted.Lines[1].Credit.Equal(decimal.NewFromInt(500)))
}

func (suite *ReconciliationServiceTestSuite) TestSync_PaidInvoicePostsFourLines() {
	ctx := context.Background()
	inv := suite.invoice("INV-200", 500, 500)

	suite.mockPurchaseRepo.On("ListAllPurchaseInvoices", ctx, suite.tenantID).
		Return([]domain.PurchaseInvoice{inv}, nil).Once()
	suite.mockJournalSvc.On("GetEntryByReference", ctx, suite.tenantID, "INV-200", suite.userID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.expectAccountResolution(true)

	var posted dto.CreateJournalEntryRequest
	suite.mockJournalSvc.On("PostEntry", ctx, suite.tenantID, mock.AnythingOfType("dto.CreateJournalEntryRequest"), suite.userID).
		Run(func(args mock.Arguments) {
			posted = args.Get(2).(dto.CreateJournalEntryRequest)
		}).
		Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()

	result, err := suite.service.SyncPurchasesToLedger(ctx, suite.tenantID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.FixedCount)
	suite.Require().Len(posted.Lines, 4)

	// both sides sum to total + amountPaid
	debits, credits := decimal.Zero, decimal.Zero
	for _, l := range posted.Lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	suite.True(debits.Equal(decimal.NewFromInt(1000)))
	suite.True(credits.Equal(decimal.NewFromInt(1000)))

	// settlement pair: debit the supplier back down, credit cash
	suite.Equal(suite.supplierAccount.AccountID, posted.Lines[2].AccountID)
	suite.True(posted.Lines[2].Debit.Equal(decimal.NewFromInt(500)))
	suite.Equal(suite.cashAccount.AccountID, posted.Lines[3].AccountID)
	suite.True(posted.Lines[3].Credit.Equal(decimal.NewFromInt(500)))
}

func (suite *ReconciliationServiceTestSuite) TestSync_SecondRunSkips() {
	ctx := context.Background()
	inv := suite.invoice("INV-300", 250, 0)

	suite.mockPurchaseRepo.On("ListAllPurchaseInvoices", ctx, suite.tenantID).
		Return([]domain.PurchaseInvoice{inv}, nil).Once()
	suite.mockJournalSvc.On("GetEntryByReference", ctx, suite.tenantID, "INV-300", suite.userID).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), Reference: "INV-300"}, nil).Once()

	result, err := suite.service.SyncPurchasesToLedger(ctx, suite.tenantID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, result.FixedCount)
	suite.Equal(1, result.SkippedCount)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestSync_ConcurrentDuplicateCountsAsSkipped() {
	ctx := context.Background()
	inv := suite.invoice("INV-400", 100, 0)

	suite.mockPurchaseRepo.On("ListAllPurchaseInvoices", ctx, suite.tenantID).
		Return([]domain.PurchaseInvoice{inv}, nil).Once()
	suite.mockJournalSvc.On("GetEntryByReference", ctx, suite.tenantID, "INV-400", suite.userID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.expectAccountResolution(false)
	suite.mockJournalSvc.On("PostEntry", ctx, suite.tenantID, mock.AnythingOfType("dto.CreateJournalEntryRequest"), suite.userID).
		Return(nil, apperrors.ErrDuplicate).Once()

	result, err := suite.service.SyncPurchasesToLedger(ctx, suite.tenantID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, result.FixedCount)
	suite.Equal(1, result.SkippedCount)
	suite.Equal(0, result.FailedCount)
}

func (suite *ReconciliationServiceTestSuite) TestSync_OneFailureDoesNotAbortBatch() {
	ctx := context.Background()
	bad := suite.invoice("INV-500", 100, 0)
	good := suite.invoice("INV-501", 300, 0)

	suite.mockPurchaseRepo.On("ListAllPurchaseInvoices", ctx, suite.tenantID).
		Return([]domain.PurchaseInvoice{bad, good}, nil).Once()
	suite.mockJournalSvc.On("GetEntryByReference", ctx, suite.tenantID, "INV-500", suite.userID).
		Return(nil, apperrors.NewAppError(500, "database unavailable", nil)).Once()
	suite.mockJournalSvc.On("GetEntryByReference", ctx, suite.tenantID, "INV-501", suite.userID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.expectAccountResolution(false)
	suite.mockJournalSvc.On("PostEntry", ctx, suite.tenantID, mock.AnythingOfType("dto.CreateJournalEntryRequest"), suite.userID).
		Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()

	result, err := suite.service.SyncPurchasesToLedger(ctx, suite.tenantID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.FixedCount)
	suite.Equal(0, result.SkippedCount)
	suite.Equal(1, result.FailedCount)
}

func (suite *ReconciliationServiceTestSuite) TestSync_PrefersLinkedSupplierAccount() {
	ctx := context.Background()
	supplierID := uuid.NewString()
	inv := suite.invoice("INV-600", 120, 0)
	inv.SupplierID = &supplierID

	linkedAccountID := suite.supplierAccount.AccountID
	party := &domain.Party{
		PartyID:   supplierID,
		TenantID:  suite.tenantID,
		PartyType: domain.Supplier,
		Name:      "Acme Ltd",
		AccountID: &linkedAccountID,
	}

	suite.mockPurchaseRepo.On("ListAllPurchaseInvoices", ctx, suite.tenantID).
		Return([]domain.PurchaseInvoice{inv}, nil).Once()
	suite.mockJournalSvc.On("GetEntryByReference", ctx, suite.tenantID, "INV-600", suite.userID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountSvc.On("FindOrCreateAccountByName", mock.Anything, suite.tenantID, "Purchases", domain.Expense, "USD", suite.userID).
		Return(&suite.purchasesAccount, nil).Once()
	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.tenantID, supplierID).Return(party, nil).Once()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.tenantID, linkedAccountID, suite.userID).
		Return(&suite.supplierAccount, nil).Once()
	suite.mockJournalSvc.On("PostEntry", ctx, suite.tenantID, mock.AnythingOfType("dto.CreateJournalEntryRequest"), suite.userID).
		Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()

	result, err := suite.service.SyncPurchasesToLedger(ctx, suite.tenantID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, result.FixedCount)
	// name-based fallback never ran for the supplier
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "FindOrCreateAccountByName", mock.Anything, suite.tenantID, "Acme Ltd", domain.Liability, "USD", suite.userID)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
