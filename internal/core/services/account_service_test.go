package services_test

import (
	"context"
	"testing"

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

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockCurrencySvc *MockCurrencyService
	service         portssvc.AccountSvcFacade
	tenantID        string
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockCurrencySvc, nil)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) expectUSD() {
	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, "USD").
		Return(&domain.Currency{CurrencyCode: "USD", Name: "US Dollar", Precision: 2}, nil)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	suite.expectUSD()

	var saved *domain.Account
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("*domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.Account)
		}).
		Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, dto.CreateAccountRequest{
		Name:         "  Office Rent ",
		AccountType:  string(domain.Expense),
		CurrencyCode: "USD",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Office Rent", account.Name)
	suite.Equal(domain.Expense, account.AccountType)
	suite.True(account.IsActive)
	suite.NotEmpty(account.Code) // synthesized when the caller omits it
	suite.Equal(suite.userID, saved.CreatedBy)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()

	_, err := suite.service.CreateAccount(ctx, suite.tenantID, dto.CreateAccountRequest{
		Name:         "Mystery",
		AccountType:  "PROFIT",
		CurrencyCode: "USD",
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidAccountType)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownCurrency() {
	ctx := context.Background()
	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, "XXX").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, suite.tenantID, dto.CreateAccountRequest{
		Name:         "Petty Cash",
		AccountType:  string(domain.Asset),
		CurrencyCode: "XXX",
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnknownCurrency)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_MissingParent() {
	ctx := context.Background()
	suite.expectUSD()
	parentID := uuid.NewString()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, parentID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, suite.tenantID, dto.CreateAccountRequest{
		Name:            "Sub Account",
		AccountType:     string(domain.Asset),
		CurrencyCode:    "USD",
		ParentAccountID: &parentID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrParentAccountWrong)
}

func (suite *AccountServiceTestSuite) TestFindOrCreate_MatchesNormalizedName() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		Name:         "Acme Supplies",
		AccountType:  domain.Liability,
		CurrencyCode: "USD",
		IsActive:     true,
	}
	suite.mockAccountRepo.On("FindAccountByNormalizedName", ctx, suite.tenantID, "acme supplies").
		Return(existing, nil).Once()

	account, err := suite.service.FindOrCreateAccountByName(ctx, suite.tenantID, "  Acme   Supplies ", domain.Liability, "USD", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(existing.AccountID, account.AccountID)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestFindOrCreate_CreatesWhenMissing() {
	ctx := context.Background()
	suite.expectUSD()
	suite.mockAccountRepo.On("FindAccountByNormalizedName", ctx, suite.tenantID, "cash").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("*domain.Account")).
		Return(nil).Once()

	account, err := suite.service.FindOrCreateAccountByName(ctx, suite.tenantID, "Cash", domain.Asset, "USD", suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Cash", account.Name)
	suite.Equal(domain.Asset, account.AccountType)
	suite.Equal("USD", account.CurrencyCode)
}

func (suite *AccountServiceTestSuite) TestFindOrCreate_LosingRaceFallsBackToLookup() {
	ctx := context.Background()
	suite.expectUSD()
	winner := &domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		Name:         "Cash",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
		IsActive:     true,
	}
	suite.mockAccountRepo.On("FindAccountByNormalizedName", ctx, suite.tenantID, "cash").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("*domain.Account")).
		Return(apperrors.ErrDuplicate).Once()
	suite.mockAccountRepo.On("FindAccountByNormalizedName", ctx, suite.tenantID, "cash").
		Return(winner, nil).Once()

	account, err := suite.service.FindOrCreateAccountByName(ctx, suite.tenantID, "Cash", domain.Asset, "USD", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(winner.AccountID, account.AccountID)
}

func (suite *AccountServiceTestSuite) TestCalculateBalance_LiabilityIsCreditPositive() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		Name:         "Payables",
		AccountType:  domain.Liability,
		CurrencyCode: "USD",
		IsActive:     true,
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, account.AccountID).
		Return(account, nil).Once()
	suite.mockAccountRepo.On("SumAccountMovements", ctx, suite.tenantID, account.AccountID).
		Return(decimal.NewFromInt(200), decimal.NewFromInt(700), nil).Once()

	balance, err := suite.service.CalculateAccountBalance(ctx, suite.tenantID, account.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(500)))
}

func (suite *AccountServiceTestSuite) TestCalculateBalance_AssetIsDebitPositive() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:    uuid.NewString(),
		TenantID:     suite.tenantID,
		Name:         "Bank",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
		IsActive:     true,
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, account.AccountID).
		Return(account, nil).Once()
	suite.mockAccountRepo.On("SumAccountMovements", ctx, suite.tenantID, account.AccountID).
		Return(decimal.NewFromInt(700), decimal.NewFromInt(200), nil).Once()

	balance, err := suite.service.CalculateAccountBalance(ctx, suite.tenantID, account.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(500)))
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_BlankNameRejected() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Name:        "Bank",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, account.AccountID).
		Return(account, nil).Once()

	blank := "   "
	_, err := suite.service.UpdateAccount(ctx, suite.tenantID, account.AccountID, dto.UpdateAccountRequest{Name: &blank}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNameRequired)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
