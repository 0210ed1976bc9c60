package services

import (
	"context"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
)

// CurrencySvcFacade manages the currency registry.
type CurrencySvcFacade interface {
	// CreateCurrency registers a currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a currency by its ISO code.
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies lists all registered currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
