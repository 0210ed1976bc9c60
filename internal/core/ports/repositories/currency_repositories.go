package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
)

// CurrencyRepository persists the currency registry.
type CurrencyRepository interface {
	SaveCurrency(ctx context.Context, currency *domain.Currency) error
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
