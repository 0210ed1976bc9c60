package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Nature is the sign convention of an account type.
type Nature string

const (
	// DebitPositive accounts (assets, expenses) grow when debited.
	DebitPositive Nature = "DEBIT_POSITIVE"
	// CreditPositive accounts (liabilities, equity, revenue, income) grow when credited.
	CreditPositive Nature = "CREDIT_POSITIVE"
)

// balanceScale is the number of decimal places at which debit/credit sums are
// compared. Intermediate sums are never truncated; rounding happens only here.
const balanceScale = 2

// NatureOf resolves the sign convention for an account type. This is the
// single source of truth; no other code re-derives the debit/credit grouping.
func NatureOf(accountType domain.AccountType) (Nature, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return DebitPositive, nil
	case domain.Liability, domain.Equity, domain.Revenue, domain.Income:
		return CreditPositive, nil
	default:
		return "", fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// SignedAmount returns the balance movement of one debit/credit pair under the
// given nature: debit-credit for debit-positive accounts, credit-debit for
// credit-positive ones.
func SignedAmount(debit, credit decimal.Decimal, nature Nature) decimal.Decimal {
	if nature == DebitPositive {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// LineMovement resolves the signed movement of a journal line against an
// account of the given type.
func LineMovement(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	nature, err := NatureOf(accountType)
	if err != nil {
		return decimal.Zero, fmt.Errorf("account %s: %w", line.AccountID, err)
	}
	return SignedAmount(line.Debit, line.Credit, nature), nil
}

// ValidateEntryBalance checks the double-entry invariant for a set of lines:
// at least two lines, every line one-sided with a positive amount, and the
// debit and credit totals equal when rounded to two decimal places.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal entry must have at least two lines")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("line amounts must not be negative for account %s", line.AccountID)
		}
		oneSided := (line.Debit.IsPositive() && line.Credit.IsZero()) ||
			(line.Credit.IsPositive() && line.Debit.IsZero())
		if !oneSided {
			return fmt.Errorf("exactly one of debit/credit must be set for account %s", line.AccountID)
		}
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}

	if !debits.Round(balanceScale).Equal(credits.Round(balanceScale)) {
		return fmt.Errorf("entry does not balance: debits sum is %s and credits sum is %s",
			debits.String(), credits.String())
	}
	return nil
}

// EntryAmount computes the economic value of a balanced entry: the sum of the
// debit side, which for a balanced entry equals the credit side.
func EntryAmount(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Debit)
	}
	return total
}
