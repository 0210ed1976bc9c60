package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine_app/internal/apperrors"
	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine_app/internal/utils/accounting"
)

var ErrInvalidDateRange = errors.New("statement range end must not precede its start")

// openingRowDescription labels the synthetic first row of every statement.
const openingRowDescription = "OPENING BALANCE"

// statementService builds dated statements with running balances. Balances
// are always derived from lines at read time; nothing here writes.
type statementService struct {
	BaseService
	statementRepo portsrepo.StatementRepository
	accountRepo   portsrepo.AccountRepository
	partyRepo     portsrepo.PartyRepository
}

// NewStatementService creates a new statement service.
func NewStatementService(statementRepo portsrepo.StatementRepository, accountRepo portsrepo.AccountRepository, partyRepo portsrepo.PartyRepository, authorizer portssvc.TenantAuthorizerSvc) portssvc.StatementSvcFacade {
	return &statementService{
		BaseService:   BaseService{TenantAuthorizer: authorizer},
		statementRepo: statementRepo,
		accountRepo:   accountRepo,
		partyRepo:     partyRepo,
	}
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// GetAccountStatement builds a statement for one account over [from, to].
// The opening balance is the signed sum of every line dated before the range;
// in-range rows are ordered by (entry date, entry number) so repeated calls
// produce byte-identical statements.
func (s *statementService) GetAccountStatement(ctx context.Context, tenantID string, accountID string, from time.Time, to time.Time, userID string) (*domain.AccountStatement, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	entity := domain.StatementEntity{
		ID:   account.AccountID,
		Name: account.Name,
		Type: "ACCOUNT",
	}
	return s.buildStatement(ctx, tenantID, account, entity, from, to)
}

// GetPartyStatement builds a statement for the party's linked account. A
// party with no resolvable account yields an empty statement carrying the
// failure on the entity rather than an error: one broken party must not sink
// a bulk statement run.
func (s *statementService) GetPartyStatement(ctx context.Context, tenantID string, partyID string, from time.Time, to time.Time, userID string) (*domain.AccountStatement, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	party, err := s.partyRepo.FindPartyByID(ctx, tenantID, partyID)
	if err != nil {
		return nil, err
	}

	entity := domain.StatementEntity{
		ID:   party.PartyID,
		Name: party.Name,
		Type: string(party.PartyType),
	}

	if party.AccountID == nil || *party.AccountID == "" {
		entity.Error = "party has no linked ledger account"
		return emptyStatement(entity, from, to), nil
	}

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, *party.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "Party account unresolvable", slog.String("party_id", partyID), slog.String("account_id", *party.AccountID))
			entity.Error = fmt.Sprintf("linked account %s not found", *party.AccountID)
			return emptyStatement(entity, from, to), nil
		}
		return nil, err
	}

	return s.buildStatement(ctx, tenantID, account, entity, from, to)
}

// buildStatement assembles opening row, movement rows and running balances.
func (s *statementService) buildStatement(ctx context.Context, tenantID string, account *domain.Account, entity domain.StatementEntity, from time.Time, to time.Time) (*domain.AccountStatement, error) {
	nature, err := accounting.NatureOf(account.AccountType)
	if err != nil {
		return nil, err
	}

	debits, credits, err := s.statementRepo.SumLinesBefore(ctx, tenantID, account.AccountID, from)
	if err != nil {
		return nil, err
	}
	opening := accounting.SignedAmount(debits, credits, nature)

	lines, err := s.statementRepo.FindLinesInRange(ctx, tenantID, account.AccountID, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.StatementRow, 0, len(lines)+1)
	rows = append(rows, domain.StatementRow{
		Date:        from,
		Description: openingRowDescription,
		Balance:     opening,
		IsOpening:   true,
	})

	running := opening
	for _, line := range lines {
		running = running.Add(accounting.SignedAmount(line.Debit, line.Credit, nature))
		description := line.Description
		if description == "" {
			description = line.EntryDescription
		}
		rows = append(rows, domain.StatementRow{
			EntryID:     line.EntryID,
			EntryNumber: line.EntryNumber,
			Date:        line.EntryDate,
			Description: description,
			Reference:   line.EntryReference,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Balance:     running,
		})
	}

	return &domain.AccountStatement{
		Entity:         entity,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		ClosingBalance: running,
		Rows:           rows,
	}, nil
}

// emptyStatement is the zero-row statement returned for unresolvable parties.
func emptyStatement(entity domain.StatementEntity, from time.Time, to time.Time) *domain.AccountStatement {
	return &domain.AccountStatement{
		Entity: entity,
		From:   from,
		To:     to,
		Rows:   []domain.StatementRow{},
	}
}
