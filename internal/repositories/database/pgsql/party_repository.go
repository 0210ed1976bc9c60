package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/ledger_engine_app/internal/apperrors"
	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine_app/internal/models"
	"github.com/SscSPs/ledger_engine_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const partyColumns = `party_id, tenant_id, party_type, name, account_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates a new repository for customer/supplier data.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepository {
	return &PgxPartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PartyRepository = (*PgxPartyRepository)(nil)

// SaveParty inserts a new party row.
func (r *PgxPartyRepository) SaveParty(ctx context.Context, party *domain.Party) error {
	m := mapping.ToModelParty(*party)
	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.PartyID, m.TenantID, m.PartyType, m.Name, m.AccountID, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert party "+m.PartyID, err)
	}
	return nil
}

// UpdateParty persists the mutable party columns.
func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party *domain.Party) error {
	m := mapping.ToModelParty(*party)
	query := `
		UPDATE parties
		SET name = $3, account_id = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $1 AND party_id = $2;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.TenantID, m.PartyID, m.Name, m.AccountID, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update party "+m.PartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanParty(row pgx.Row) (*domain.Party, error) {
	var m models.Party
	err := row.Scan(
		&m.PartyID, &m.TenantID, &m.PartyType, &m.Name, &m.AccountID, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan party row", err)
	}
	party := mapping.ToDomainParty(m)
	return &party, nil
}

// FindPartyByID retrieves one party scoped to a tenant.
func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, tenantID string, partyID string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE tenant_id = $1 AND party_id = $2;`
	return scanParty(r.db(ctx).QueryRow(ctx, query, tenantID, partyID))
}

// FindPartyByNormalizedName matches the first active party of the type whose
// lowercased, trimmed name equals the given name.
func (r *PgxPartyRepository) FindPartyByNormalizedName(ctx context.Context, tenantID string, partyType domain.PartyType, name string) (*domain.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE tenant_id = $1 AND party_type = $2 AND lower(trim(name)) = $3 AND is_active = TRUE
		ORDER BY created_at
		LIMIT 1;
	`
	return scanParty(r.db(ctx).QueryRow(ctx, query, tenantID, string(partyType), name))
}

// ListParties retrieves a page of parties of one type ordered by name.
func (r *PgxPartyRepository) ListParties(ctx context.Context, tenantID string, partyType domain.PartyType, limit int, offset int) ([]domain.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE tenant_id = $1 AND party_type = $2
		ORDER BY name
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.db(ctx).Query(ctx, query, tenantID, string(partyType), limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query parties for tenant "+tenantID, err)
	}
	defer rows.Close()

	parties := []domain.Party{}
	for rows.Next() {
		party, err := scanParty(rows)
		if err != nil {
			return nil, err
		}
		parties = append(parties, *party)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating party rows", err)
	}
	return parties, nil
}
