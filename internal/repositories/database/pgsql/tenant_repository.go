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

const tenantColumns = `tenant_id, name, description, default_currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxTenantRepository struct {
	BaseRepository
}

// newPgxTenantRepository creates a new repository for tenant data.
func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepository {
	return &PgxTenantRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TenantRepository = (*PgxTenantRepository)(nil)

// SaveTenant inserts a new tenant row.
func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant *domain.Tenant) error {
	m := mapping.ToModelTenant(*tenant)
	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.TenantID, m.Name, m.Description, m.DefaultCurrencyCode, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert tenant "+m.TenantID, err)
	}
	return nil
}

func scanTenant(row pgx.Row) (*domain.Tenant, error) {
	var m models.Tenant
	err := row.Scan(
		&m.TenantID, &m.Name, &m.Description, &m.DefaultCurrencyCode, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan tenant row", err)
	}
	tenant := mapping.ToDomainTenant(m)
	return &tenant, nil
}

// FindTenantByID retrieves one tenant.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE tenant_id = $1;`
	return scanTenant(r.db(ctx).QueryRow(ctx, query, tenantID))
}

// ListTenantsByUser lists the tenants a user has a role in.
func (r *PgxTenantRepository) ListTenantsByUser(ctx context.Context, userID string) ([]domain.Tenant, error) {
	query := `
		SELECT t.tenant_id, t.name, t.description, t.default_currency_code, t.is_active,
		       t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
		FROM tenants t
		JOIN tenant_users tu ON tu.tenant_id = t.tenant_id
		WHERE tu.user_id = $1
		ORDER BY t.name;
	`
	rows, err := r.db(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tenants for user "+userID, err)
	}
	defer rows.Close()

	tenants := []domain.Tenant{}
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, *tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tenant rows", err)
	}
	return tenants, nil
}

// SaveUserTenant upserts a user's role within a tenant.
func (r *PgxTenantRepository) SaveUserTenant(ctx context.Context, userTenant *domain.UserTenant) error {
	m := mapping.ToModelUserTenant(*userTenant)
	query := `
		INSERT INTO tenant_users (user_id, tenant_id, role, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, tenant_id)
		DO UPDATE SET role = EXCLUDED.role, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.UserID, m.TenantID, m.Role,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save user tenant role", err)
	}
	return nil
}

// FindUserTenant retrieves a user's role grant within a tenant.
func (r *PgxTenantRepository) FindUserTenant(ctx context.Context, userID string, tenantID string) (*domain.UserTenant, error) {
	query := `
		SELECT user_id, tenant_id, role, created_at, created_by, last_updated_at, last_updated_by
		FROM tenant_users
		WHERE user_id = $1 AND tenant_id = $2;
	`
	var m models.UserTenant
	err := r.db(ctx).QueryRow(ctx, query, userID, tenantID).Scan(
		&m.UserID, &m.TenantID, &m.Role,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan user tenant row", err)
	}
	userTenantDomain := mapping.ToDomainUserTenant(m)
	return &userTenantDomain, nil
}
