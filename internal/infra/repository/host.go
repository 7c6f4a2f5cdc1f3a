package repository

import (
	"context"

	"stayflow/internal/domain/host"
	"stayflow/internal/infra"
	"stayflow/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HostRepository struct {
	db *pgxpool.Pool
}

func NewHostRepository(pool *pgxpool.Pool) *HostRepository {
	return &HostRepository{db: pool}
}

const hostSQL = `
SELECT id, user_id, business_name, phone, commission_percent,
       payout_account_id, currency, created_at, updated_at
FROM hosts`

func (r *HostRepository) FindByID(ctx context.Context, id uuid.UUID) (*host.Host, error) {
	return r.scanHost(r.db.QueryRow(ctx, hostSQL+` WHERE id = $1`, id))
}

func (r *HostRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*host.Host, error) {
	return r.scanHost(r.db.QueryRow(ctx, hostSQL+` WHERE user_id = $1`, userID))
}

func (r *HostRepository) scanHost(row pgx.Row) (*host.Host, error) {
	var (
		id, userID           uuid.UUID
		businessName, phone  string
		commission           pgtype.Numeric
		payoutAccount        pgtype.Text
		currency             string
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&id, &userID, &businessName, &phone, &commission, &payoutAccount, &currency, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("host not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find host", err)
	}

	pct := 0.0
	if commission.Valid {
		v, err := commission.Float64Value()
		if err != nil {
			return nil, infra.WrapRepoErr("stored commission is invalid", err)
		}
		pct = v.Float64
	}

	return host.ReconstructHost(
		id, userID, businessName, phone, pct,
		pgconv.StringPtrFromPgtype(payoutAccount),
		currency,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}
