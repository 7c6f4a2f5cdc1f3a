package repository

import (
	"context"

	"stayflow/internal/domain/apartment"
	"stayflow/internal/infra"
	"stayflow/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ApartmentRepository struct {
	db *pgxpool.Pool
}

func NewApartmentRepository(pool *pgxpool.Pool) *ApartmentRepository {
	return &ApartmentRepository{db: pool}
}

const findApartmentSQL = `
SELECT a.id, a.host_id, h.user_id,
       a.name, a.slug,
       a.price_per_night_cents, a.service_fee_cents,
       a.capacity, a.min_stay_nights, a.max_stay_nights,
       a.currency, a.active, a.created_at, a.updated_at
FROM apartments a
JOIN hosts h ON h.id = a.host_id
WHERE a.id = $1`

func (r *ApartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*apartment.Apartment, error) {
	var (
		aptID, hostID, hostUserID        uuid.UUID
		name, slug, currency             string
		priceCents, feeCents             int64
		capacity, minStay, maxStay       int
		active                           bool
		createdAt, updatedAt             pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, findApartmentSQL, id).Scan(
		&aptID, &hostID, &hostUserID,
		&name, &slug,
		&priceCents, &feeCents,
		&capacity, &minStay, &maxStay,
		&currency, &active, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("apartment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find apartment by id", err)
	}

	apt, err := apartment.NewApartment(
		aptID, hostID, hostUserID,
		name, slug,
		priceCents, feeCents,
		capacity, minStay, maxStay,
		currency, active,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("stored apartment is invalid", err)
	}
	return apt, nil
}
