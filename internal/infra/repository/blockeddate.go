package repository

import (
	"context"
	"time"

	"stayflow/internal/domain/booking"
	"stayflow/internal/infra"
	"stayflow/internal/infra/db"
	"stayflow/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BlockedDateRepository struct {
	db *pgxpool.Pool
}

func NewBlockedDateRepository(pool *pgxpool.Pool) *BlockedDateRepository {
	return &BlockedDateRepository{db: pool}
}

const blockedDaysSQL = `
SELECT day
FROM blocked_dates
WHERE (apartment_id = $1 OR apartment_id IS NULL)
  AND day >= $2 AND day < $3
ORDER BY day`

// DaysInRange returns blocked days intersecting [start, end) for an apartment,
// including platform-wide blocks (NULL apartment_id).
func (r *BlockedDateRepository) DaysInRange(ctx context.Context, tx db.DBTX, apartmentID uuid.UUID, rng booking.DateRange) ([]time.Time, error) {
	rows, err := tx.Query(ctx, blockedDaysSQL,
		apartmentID,
		pgconv.DateToPgtype(rng.Start()),
		pgconv.DateToPgtype(rng.End()),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query blocked dates", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var day pgtype.Date
		if err := rows.Scan(&day); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blocked date", err)
		}
		days = append(days, pgconv.DateFromPgtype(day))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate blocked dates", err)
	}
	return days, nil
}

const addBlockedDateSQL = `
INSERT INTO blocked_dates (apartment_id, day)
VALUES ($1, $2)
ON CONFLICT (apartment_id, day) DO NOTHING`

func (r *BlockedDateRepository) Add(ctx context.Context, apartmentID *uuid.UUID, day time.Time) error {
	_, err := r.db.Exec(ctx, addBlockedDateSQL, pgconv.UUIDPtrToPgtype(apartmentID), pgconv.DateToPgtype(day))
	if err != nil {
		return infra.WrapRepoErr("failed to add blocked date", err)
	}
	return nil
}

const removeBlockedDateSQL = `
DELETE FROM blocked_dates
WHERE apartment_id IS NOT DISTINCT FROM $1 AND day = $2`

func (r *BlockedDateRepository) Remove(ctx context.Context, apartmentID *uuid.UUID, day time.Time) error {
	_, err := r.db.Exec(ctx, removeBlockedDateSQL, pgconv.UUIDPtrToPgtype(apartmentID), pgconv.DateToPgtype(day))
	if err != nil {
		return infra.WrapRepoErr("failed to remove blocked date", err)
	}
	return nil
}
