package repository

import (
	"context"

	"stayflow/internal/domain/booking"
	"stayflow/internal/infra"
	"stayflow/internal/infra/db"
	"stayflow/internal/pkg/pgconv"
	"stayflow/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: pool}
}

const createBookingSQL = `
INSERT INTO bookings (
    id, custom_booking_id, apartment_id, host_user_id,
    guest_name, guest_email, guest_phone,
    start_date, end_date, num_guests,
    price_per_night_cents, total_cents, deposit_cents,
    status, payment_session_id, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now())
RETURNING id`

// Create inserts the booking row. An overlap with a non-canceled booking for
// the same apartment violates the bookings_no_overlap exclusion constraint and
// comes back as KindConflict.
func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.CustomID(),
		b.ApartmentID(),
		b.HostUserID(),
		b.Guest().Name(),
		b.Guest().Email(),
		b.Guest().Phone(),
		pgconv.DateToPgtype(b.Dates().Start()),
		pgconv.DateToPgtype(b.Dates().End()),
		b.NumGuests(),
		b.PricePerNight().Cents(),
		b.Total().Cents(),
		b.Deposit().Cents(),
		b.Status().String(),
		pgconv.StringPtrToPgtype(b.PaymentSessionID()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

const activeRangesSQL = `
SELECT start_date, end_date
FROM bookings
WHERE apartment_id = $1 AND status <> 'canceled'`

// ActiveRanges returns the date ranges of all non-canceled bookings for an
// apartment. Canceled bookings never block availability.
func (r *BookingRepository) ActiveRanges(ctx context.Context, tx db.DBTX, apartmentID uuid.UUID) ([]booking.DateRange, error) {
	rows, err := tx.Query(ctx, activeRangesSQL, apartmentID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query booking ranges", err)
	}
	defer rows.Close()

	var ranges []booking.DateRange
	for rows.Next() {
		var start, end pgtype.Date
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking range", err)
		}
		rng, err := booking.NewDateRange(pgconv.DateFromPgtype(start), pgconv.DateFromPgtype(end))
		if err != nil {
			return nil, infra.WrapRepoErr("stored booking range is invalid", err)
		}
		ranges = append(ranges, rng)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking ranges", err)
	}
	return ranges, nil
}

const bookingViewSQL = `
SELECT b.id, b.custom_booking_id, b.apartment_id, a.name, b.host_user_id,
       b.guest_name, b.guest_email, b.guest_phone,
       b.start_date, b.end_date, b.num_guests,
       b.price_per_night_cents, b.total_cents, b.deposit_cents,
       b.status, b.payment_session_id, b.created_at, b.updated_at
FROM bookings b
JOIN apartments a ON a.id = b.apartment_id`

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, bookingViewSQL+` WHERE b.id = $1`, id)
	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by id", err)
	}
	return view, nil
}

func (r *BookingRepository) FindByPaymentSession(ctx context.Context, sessionID string) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, bookingViewSQL+` WHERE b.payment_session_id = $1`, sessionID)
	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found for payment session", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by payment session", err)
	}
	return view, nil
}

func (r *BookingRepository) ListByHostUser(ctx context.Context, hostUserID uuid.UUID) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, bookingViewSQL+` WHERE b.host_user_id = $1 ORDER BY b.created_at DESC`, hostUserID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by host", err)
	}
	defer rows.Close()
	return collectBookingViews(rows)
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, bookingViewSQL+` ORDER BY b.created_at DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()
	return collectBookingViews(rows)
}

const lockBookingSQL = `
SELECT id, host_user_id, status
FROM bookings
WHERE id = $1
FOR UPDATE`

// LockForUpdate loads the minimal row needed for an authorized status change,
// holding a row lock for the rest of the transaction.
func (r *BookingRepository) LockForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*queries.BookingLock, error) {
	var lock queries.BookingLock
	var status string
	err := tx.QueryRow(ctx, lockBookingSQL, id).Scan(&lock.ID, &lock.HostUserID, &status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	lock.Status = booking.Status(status)
	return &lock, nil
}

const updateStatusSQL = `
UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error {
	tag, err := tx.Exec(ctx, updateStatusSQL, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

const attachSessionSQL = `
UPDATE bookings SET payment_session_id = $2, updated_at = now() WHERE id = $1`

func (r *BookingRepository) AttachPaymentSession(ctx context.Context, id uuid.UUID, sessionID string) error {
	tag, err := r.db.Exec(ctx, attachSessionSQL, id, sessionID)
	if err != nil {
		return infra.WrapRepoErr("failed to attach payment session", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

const markPaidSQL = `
UPDATE bookings
SET status = 'paid', updated_at = now()
WHERE payment_session_id = $1 AND status IN ('pending', 'confirmed')`

// MarkPaidBySession transitions the booking matched by a checkout session to
// paid. The status guard makes redelivered webhook events a no-op, so the
// caller can distinguish "transitioned now" from "was already paid".
func (r *BookingRepository) MarkPaidBySession(ctx context.Context, sessionID string) (bool, error) {
	tag, err := r.db.Exec(ctx, markPaidSQL, sessionID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark booking paid", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	var start, end pgtype.Date
	var session pgtype.Text
	var created, updated pgtype.Timestamptz
	var status string

	err := row.Scan(
		&v.ID, &v.CustomBookingID, &v.ApartmentID, &v.ApartmentName, &v.HostUserID,
		&v.GuestName, &v.GuestEmail, &v.GuestPhone,
		&start, &end, &v.NumGuests,
		&v.PricePerNightCents, &v.TotalCents, &v.DepositCents,
		&status, &session, &created, &updated,
	)
	if err != nil {
		return nil, err
	}

	v.StartDate = pgconv.DateFromPgtype(start)
	v.EndDate = pgconv.DateFromPgtype(end)
	v.Nights = int(v.EndDate.Sub(v.StartDate).Hours() / 24)
	v.Status = status
	v.PaymentSessionID = pgconv.StringPtrFromPgtype(session)
	v.CreatedAt = pgconv.TimeFromPgtype(created)
	v.UpdatedAt = pgconv.TimeFromPgtype(updated)
	return &v, nil
}

func collectBookingViews(rows pgx.Rows) ([]*queries.BookingView, error) {
	var views []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return views, nil
}
