package queries

import (
	"context"
	"errors"
	"time"

	"stayflow/internal/domain/apartment"
	"stayflow/internal/domain/booking"
	"stayflow/internal/infra"
	"stayflow/internal/infra/db"
	"stayflow/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrApartmentNotFound = errs.New("apartment not found")

type ApartmentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*apartment.Apartment, error)
}

type BookingRangeReadStore interface {
	ActiveRanges(ctx context.Context, tx db.DBTX, apartmentID uuid.UUID) ([]booking.DateRange, error)
}

type BlockedDateReadStore interface {
	DaysInRange(ctx context.Context, tx db.DBTX, apartmentID uuid.UUID, rng booking.DateRange) ([]time.Time, error)
}

type AvailabilityQueries interface {
	Check(ctx context.Context, apartmentID uuid.UUID, rng booking.DateRange) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	apartments ApartmentReadStore
	bookings   BookingRangeReadStore
	blocked    BlockedDateReadStore
	pool       db.DBTX
}

func NewAvailabilityQueries(
	apartments ApartmentReadStore,
	bookings BookingRangeReadStore,
	blocked BlockedDateReadStore,
	pool db.DBTX,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		apartments: apartments,
		bookings:   bookings,
		blocked:    blocked,
		pool:       pool,
	}
}

// Check answers whether the candidate range is bookable right now. The answer
// is advisory: the create command re-checks inside its transaction and the
// exclusion constraint has the final word.
func (q *availabilityQueriesImpl) Check(ctx context.Context, apartmentID uuid.UUID, rng booking.DateRange) (*AvailabilityView, error) {
	apt, err := q.apartments.FindByID(ctx, apartmentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}

	view := &AvailabilityView{
		ApartmentID: apt.ID(),
		StartDate:   rng.Start().Format("2006-01-02"),
		EndDate:     rng.End().Format("2006-01-02"),
		Nights:      rng.Nights(),
	}

	if !apt.IsActive() {
		view.Reason = "apartment is not active"
		return view, nil
	}

	ranges, err := q.bookings.ActiveRanges(ctx, q.pool, apartmentID)
	if err != nil {
		return nil, err
	}
	blockedDays, err := q.blocked.DaysInRange(ctx, q.pool, apartmentID, rng)
	if err != nil {
		return nil, err
	}

	switch checkErr := booking.CheckAvailability(rng, ranges, blockedDays); {
	case checkErr == nil:
		view.Available = true
	case errors.Is(checkErr, booking.ErrRangeUnavailable):
		view.Reason = "dates overlap an existing booking"
	case errors.Is(checkErr, booking.ErrDateBlocked):
		view.Reason = "dates include a blocked day"
	default:
		return nil, checkErr
	}

	return view, nil
}
