package queries

import (
	"context"

	"stayflow/internal/infra"
	"stayflow/internal/pkg/errs"
	"stayflow/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrForbidden       = errs.New("not allowed to view this booking")
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByHostUser(ctx context.Context, hostUserID uuid.UUID) ([]*BookingView, error)
	ListAll(ctx context.Context) ([]*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, actor shared.Actor) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !actor.CanManageBooking(view.HostUserID) {
		return nil, ErrForbidden
	}
	return view, nil
}

// List returns every booking for admins and only the acting host's bookings
// otherwise.
func (q *bookingQueriesImpl) List(ctx context.Context, actor shared.Actor) ([]*BookingView, error) {
	if actor.IsAdmin() {
		return q.store.ListAll(ctx)
	}
	if !actor.IsHost() {
		return nil, ErrForbidden
	}
	return q.store.ListByHostUser(ctx, actor.ID)
}
