package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"stayflow/internal/domain/booking"
	"stayflow/internal/infra"
	"stayflow/internal/infra/db"
	"stayflow/internal/pkg/errs"
	"stayflow/internal/usecase/queries"
	"stayflow/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrApartmentNotFound       = errs.New("apartment not found")
	ErrApartmentInactive       = errs.New("apartment is not active")
	ErrInvalidDateRange        = errs.New("invalid date range")
	ErrInvalidGuest            = errs.New("invalid guest details")
	ErrStayLengthInvalid       = errs.New("stay length outside allowed bounds")
	ErrCapacityExceeded        = errs.New("guest count exceeds capacity")
	ErrBookingConflict         = errs.New("booking conflict")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrNotBookingOwner         = errs.New("booking belongs to another host")
	ErrGuestsCannotCancel      = errs.New("guests cannot cancel bookings")
	ErrIllegalTransition       = errs.New("illegal booking status transition")
	ErrPaymentSessionFailed    = errs.New("payment session creation failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingParams struct {
	ApartmentID uuid.UUID
	GuestName   string
	GuestEmail  string
	GuestPhone  string
	StartDate   string
	EndDate     string
	NumGuests   int
}

// CreateBookingResult either carries the booking view (pay-on-arrival hosts)
// or a checkout URL the client must follow to the hosted payment page.
type CreateBookingResult struct {
	Booking     *queries.BookingView
	CheckoutURL string
}

type StatusChange struct {
	BookingID uuid.UUID
	Status    booking.Status
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error)
	CancelBooking(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	BulkUpdateStatus(ctx context.Context, actor shared.Actor, changes []StatusChange) error
}

type bookingCommandsImpl struct {
	bookings   BookingRepository
	apartments ApartmentRepository
	hosts      HostRepository
	blocked    BlockedDateRepository
	checkout   CheckoutGateway
	mailer     Mailer
	factory    *booking.Factory
	pool       db.Pool
}

func NewBookingCommands(
	bookings BookingRepository,
	apartments ApartmentRepository,
	hosts HostRepository,
	blocked BlockedDateRepository,
	checkout CheckoutGateway,
	mailer Mailer,
	factory *booking.Factory,
	pool db.Pool,
) BookingCommands {
	return &bookingCommandsImpl{
		bookings:   bookings,
		apartments: apartments,
		hosts:      hosts,
		blocked:    blocked,
		checkout:   checkout,
		mailer:     mailer,
		factory:    factory,
		pool:       pool,
	}
}

// CreateBooking is the lifecycle entry point: validate, resolve the apartment,
// check availability, price the stay, and persist the pending booking. The
// availability check and the insert share a transaction, and the exclusion
// constraint on bookings turns any remaining race into ErrBookingConflict.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error) {
	dates, err := booking.ParseDateRange(params.StartDate, params.EndDate)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDateRange)
	}
	guest, err := booking.NewGuest(params.GuestName, params.GuestEmail, params.GuestPhone)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidGuest)
	}

	apt, err := c.apartments.FindByID(ctx, params.ApartmentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrApartmentNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !apt.IsActive() {
		return nil, ErrApartmentInactive
	}

	entity, _, err := c.factory.CreateBooking(apt, guest, dates, params.NumGuests)
	if err != nil {
		return nil, mapFactoryError(err)
	}

	hostEntity, err := c.hosts.FindByID(ctx, apt.HostID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	bookingID, err := shared.RunInTx(ctx, c.pool, func(tx db.DBTX) (uuid.UUID, error) {
		ranges, err := c.bookings.ActiveRanges(ctx, tx, apt.ID())
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		blockedDays, err := c.blocked.DaysInRange(ctx, tx, apt.ID(), dates)
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := booking.CheckAvailability(dates, ranges, blockedDays); err != nil {
			return uuid.Nil, errs.Mark(err, ErrBookingConflict)
		}

		id, err := c.bookings.Create(ctx, tx, entity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return uuid.Nil, ErrBookingConflict
			}
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return id, nil
	})
	if err != nil {
		return nil, err
	}

	if hostEntity.CanCollectOnline() {
		return c.startCheckout(ctx, bookingID, entity, apt.Name(), hostEntity.Currency(), *hostEntity.PayoutAccountID(), hostEntity.CommissionCents(entity.Total().Cents()))
	}

	// Pay-on-arrival flow: the booking is immediately confirmed.
	if err := c.bookings.UpdateStatus(ctx, c.pool, bookingID, booking.StatusConfirmed); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	view, err := c.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	c.notifyGuest(view, "booking_received", "Booking request received")
	return &CreateBookingResult{Booking: view}, nil
}

func (c *bookingCommandsImpl) startCheckout(
	ctx context.Context,
	bookingID uuid.UUID,
	entity *booking.Booking,
	apartmentName, currency, payoutAccountID string,
	applicationFeeCents int64,
) (*CreateBookingResult, error) {
	sess, err := c.checkout.CreateSession(ctx, CheckoutRequest{
		BookingID:           bookingID,
		BookingReference:    entity.CustomID(),
		Description:         fmt.Sprintf("%s, %d nights", apartmentName, entity.Dates().Nights()),
		AmountCents:         entity.Total().Cents(),
		Currency:            currency,
		GuestEmail:          entity.Guest().Email(),
		ConnectedAccountID:  payoutAccountID,
		ApplicationFeeCents: applicationFeeCents,
	})
	if err != nil {
		// The pending booking stays in place; the guest can retry payment and
		// the overlap constraint keeps the dates held.
		slog.Error("checkout session creation failed",
			"booking_id", bookingID, "error", err)
		return nil, errs.Mark(err, ErrPaymentSessionFailed)
	}

	if err := c.bookings.AttachPaymentSession(ctx, bookingID, sess.ID); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &CreateBookingResult{CheckoutURL: sess.URL}, nil
}

// CancelBooking cancels on behalf of a host or admin. Guest cancellation is
// deliberately not supported.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() && !actor.IsHost() {
		return ErrGuestsCannotCancel
	}

	_, err := shared.RunInTx(ctx, c.pool, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, c.applyStatusChange(ctx, tx, actor, StatusChange{BookingID: id, Status: booking.StatusCanceled})
	})
	return err
}

// BulkUpdateStatus applies all changes in one transaction. The first
// authorization or transition failure aborts the whole batch; consistency of
// the bulk operation wins over per-item granularity.
func (c *bookingCommandsImpl) BulkUpdateStatus(ctx context.Context, actor shared.Actor, changes []StatusChange) error {
	if !actor.IsAdmin() && !actor.IsHost() {
		return ErrNotBookingOwner
	}

	_, err := shared.RunInTx(ctx, c.pool, func(tx db.DBTX) (struct{}, error) {
		for _, change := range changes {
			if err := c.applyStatusChange(ctx, tx, actor, change); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	return err
}

func (c *bookingCommandsImpl) applyStatusChange(ctx context.Context, tx db.DBTX, actor shared.Actor, change StatusChange) error {
	if !change.Status.IsValid() {
		return ErrIllegalTransition
	}

	lock, err := c.bookings.LockForUpdate(ctx, tx, change.BookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBookingNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !actor.CanManageBooking(lock.HostUserID) {
		return ErrNotBookingOwner
	}
	if !lock.Status.CanTransitionTo(change.Status) {
		return ErrIllegalTransition
	}

	if err := c.bookings.UpdateStatus(ctx, tx, change.BookingID, change.Status); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *bookingCommandsImpl) notifyGuest(view *queries.BookingView, template, subject string) {
	if view == nil {
		return
	}
	err := c.mailer.Send(view.GuestEmail, subject, template, map[string]any{
		"GuestName":     view.GuestName,
		"BookingID":     view.CustomBookingID,
		"ApartmentName": view.ApartmentName,
		"StartDate":     view.StartDate.Format("2006-01-02"),
		"EndDate":       view.EndDate.Format("2006-01-02"),
		"Total":         fmt.Sprintf("%.2f", float64(view.TotalCents)/100),
	})
	if err != nil {
		slog.Warn("failed to send guest notification",
			"booking_id", view.ID, "template", template, "error", err)
	}
}

func mapFactoryError(err error) error {
	switch {
	case errors.Is(err, booking.ErrStayTooShort), errors.Is(err, booking.ErrStayTooLong):
		return errs.Mark(err, ErrStayLengthInvalid)
	case errors.Is(err, booking.ErrTooManyGuests):
		return errs.Mark(err, ErrCapacityExceeded)
	default:
		return errs.Mark(err, ErrInvalidDateRange)
	}
}
