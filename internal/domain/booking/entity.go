package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidTransition = errors.New("illegal booking status transition")
	ErrStayTooShort      = errors.New("stay shorter than minimum nights")
	ErrStayTooLong       = errors.New("stay longer than maximum nights")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrRangeUnavailable  = errors.New("date range overlaps an existing booking")
	ErrDateBlocked       = errors.New("date range contains a blocked date")
	ErrTooManyGuests     = errors.New("guest count exceeds apartment capacity")
)

type Booking struct {
	id               uuid.UUID
	customID         string
	apartmentID      uuid.UUID
	hostUserID       uuid.UUID
	guest            Guest
	dates            DateRange
	numGuests        int
	pricePerNight    Money
	total            Money
	deposit          Money
	status           Status
	paymentSessionID *string
	createdAt        time.Time
	updatedAt        time.Time
}

func ReconstructBooking(
	id uuid.UUID,
	customID string,
	apartmentID, hostUserID uuid.UUID,
	guest Guest,
	dates DateRange,
	numGuests int,
	pricePerNight, total, deposit Money,
	status Status,
	paymentSessionID *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:               id,
		customID:         customID,
		apartmentID:      apartmentID,
		hostUserID:       hostUserID,
		guest:            guest,
		dates:            dates,
		numGuests:        numGuests,
		pricePerNight:    pricePerNight,
		total:            total,
		deposit:          deposit,
		status:           status,
		paymentSessionID: paymentSessionID,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID             { return b.id }
func (b *Booking) CustomID() string          { return b.customID }
func (b *Booking) ApartmentID() uuid.UUID    { return b.apartmentID }
func (b *Booking) HostUserID() uuid.UUID     { return b.hostUserID }
func (b *Booking) Guest() Guest              { return b.guest }
func (b *Booking) Dates() DateRange          { return b.dates }
func (b *Booking) NumGuests() int            { return b.numGuests }
func (b *Booking) PricePerNight() Money      { return b.pricePerNight }
func (b *Booking) Total() Money              { return b.total }
func (b *Booking) Deposit() Money            { return b.deposit }
func (b *Booking) Status() Status            { return b.status }
func (b *Booking) PaymentSessionID() *string { return b.paymentSessionID }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time      { return b.updatedAt }

func (b *Booking) IsCanceled() bool { return b.status == StatusCanceled }
func (b *Booking) IsPaid() bool     { return b.status == StatusPaid }

// TransitionTo applies a status change after validating it against the state
// machine, so call sites cannot bypass the lifecycle rules.
func (b *Booking) TransitionTo(next Status) error {
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	return nil
}

func (b *Booking) Confirm() error  { return b.TransitionTo(StatusConfirmed) }
func (b *Booking) MarkPaid() error { return b.TransitionTo(StatusPaid) }
func (b *Booking) Cancel() error   { return b.TransitionTo(StatusCanceled) }

func (b *Booking) AttachPaymentSession(sessionID string) {
	b.paymentSessionID = &sessionID
}
