package commands

import (
	"context"
	"time"

	"stayflow/internal/domain/apartment"
	"stayflow/internal/domain/booking"
	"stayflow/internal/domain/host"
	"stayflow/internal/infra/db"
	"stayflow/internal/usecase/queries"

	"github.com/google/uuid"
)

// Write-side ports. Implementations live in internal/infra.

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	ActiveRanges(ctx context.Context, tx db.DBTX, apartmentID uuid.UUID) ([]booking.DateRange, error)
	LockForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*queries.BookingLock, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error
	AttachPaymentSession(ctx context.Context, id uuid.UUID, sessionID string) error
	MarkPaidBySession(ctx context.Context, sessionID string) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
	FindByPaymentSession(ctx context.Context, sessionID string) (*queries.BookingView, error)
}

type ApartmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*apartment.Apartment, error)
}

type HostRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*host.Host, error)
}

type BlockedDateRepository interface {
	DaysInRange(ctx context.Context, tx db.DBTX, apartmentID uuid.UUID, rng booking.DateRange) ([]time.Time, error)
	Add(ctx context.Context, apartmentID *uuid.UUID, day time.Time) error
	Remove(ctx context.Context, apartmentID *uuid.UUID, day time.Time) error
}

// CheckoutGateway is the hosted payment processor boundary.

type CheckoutRequest struct {
	BookingID           uuid.UUID
	BookingReference    string
	Description         string
	AmountCents         int64
	Currency            string
	GuestEmail          string
	ConnectedAccountID  string
	ApplicationFeeCents int64
}

type CheckoutSession struct {
	ID  string
	URL string
}

type PaymentEvent struct {
	Type      string
	SessionID string
	BookingID string
}

type CheckoutGateway interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	VerifyWebhook(payload []byte, signatureHeader string) (*PaymentEvent, error)
}

// Mailer delivers guest notifications. Fire-and-forget: callers log failures
// and move on.
type Mailer interface {
	Send(recipient, subject, templateName string, data map[string]any) error
}
