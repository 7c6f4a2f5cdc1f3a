//go:build unit

package builder

import (
	"time"

	"stayflow/internal/usecase/commands"
	"stayflow/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingViewBuilder struct {
	ID               uuid.UUID
	ApartmentID      uuid.UUID
	HostUserID       uuid.UUID
	Status           string
	StartDate        time.Time
	EndDate          time.Time
	PaymentSessionID *string
}

func NewBookingViewBuilder() *BookingViewBuilder {
	return &BookingViewBuilder{
		ID:          uuid.New(),
		ApartmentID: uuid.New(),
		HostUserID:  uuid.New(),
		Status:      "pending",
		StartDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
	}
}

func (b *BookingViewBuilder) With(mutate func(*BookingViewBuilder)) *BookingViewBuilder {
	mutate(b)
	return b
}

func (b *BookingViewBuilder) BuildView() *queries.BookingView {
	now := time.Now()
	return &queries.BookingView{
		ID:                 b.ID,
		CustomBookingID:    "BK-20260301-AB12CD",
		ApartmentID:        b.ApartmentID,
		ApartmentName:      "Canal View Loft",
		HostUserID:         b.HostUserID,
		GuestName:          "Ada Lovelace",
		GuestEmail:         "ada@example.com",
		GuestPhone:         "+31201234567",
		StartDate:          b.StartDate,
		EndDate:            b.EndDate,
		Nights:             int(b.EndDate.Sub(b.StartDate).Hours() / 24),
		NumGuests:          2,
		PricePerNightCents: 10000,
		TotalCents:         32000,
		DepositCents:       0,
		Status:             b.Status,
		PaymentSessionID:   b.PaymentSessionID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// BuildCreateParams returns request parameters matching the view defaults.
func (b *BookingViewBuilder) BuildCreateParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		ApartmentID: b.ApartmentID,
		GuestName:   "Ada Lovelace",
		GuestEmail:  "ada@example.com",
		GuestPhone:  "+31201234567",
		StartDate:   b.StartDate.Format("2006-01-02"),
		EndDate:     b.EndDate.Format("2006-01-02"),
		NumGuests:   2,
	}
}
