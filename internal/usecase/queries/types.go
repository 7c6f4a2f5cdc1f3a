package queries

import (
	"time"

	"stayflow/internal/domain/booking"

	"github.com/google/uuid"
)

// Read models (DTOs for the read side)

type BookingView struct {
	ID                 uuid.UUID  `json:"id"`
	CustomBookingID    string     `json:"custom_booking_id"`
	ApartmentID        uuid.UUID  `json:"apartment_id"`
	ApartmentName      string     `json:"apartment_name"`
	HostUserID         uuid.UUID  `json:"host_user_id"`
	GuestName          string     `json:"guest_name"`
	GuestEmail         string     `json:"guest_email"`
	GuestPhone         string     `json:"guest_phone"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            time.Time  `json:"end_date"`
	Nights             int        `json:"nights"`
	NumGuests          int        `json:"num_guests"`
	PricePerNightCents int64      `json:"price_per_night_cents"`
	TotalCents         int64      `json:"total_cents"`
	DepositCents       int64      `json:"deposit_cents"`
	Status             string     `json:"status"`
	PaymentSessionID   *string    `json:"payment_session_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// BookingLock is the minimal row a status-changing command loads under
// FOR UPDATE before authorizing and applying the transition.
type BookingLock struct {
	ID         uuid.UUID
	HostUserID uuid.UUID
	Status     booking.Status
}

type AvailabilityView struct {
	ApartmentID uuid.UUID `json:"apartment_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Nights      int       `json:"nights"`
	Available   bool      `json:"available"`
	Reason      string    `json:"reason,omitempty"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
