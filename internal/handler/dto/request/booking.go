package request

import (
	"strings"

	"stayflow/internal/domain/booking"
	"stayflow/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ApartmentID uuid.UUID `json:"apartment_id" binding:"required"`
	GuestName   string    `json:"guest_name" binding:"required"`
	GuestEmail  string    `json:"guest_email" binding:"required,email"`
	GuestPhone  string    `json:"guest_phone" binding:"required"`
	StartDate   string    `json:"start_date" binding:"required"`
	EndDate     string    `json:"end_date" binding:"required"`
	NumGuests   int       `json:"num_guests" binding:"required,min=1"`
}

func (r CreateBookingRequest) ToParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		ApartmentID: r.ApartmentID,
		GuestName:   strings.TrimSpace(r.GuestName),
		GuestEmail:  strings.TrimSpace(r.GuestEmail),
		GuestPhone:  strings.TrimSpace(r.GuestPhone),
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		NumGuests:   r.NumGuests,
	}
}

type StatusUpdateItem struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Status    string    `json:"status" binding:"required"`
}

// BulkStatusUpdateRequest applies every change or none of them.
type BulkStatusUpdateRequest struct {
	Updates []StatusUpdateItem `json:"updates" binding:"required,min=1,dive"`
}

func (r BulkStatusUpdateRequest) ToChanges() ([]commands.StatusChange, error) {
	changes := make([]commands.StatusChange, 0, len(r.Updates))
	for _, item := range r.Updates {
		status, err := booking.NewStatus(item.Status)
		if err != nil {
			return nil, err
		}
		changes = append(changes, commands.StatusChange{
			BookingID: item.BookingID,
			Status:    status,
		})
	}
	return changes, nil
}
