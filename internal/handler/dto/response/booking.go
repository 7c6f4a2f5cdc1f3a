package response

import (
	"time"

	"stayflow/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                 uuid.UUID `json:"id"`
	CustomBookingID    string    `json:"customBookingId"`
	ApartmentID        uuid.UUID `json:"apartmentId"`
	ApartmentName      string    `json:"apartmentName"`
	GuestName          string    `json:"guestName"`
	GuestEmail         string    `json:"guestEmail"`
	GuestPhone         string    `json:"guestPhone"`
	StartDate          string    `json:"startDate"`
	EndDate            string    `json:"endDate"`
	Nights             int       `json:"nights"`
	NumGuests          int       `json:"numGuests"`
	PricePerNightCents int64     `json:"pricePerNightCents"`
	TotalCents         int64     `json:"totalCents"`
	DepositCents       int64     `json:"depositCents"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// CreateBookingResponse carries a checkout URL instead of a status when the
// host collects payment online; the client redirects the guest there.
type CreateBookingResponse struct {
	Booking     *BookingResponse `json:"booking,omitempty"`
	CheckoutURL string           `json:"checkoutUrl,omitempty"`
}

const dateLayout = "2006-01-02"

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:                 view.ID,
		CustomBookingID:    view.CustomBookingID,
		ApartmentID:        view.ApartmentID,
		ApartmentName:      view.ApartmentName,
		GuestName:          view.GuestName,
		GuestEmail:         view.GuestEmail,
		GuestPhone:         view.GuestPhone,
		StartDate:          view.StartDate.Format(dateLayout),
		EndDate:            view.EndDate.Format(dateLayout),
		Nights:             view.Nights,
		NumGuests:          view.NumGuests,
		PricePerNightCents: view.PricePerNightCents,
		TotalCents:         view.TotalCents,
		DepositCents:       view.DepositCents,
		Status:             view.Status,
		CreatedAt:          view.CreatedAt,
		UpdatedAt:          view.UpdatedAt,
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(views))
	for i, v := range views {
		out[i] = FromBookingView(v)
	}
	return out
}
