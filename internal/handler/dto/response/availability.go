package response

import (
	"stayflow/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilityResponse struct {
	ApartmentID uuid.UUID `json:"apartmentId"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Nights      int       `json:"nights"`
	Available   bool      `json:"available"`
	Reason      string    `json:"reason,omitempty"`
}

func FromAvailabilityView(view *queries.AvailabilityView) *AvailabilityResponse {
	return &AvailabilityResponse{
		ApartmentID: view.ApartmentID,
		StartDate:   view.StartDate,
		EndDate:     view.EndDate,
		Nights:      view.Nights,
		Available:   view.Available,
		Reason:      view.Reason,
	}
}
