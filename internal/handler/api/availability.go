package api

import (
	"errors"
	"net/http"

	"stayflow/internal/domain/booking"
	reqdto "stayflow/internal/handler/dto/request"
	resdto "stayflow/internal/handler/dto/response"
	"stayflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
	}
}

func (h *AvailabilityHandler) Check(c *gin.Context) {
	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "apartment_id, start_date and end_date are required",
		})
		return
	}

	apartmentID, err := uuid.Parse(q.ApartmentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid apartment ID format",
		})
		return
	}

	rng, err := booking.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date range",
		})
		return
	}

	view, err := h.availabilityQueries.Check(c.Request.Context(), apartmentID, rng)
	if err != nil {
		if errors.Is(err, queries.ErrApartmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Apartment not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
