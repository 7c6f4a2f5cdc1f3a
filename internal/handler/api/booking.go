package api

import (
	"errors"
	"net/http"

	reqdto "stayflow/internal/handler/dto/request"
	resdto "stayflow/internal/handler/dto/response"
	"stayflow/internal/handler/middleware"
	"stayflow/internal/usecase/commands"
	"stayflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// CreateBooking is the public guest checkout: no authentication, guest
// identity travels in the request body.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.bookingCommands.CreateBooking(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrApartmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Apartment not found",
			})
		case errors.Is(err, commands.ErrApartmentInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Apartment is not accepting bookings",
			})
		case errors.Is(err, commands.ErrInvalidDateRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date range",
			})
		case errors.Is(err, commands.ErrInvalidGuest):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid guest details",
			})
		case errors.Is(err, commands.ErrStayLengthInvalid):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Stay length outside the allowed bounds",
			})
		case errors.Is(err, commands.ErrCapacityExceeded):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Guest count exceeds apartment capacity",
			})
		case errors.Is(err, commands.ErrBookingConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Requested dates are no longer available",
			})
		case errors.Is(err, commands.ErrPaymentSessionFailed):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment provider unavailable, booking was not created",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	resp := resdto.CreateBookingResponse{CheckoutURL: result.CheckoutURL}
	if result.Booking != nil {
		resp.Booking = resdto.FromBookingView(result.Booking)
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, queries.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not allowed to view this booking",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.bookingQueries.List(c.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, queries.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	if err := h.bookingCommands.CancelBooking(c.Request.Context(), actor, id); err != nil {
		h.writeStatusChangeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// BulkUpdateStatus applies a set of status transitions atomically; one bad
// change rolls back all of them.
func (h *BookingHandler) BulkUpdateStatus(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.BulkStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	changes, err := req.ToChanges()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking status",
		})
		return
	}

	if err := h.bookingCommands.BulkUpdateStatus(c.Request.Context(), actor, changes); err != nil {
		h.writeStatusChangeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) writeStatusChangeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, commands.ErrNotBookingOwner), errors.Is(err, commands.ErrGuestsCannotCancel):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
	case errors.Is(err, commands.ErrIllegalTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Illegal booking status transition",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
