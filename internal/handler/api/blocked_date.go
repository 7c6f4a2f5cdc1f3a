package api

import (
	"context"
	"errors"
	"net/http"

	reqdto "stayflow/internal/handler/dto/request"
	"stayflow/internal/handler/middleware"
	"stayflow/internal/usecase/commands"
	"stayflow/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BlockedDateHandler struct {
	blockedDateCommands commands.BlockedDateCommands
}

func NewBlockedDateHandler(blockedDateCommands commands.BlockedDateCommands) *BlockedDateHandler {
	return &BlockedDateHandler{
		blockedDateCommands: blockedDateCommands,
	}
}

func (h *BlockedDateHandler) Block(c *gin.Context) {
	h.apply(c, h.blockedDateCommands.Block)
}

func (h *BlockedDateHandler) Unblock(c *gin.Context) {
	h.apply(c, h.blockedDateCommands.Unblock)
}

func (h *BlockedDateHandler) apply(
	c *gin.Context,
	op func(ctx context.Context, actor shared.Actor, apartmentID uuid.UUID, day string) error,
) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	apartmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid apartment ID format",
		})
		return
	}

	var req reqdto.BlockDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := op(c.Request.Context(), actor, apartmentID, req.Day); err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date, expected YYYY-MM-DD",
			})
		case errors.Is(err, commands.ErrApartmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Apartment not found",
			})
		case errors.Is(err, commands.ErrNotApartmentOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
