package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"stayflow/internal/infra/payment"
	"stayflow/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	gateway         commands.CheckoutGateway
	paymentCommands commands.PaymentCommands
}

func NewWebhookHandler(gateway commands.CheckoutGateway, paymentCommands commands.PaymentCommands) *WebhookHandler {
	return &WebhookHandler{
		gateway:         gateway,
		paymentCommands: paymentCommands,
	}
}

// HandleStripeEvent verifies the signature over the raw body and applies the
// checkout completion. The processor retries on any non-2xx, so every outcome
// except a transient database failure is acknowledged.
func (h *WebhookHandler) HandleStripeEvent(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, 1<<16))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unable to read request body",
		})
		return
	}

	event, err := h.gateway.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrWebhookSignature):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid signature",
			})
		case errors.Is(err, commands.ErrWebhookPayload):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Malformed event payload",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	if event.Type != payment.EventCheckoutCompleted {
		// Not subscribed to anything else; ack so the processor stops retrying.
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	outcome, err := h.paymentCommands.ConfirmCheckout(c.Request.Context(), event.SessionID)
	if err != nil {
		slog.Error("checkout confirmation failed", "session_id", event.SessionID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"received": true,
		"outcome":  outcomeLabel(outcome),
	})
}

func outcomeLabel(o commands.ConfirmOutcome) string {
	switch o {
	case commands.OutcomePaid:
		return "paid"
	case commands.OutcomeAlreadyPaid:
		return "already_paid"
	case commands.OutcomeCanceledBooking:
		return "canceled_booking"
	default:
		return "unmatched"
	}
}
