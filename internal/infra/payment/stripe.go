package payment

import (
	"context"
	"encoding/json"

	"stayflow/internal/pkg/config"
	"stayflow/internal/pkg/errs"
	"stayflow/internal/usecase/commands"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

// EventCheckoutCompleted is the only event type the booking engine consumes.
const EventCheckoutCompleted = "checkout.session.completed"

type StripeGateway struct {
	cfg config.StripeConfig
}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	stripe.Key = cfg.SecretKey
	return &StripeGateway{cfg: cfg}
}

// CreateSession opens a hosted checkout for the booking total. The booking id
// travels in the session metadata and the platform commission is collected as
// an application fee on the host's connected account.
func (g *StripeGateway) CreateSession(ctx context.Context, req commands.CheckoutRequest) (*commands.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.Description),
						Description: stripe.String(req.BookingReference),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:    stripe.String(g.cfg.SuccessURL),
		CancelURL:     stripe.String(g.cfg.CancelURL),
		CustomerEmail: stripe.String(req.GuestEmail),
		Metadata: map[string]string{
			"booking_id": req.BookingID.String(),
		},
	}
	if req.ApplicationFeeCents > 0 {
		params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
			ApplicationFeeAmount: stripe.Int64(req.ApplicationFeeCents),
		}
	}
	if req.ConnectedAccountID != "" {
		params.SetStripeAccount(req.ConnectedAccountID)
	}
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return nil, errs.Wrap(err, "stripe checkout session creation failed")
	}

	return &commands.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// VerifyWebhook checks the event signature against the shared endpoint secret
// and extracts the checkout session id. Events that fail verification are
// rejected before any processing.
func (g *StripeGateway) VerifyWebhook(payload []byte, signatureHeader string) (*commands.PaymentEvent, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, g.cfg.WebhookSecret)
	if err != nil {
		return nil, commands.ErrWebhookSignature
	}

	pe := &commands.PaymentEvent{Type: string(event.Type)}
	if pe.Type == EventCheckoutCompleted {
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, commands.ErrWebhookPayload
		}
		pe.SessionID = sess.ID
		pe.BookingID = sess.Metadata["booking_id"]
	}
	return pe, nil
}
