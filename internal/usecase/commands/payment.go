package commands

import (
	"context"
	"fmt"
	"log/slog"

	"stayflow/internal/domain/booking"
	"stayflow/internal/infra"
	"stayflow/internal/pkg/errs"
	"stayflow/internal/usecase/queries"
)

var (
	ErrWebhookSignature = errs.New("webhook signature verification failed")
	ErrWebhookPayload   = errs.New("webhook payload malformed")
)

// ConfirmOutcome tells the webhook handler what happened so it can always
// acknowledge the event; the payment processor retries anything but a 2xx.
type ConfirmOutcome int

const (
	// OutcomePaid means this delivery performed the transition to paid.
	OutcomePaid ConfirmOutcome = iota
	// OutcomeAlreadyPaid means a previous delivery already did; no-op.
	OutcomeAlreadyPaid
	// OutcomeUnmatched means no booking references the session. The payment
	// is money received with nothing to update, logged loudly for follow-up.
	OutcomeUnmatched
	// OutcomeCanceledBooking means the session matched a booking that was
	// canceled before the payment arrived. Money received but nothing to
	// transition, logged loudly for follow-up.
	OutcomeCanceledBooking
)

type PaymentCommands interface {
	ConfirmCheckout(ctx context.Context, sessionID string) (ConfirmOutcome, error)
}

type paymentCommandsImpl struct {
	bookings BookingRepository
	mailer   Mailer
}

func NewPaymentCommands(bookings BookingRepository, mailer Mailer) PaymentCommands {
	return &paymentCommandsImpl{
		bookings: bookings,
		mailer:   mailer,
	}
}

// ConfirmCheckout applies the checkout.session.completed transition. The
// conditional update in MarkPaidBySession makes redelivery idempotent: however
// many times the processor sends the event, exactly one delivery flips the
// status to paid.
func (p *paymentCommandsImpl) ConfirmCheckout(ctx context.Context, sessionID string) (ConfirmOutcome, error) {
	view, err := p.bookings.FindByPaymentSession(ctx, sessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("payment completed for unknown checkout session",
				"session_id", sessionID, "outcome", "unmatched_payment")
			return OutcomeUnmatched, nil
		}
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	transitioned, err := p.bookings.MarkPaidBySession(ctx, sessionID)
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !transitioned {
		if view.Status == string(booking.StatusCanceled) {
			slog.Warn("payment received for canceled booking",
				"booking_id", view.ID, "session_id", sessionID,
				"outcome", "canceled_booking")
			return OutcomeCanceledBooking, nil
		}
		slog.Info("checkout completion redelivered, booking already paid",
			"booking_id", view.ID, "session_id", sessionID)
		return OutcomeAlreadyPaid, nil
	}

	p.sendConfirmation(view)
	return OutcomePaid, nil
}

func (p *paymentCommandsImpl) sendConfirmation(view *queries.BookingView) {
	err := p.mailer.Send(view.GuestEmail, "Your booking is confirmed", "booking_confirmed", map[string]any{
		"GuestName":     view.GuestName,
		"BookingID":     view.CustomBookingID,
		"ApartmentName": view.ApartmentName,
		"StartDate":     view.StartDate.Format("2006-01-02"),
		"EndDate":       view.EndDate.Format("2006-01-02"),
		"Total":         fmt.Sprintf("%.2f", float64(view.TotalCents)/100),
	})
	if err != nil {
		slog.Warn("failed to send payment confirmation email",
			"booking_id", view.ID, "error", err)
	}
}
