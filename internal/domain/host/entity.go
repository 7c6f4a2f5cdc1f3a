package host

import (
	"time"

	"github.com/google/uuid"
)

// Host is the business profile behind one or more apartments. PayoutAccountID
// is the payment processor's connected account; hosts without one fall back to
// the pay-on-arrival flow.
type Host struct {
	id              uuid.UUID
	userID          uuid.UUID
	businessName    string
	phone           string
	commissionPct   float64
	payoutAccountID *string
	currency        string
	createdAt       time.Time
	updatedAt       time.Time
}

func ReconstructHost(
	id, userID uuid.UUID,
	businessName, phone string,
	commissionPct float64,
	payoutAccountID *string,
	currency string,
	createdAt, updatedAt time.Time,
) *Host {
	return &Host{
		id:              id,
		userID:          userID,
		businessName:    businessName,
		phone:           phone,
		commissionPct:   commissionPct,
		payoutAccountID: payoutAccountID,
		currency:        currency,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (h *Host) ID() uuid.UUID            { return h.id }
func (h *Host) UserID() uuid.UUID        { return h.userID }
func (h *Host) BusinessName() string     { return h.businessName }
func (h *Host) Phone() string            { return h.phone }
func (h *Host) CommissionPct() float64   { return h.commissionPct }
func (h *Host) PayoutAccountID() *string { return h.payoutAccountID }
func (h *Host) Currency() string         { return h.currency }
func (h *Host) CreatedAt() time.Time     { return h.createdAt }
func (h *Host) UpdatedAt() time.Time     { return h.updatedAt }

// CanCollectOnline reports whether bookings for this host go through hosted
// checkout instead of pay-on-arrival.
func (h *Host) CanCollectOnline() bool {
	return h.payoutAccountID != nil && *h.payoutAccountID != ""
}

// CommissionCents computes the platform fee for a booking total, rounded down.
func (h *Host) CommissionCents(totalCents int64) int64 {
	return int64(float64(totalCents) * h.commissionPct / 100.0)
}
