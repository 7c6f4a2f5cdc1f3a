package booking

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"stayflow/internal/domain/apartment"
	"stayflow/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clock clock.Clock) *Factory {
	return &Factory{Clock: clock}
}

// CreateBooking builds a new pending booking for an apartment, enforcing
// capacity and stay-length rules and snapshotting the pricing at request time.
// Availability is checked separately against current storage state.
func (f *Factory) CreateBooking(
	apt *apartment.Apartment,
	guest Guest,
	dates DateRange,
	numGuests int,
) (*Booking, Quote, error) {
	if numGuests < 1 || (apt.Capacity() > 0 && numGuests > apt.Capacity()) {
		return nil, Quote{}, ErrTooManyGuests
	}

	cfg := PricingConfig{
		PricePerNight: NewMoney(apt.PricePerNightCents()),
		ServiceFee:    NewMoney(apt.ServiceFeeCents()),
		Deposit:       NewMoney(0),
		MinStayNights: apt.MinStayNights(),
		MaxStayNights: apt.MaxStayNights(),
	}
	quote, err := CalculateQuote(cfg, dates)
	if err != nil {
		return nil, Quote{}, err
	}

	now := f.Clock.Now()
	b := &Booking{
		id:            uuid.New(),
		customID:      f.newCustomID(),
		apartmentID:   apt.ID(),
		hostUserID:    apt.HostUserID(),
		guest:         guest,
		dates:         dates,
		numGuests:     numGuests,
		pricePerNight: quote.PricePerNight,
		total:         quote.Total,
		deposit:       quote.Deposit,
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
	}
	return b, quote, nil
}

// newCustomID returns a human-readable booking reference, e.g. BK-20260301-4F7A2C.
func (f *Factory) newCustomID() string {
	var suffix [3]byte
	_, _ = rand.Read(suffix[:])
	return "BK-" + f.Clock.Now().UTC().Format("20060102") + "-" + strings.ToUpper(hex.EncodeToString(suffix[:]))
}
