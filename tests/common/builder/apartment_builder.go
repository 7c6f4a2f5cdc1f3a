//go:build unit

package builder

import (
	"time"

	"stayflow/internal/domain/apartment"
	"stayflow/internal/domain/host"

	"github.com/google/uuid"
)

type ApartmentBuilder struct {
	ID                 uuid.UUID
	HostID             uuid.UUID
	HostUserID         uuid.UUID
	Name               string
	Slug               string
	PricePerNightCents int64
	ServiceFeeCents    int64
	Capacity           int
	MinStayNights      int
	MaxStayNights      int
	Currency           string
	Active             bool
}

func NewApartmentBuilder() *ApartmentBuilder {
	return &ApartmentBuilder{
		ID:                 uuid.New(),
		HostID:             uuid.New(),
		HostUserID:         uuid.New(),
		Name:               "Canal View Loft",
		Slug:               "canal-view-loft",
		PricePerNightCents: 10000,
		ServiceFeeCents:    2000,
		Capacity:           4,
		MinStayNights:      1,
		MaxStayNights:      30,
		Currency:           "eur",
		Active:             true,
	}
}

func (b *ApartmentBuilder) With(mutate func(*ApartmentBuilder)) *ApartmentBuilder {
	mutate(b)
	return b
}

func (b *ApartmentBuilder) BuildDomain() (*apartment.Apartment, error) {
	now := time.Now()
	return apartment.NewApartment(
		b.ID, b.HostID, b.HostUserID,
		b.Name, b.Slug,
		b.PricePerNightCents, b.ServiceFeeCents,
		b.Capacity, b.MinStayNights, b.MaxStayNights,
		b.Currency, b.Active,
		now, now,
	)
}

type HostBuilder struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	BusinessName    string
	Phone           string
	CommissionPct   float64
	PayoutAccountID *string
	Currency        string
}

func NewHostBuilder() *HostBuilder {
	return &HostBuilder{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		BusinessName:  "Stayflow Rentals BV",
		Phone:         "+31201234567",
		CommissionPct: 10,
		Currency:      "eur",
	}
}

func (b *HostBuilder) With(mutate func(*HostBuilder)) *HostBuilder {
	mutate(b)
	return b
}

// WithPayoutAccount makes the host collect online through hosted checkout.
func (b *HostBuilder) WithPayoutAccount(accountID string) *HostBuilder {
	b.PayoutAccountID = &accountID
	return b
}

func (b *HostBuilder) BuildDomain() *host.Host {
	now := time.Now()
	return host.ReconstructHost(
		b.ID, b.UserID,
		b.BusinessName, b.Phone,
		b.CommissionPct, b.PayoutAccountID,
		b.Currency,
		now, now,
	)
}
