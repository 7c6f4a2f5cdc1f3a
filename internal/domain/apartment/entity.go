package apartment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidName     = errors.New("apartment name is required")
	ErrInvalidPrice    = errors.New("nightly price must be positive")
	ErrInvalidStaySpan = errors.New("min stay nights cannot exceed max stay nights")
	ErrInactive        = errors.New("apartment is not active")
)

// Apartment carries the listing attributes the booking engine needs. The host
// user id is denormalized from the owning host so authorization checks do not
// require an extra lookup.
type Apartment struct {
	id                 uuid.UUID
	hostID             uuid.UUID
	hostUserID         uuid.UUID
	name               string
	slug               string
	pricePerNightCents int64
	serviceFeeCents    int64
	capacity           int
	minStayNights      int
	maxStayNights      int
	currency           string
	active             bool
	createdAt          time.Time
	updatedAt          time.Time
}

func NewApartment(
	id, hostID, hostUserID uuid.UUID,
	name, slug string,
	pricePerNightCents, serviceFeeCents int64,
	capacity, minStayNights, maxStayNights int,
	currency string,
	active bool,
	createdAt, updatedAt time.Time,
) (*Apartment, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if pricePerNightCents <= 0 {
		return nil, ErrInvalidPrice
	}
	if minStayNights > 0 && maxStayNights > 0 && minStayNights > maxStayNights {
		return nil, ErrInvalidStaySpan
	}
	return &Apartment{
		id:                 id,
		hostID:             hostID,
		hostUserID:         hostUserID,
		name:               name,
		slug:               slug,
		pricePerNightCents: pricePerNightCents,
		serviceFeeCents:    serviceFeeCents,
		capacity:           capacity,
		minStayNights:      minStayNights,
		maxStayNights:      maxStayNights,
		currency:           currency,
		active:             active,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (a *Apartment) ID() uuid.UUID              { return a.id }
func (a *Apartment) HostID() uuid.UUID          { return a.hostID }
func (a *Apartment) HostUserID() uuid.UUID      { return a.hostUserID }
func (a *Apartment) Name() string               { return a.name }
func (a *Apartment) Slug() string               { return a.slug }
func (a *Apartment) PricePerNightCents() int64  { return a.pricePerNightCents }
func (a *Apartment) ServiceFeeCents() int64     { return a.serviceFeeCents }
func (a *Apartment) Capacity() int              { return a.capacity }
func (a *Apartment) MinStayNights() int         { return a.minStayNights }
func (a *Apartment) MaxStayNights() int         { return a.maxStayNights }
func (a *Apartment) Currency() string           { return a.currency }
func (a *Apartment) IsActive() bool             { return a.active }
func (a *Apartment) CreatedAt() time.Time       { return a.createdAt }
func (a *Apartment) UpdatedAt() time.Time       { return a.updatedAt }
