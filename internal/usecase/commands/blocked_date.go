package commands

import (
	"context"
	"time"

	"stayflow/internal/infra"
	"stayflow/internal/pkg/errs"
	"stayflow/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrNotApartmentOwner = errs.New("apartment belongs to another host")
	ErrInvalidDate       = errs.New("invalid date")
)

type BlockedDateCommands interface {
	Block(ctx context.Context, actor shared.Actor, apartmentID uuid.UUID, day string) error
	Unblock(ctx context.Context, actor shared.Actor, apartmentID uuid.UUID, day string) error
}

type blockedDateCommandsImpl struct {
	apartments ApartmentRepository
	blocked    BlockedDateRepository
}

func NewBlockedDateCommands(apartments ApartmentRepository, blocked BlockedDateRepository) BlockedDateCommands {
	return &blockedDateCommandsImpl{
		apartments: apartments,
		blocked:    blocked,
	}
}

func (c *blockedDateCommandsImpl) Block(ctx context.Context, actor shared.Actor, apartmentID uuid.UUID, day string) error {
	parsed, err := c.authorize(ctx, actor, apartmentID, day)
	if err != nil {
		return err
	}
	return c.blocked.Add(ctx, &apartmentID, parsed)
}

func (c *blockedDateCommandsImpl) Unblock(ctx context.Context, actor shared.Actor, apartmentID uuid.UUID, day string) error {
	parsed, err := c.authorize(ctx, actor, apartmentID, day)
	if err != nil {
		return err
	}
	return c.blocked.Remove(ctx, &apartmentID, parsed)
}

func (c *blockedDateCommandsImpl) authorize(ctx context.Context, actor shared.Actor, apartmentID uuid.UUID, day string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", day)
	if err != nil {
		return time.Time{}, errs.Mark(err, ErrInvalidDate)
	}

	apt, err := c.apartments.FindByID(ctx, apartmentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return time.Time{}, ErrApartmentNotFound
		}
		return time.Time{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !actor.CanManageBooking(apt.HostUserID()) {
		return time.Time{}, ErrNotApartmentOwner
	}
	return parsed, nil
}
