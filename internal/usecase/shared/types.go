package shared

import (
	"stayflow/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated principal a command or query runs as.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsAdmin() bool { return a.Role == user.RoleAdmin }
func (a Actor) IsHost() bool  { return a.Role == user.RoleHost }

// CanManageBooking implements the ownership rule: admins manage any booking,
// hosts only bookings on their own apartments.
func (a Actor) CanManageBooking(hostUserID uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	return a.IsHost() && a.ID == hostUserID
}
