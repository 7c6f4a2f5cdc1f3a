package booking

import "time"

// CheckAvailability answers whether candidate can be booked given the
// apartment's existing non-canceled booking ranges and its blocked days
// (including globally blocked days). Canceled bookings must be filtered out by
// the caller; they never block availability.
//
// This is the application-level check. The storage layer enforces the same
// invariant with an exclusion constraint, which is what actually closes the
// check-then-insert race between concurrent requests.
func CheckAvailability(candidate DateRange, existing []DateRange, blocked []time.Time) error {
	for _, rng := range existing {
		if candidate.Overlaps(rng) {
			return ErrRangeUnavailable
		}
	}
	for _, day := range blocked {
		if candidate.Contains(day) {
			return ErrDateBlocked
		}
	}
	return nil
}
