package service

import (
	"context"
	apperrors "reservo/pkg/errors"
	"time"
)

// overlaps reports whether two half-open intervals [s1, e1) and [s2, e2)
// intersect. Touching endpoints do not overlap: a booking ending at 10:00
// never conflicts with one starting at 10:00.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// hasConflict checks the requested interval against every active booking
// on the facility. Cancelled and completed bookings never block a slot.
// Must run inside the creation transaction so the check and the insert
// are atomic.
func (s *bookingService) hasConflict(ctx context.Context, facilityID string, start, end time.Time) (bool, error) {
	existing, err := s.repo.FindActiveOverlapping(ctx, facilityID, start, end, s.cfg.MaxOverlapScan)
	if err != nil {
		return false, apperrors.Internal("failed to check booking conflicts", err)
	}

	// The query already excludes non-overlapping documents; re-checking in
	// memory guards against clock precision loss in stored timestamps.
	for _, booking := range existing {
		if overlaps(booking.StartTime, booking.EndTime, start, end) {
			return true, nil
		}
	}

	return false, nil
}
