package model

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus is the closed set of lifecycle states a booking can be in.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

// ParseBookingStatus rejects anything outside the four known states so that
// unrecognized values never reach the service layer.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown booking status: %q", s)
	}
	return status, nil
}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Active reports whether the booking counts toward overlap conflicts.
func (s BookingStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Terminal reports whether no further transitions are permitted.
func (s BookingStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransitionTo enforces the forward-only state machine:
// PENDING -> CONFIRMED -> COMPLETED, with a cancellation side exit from
// any non-terminal state.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s.Terminal() {
		return false
	}
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

// ActiveStatuses is the overlap set used by conflict queries.
func ActiveStatuses() []BookingStatus {
	return []BookingStatus{StatusPending, StatusConfirmed}
}

type Booking struct {
	ID         string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID     string        `json:"user_id" bson:"user_id" validate:"required,min=1,max=64"`
	FacilityID string        `json:"facility_id" bson:"facility_id" validate:"required,mongodb"`
	StartTime  time.Time     `json:"start_time" bson:"start_time" validate:"required"`
	EndTime    time.Time     `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	Status     BookingStatus `json:"status" bson:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	TotalPrice float64       `json:"total_price" bson:"total_price" validate:"gte=0"`
	Note       string        `json:"note,omitempty" bson:"note,omitempty" validate:"omitempty,max=1000"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingRequest is the creation payload accepted at the boundary. The
// owning user is passed separately by the caller, never taken from the body.
type BookingRequest struct {
	FacilityID string    `json:"facility_id" validate:"required,mongodb"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	EndTime    time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Note       string    `json:"note,omitempty" validate:"omitempty,max=1000"`
}
