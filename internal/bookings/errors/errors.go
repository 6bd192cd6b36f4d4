package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrSlotTaken = errors.New("requested time slot overlaps an active booking")

	ErrInvalidTimeRange = errors.New("end time must be after start time")
)
