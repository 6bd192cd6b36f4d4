package validator

import (
	"fmt"
	apperrors "reservo/pkg/errors"
	"reservo/pkg/model"

	"github.com/go-playground/validator/v10"
)

// BookingValidator validates booking payloads before they reach the
// service layer. Temporal rules that depend on the clock (future start)
// live in the service, which owns the clock.
type BookingValidator interface {
	ValidateRequest(req *model.BookingRequest) error
	ValidateBooking(booking *model.Booking) error
}

type bookingValidator struct {
	validate *validator.Validate
}

func NewBookingValidator() BookingValidator {
	return &bookingValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *bookingValidator) ValidateRequest(req *model.BookingRequest) error {
	if req == nil {
		return apperrors.InvalidInput("booking request cannot be nil")
	}

	if err := v.validate.Struct(req); err != nil {
		return toValidationError(err)
	}

	if !req.EndTime.After(req.StartTime) {
		return apperrors.Validation("end_time must be after start_time", map[string]any{
			"start_time": req.StartTime,
			"end_time":   req.EndTime,
		})
	}

	return nil
}

func (v *bookingValidator) ValidateBooking(booking *model.Booking) error {
	if booking == nil {
		return apperrors.InvalidInput("booking cannot be nil")
	}

	if err := v.validate.Struct(booking); err != nil {
		return toValidationError(err)
	}

	return nil
}

func toValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Validation("invalid booking payload", nil)
	}

	details := make(map[string]any, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = fmt.Sprintf("failed %s validation", fieldErr.Tag())
	}

	return apperrors.Validation("booking payload failed validation", details)
}
