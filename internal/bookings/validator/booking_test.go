package validator

import (
	apperrors "reservo/pkg/errors"
	"reservo/pkg/model"
	"strings"
	"testing"
	"time"
)

const validFacilityID = "64f1b2c3d4e5f6a7b8c9d0e1"

func validRequest() *model.BookingRequest {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	return &model.BookingRequest{
		FacilityID: validFacilityID,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
	}
}

func TestValidateRequest(t *testing.T) {
	v := NewBookingValidator()

	t.Run("valid request", func(t *testing.T) {
		if err := v.ValidateRequest(validRequest()); err != nil {
			t.Errorf("ValidateRequest() error = %v", err)
		}
	})

	t.Run("nil request", func(t *testing.T) {
		err := v.ValidateRequest(nil)
		if err == nil {
			t.Fatal("expected error for nil request")
		}
	})

	t.Run("missing facility", func(t *testing.T) {
		req := validRequest()
		req.FacilityID = ""
		assertValidationError(t, v.ValidateRequest(req))
	})

	t.Run("malformed facility id", func(t *testing.T) {
		req := validRequest()
		req.FacilityID = "not-an-object-id"
		assertValidationError(t, v.ValidateRequest(req))
	})

	t.Run("end before start", func(t *testing.T) {
		req := validRequest()
		req.EndTime = req.StartTime.Add(-time.Hour)
		assertValidationError(t, v.ValidateRequest(req))
	})

	t.Run("end equals start", func(t *testing.T) {
		req := validRequest()
		req.EndTime = req.StartTime
		assertValidationError(t, v.ValidateRequest(req))
	})

	t.Run("note too long", func(t *testing.T) {
		req := validRequest()
		req.Note = strings.Repeat("x", 1001)
		assertValidationError(t, v.ValidateRequest(req))
	})
}

func TestValidateBooking(t *testing.T) {
	v := NewBookingValidator()

	booking := &model.Booking{
		UserID:     "user-1",
		FacilityID: validFacilityID,
		StartTime:  time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
		Status:     model.StatusPending,
		TotalPrice: 45,
	}

	if err := v.ValidateBooking(booking); err != nil {
		t.Errorf("ValidateBooking() error = %v", err)
	}

	t.Run("negative price", func(t *testing.T) {
		bad := *booking
		bad.TotalPrice = -1
		assertValidationError(t, v.ValidateBooking(&bad))
	})

	t.Run("unknown status", func(t *testing.T) {
		bad := *booking
		bad.Status = "ARCHIVED"
		assertValidationError(t, v.ValidateBooking(&bad))
	})
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected *AppError, got %T", err)
	}
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeValidation)
	}
}
