package validator

import (
	"fmt"
	apperrors "reservo/pkg/errors"
	"reservo/pkg/model"

	"github.com/go-playground/validator/v10"
)

type FacilityValidator interface {
	ValidateFacility(facility *model.Facility) error
	ValidateUpdate(update *model.FacilityUpdate) error
}

type facilityValidator struct {
	validate *validator.Validate
}

func NewFacilityValidator() FacilityValidator {
	return &facilityValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *facilityValidator) ValidateFacility(facility *model.Facility) error {
	if facility == nil {
		return apperrors.InvalidInput("facility cannot be nil")
	}

	if err := v.validate.Struct(facility); err != nil {
		return toValidationError(err)
	}

	return nil
}

func (v *facilityValidator) ValidateUpdate(update *model.FacilityUpdate) error {
	if update == nil {
		return apperrors.InvalidInput("facility update cannot be nil")
	}

	if err := v.validate.Struct(update); err != nil {
		return toValidationError(err)
	}

	return nil
}

func toValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Validation("invalid facility payload", nil)
	}

	details := make(map[string]any, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = fmt.Sprintf("failed %s validation", fieldErr.Tag())
	}

	return apperrors.Validation("facility payload failed validation", details)
}
