package service

import (
	"context"
	"errors"
	facilitieserrors "reservo/internal/facilities/errors"
	"reservo/internal/facilities/repository"
	facilityvalidator "reservo/internal/facilities/validator"
	"reservo/pkg/config"
	apperrors "reservo/pkg/errors"
	"reservo/pkg/model"
	"reservo/pkg/sanitizer"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

type FacilityService interface {
	Create(ctx context.Context, facility *model.Facility) (*model.Facility, error)
	GetByID(ctx context.Context, id string) (*model.Facility, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Facility, int64, error)
	GetAvailable(ctx context.Context, limit int, offset int64) ([]*model.Facility, int64, error)
	GetByType(ctx context.Context, facilityType string, limit int, offset int64) ([]*model.Facility, int64, error)
	Update(ctx context.Context, id string, update *model.FacilityUpdate) (*model.Facility, error)
	Delete(ctx context.Context, id string) error
}

type facilityService struct {
	cfg       *config.Config
	repo      repository.FacilityRepository
	validator facilityvalidator.FacilityValidator
}

func NewFacilityService(cfg *config.Config, repo repository.FacilityRepository, validator facilityvalidator.FacilityValidator) FacilityService {
	return &facilityService{
		cfg:       cfg,
		repo:      repo,
		validator: validator,
	}
}

// Create registers a new facility in the catalog. New facilities are
// bookable unless the payload says otherwise.
func (s *facilityService) Create(ctx context.Context, facility *model.Facility) (*model.Facility, error) {
	if facility == nil {
		return nil, apperrors.InvalidInput("facility cannot be nil")
	}

	s.sanitize(facility)

	if err := s.validator.ValidateFacility(facility); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, facility); err != nil {
		return nil, apperrors.Internal("failed to create facility", err)
	}

	s.cfg.Log.Info("Facility created",
		"facility_id", facility.ID,
		"name", facility.Name,
		"type", facility.Type,
		"hourly_rate", facility.HourlyRate,
	)

	return facility, nil
}

func (s *facilityService) GetByID(ctx context.Context, id string) (*model.Facility, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("facility ID is required")
	}

	facility, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id)
	}

	return facility, nil
}

func (s *facilityService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Facility, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	facilities, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list facilities", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to count facilities", err)
	}

	if facilities == nil {
		facilities = []*model.Facility{}
	}
	return facilities, total, nil
}

func (s *facilityService) GetAvailable(ctx context.Context, limit int, offset int64) ([]*model.Facility, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	facilities, err := s.repo.FindAvailable(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list available facilities", err)
	}

	total, err := s.repo.CountAvailable(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to count available facilities", err)
	}

	if facilities == nil {
		facilities = []*model.Facility{}
	}
	return facilities, total, nil
}

func (s *facilityService) GetByType(ctx context.Context, facilityType string, limit int, offset int64) ([]*model.Facility, int64, error) {
	facilityType = sanitizer.NormalizeFacilityType(facilityType)
	if facilityType == "" {
		return nil, 0, apperrors.InvalidInput("facility type is required")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	facilities, err := s.repo.FindByType(ctx, facilityType, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list facilities by type", err)
	}

	total, err := s.repo.CountByType(ctx, facilityType)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to count facilities by type", err)
	}

	if facilities == nil {
		facilities = []*model.Facility{}
	}
	return facilities, total, nil
}

// Update applies a partial update. Only fields present in the payload are
// touched; flipping is_available to false stops new bookings without
// affecting existing ones.
func (s *facilityService) Update(ctx context.Context, id string, update *model.FacilityUpdate) (*model.Facility, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("facility ID is required")
	}
	if update == nil {
		return nil, apperrors.InvalidInput("facility update cannot be nil")
	}

	s.sanitizeUpdate(update)

	if err := s.validator.ValidateUpdate(update); err != nil {
		return nil, err
	}

	fields := updateFields(update)
	if len(fields) == 0 {
		return nil, apperrors.InvalidInput("facility update contains no fields")
	}

	facility, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, mapRepoError(err, id)
	}

	s.cfg.Log.Info("Facility updated", "facility_id", id, "fields", len(fields))

	return facility, nil
}

func (s *facilityService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("facility ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, id)
	}

	s.cfg.Log.Info("Facility deleted", "facility_id", id)

	return nil
}

func (s *facilityService) sanitize(facility *model.Facility) {
	facility.Name = sanitizer.NormalizeName(facility.Name)
	facility.Description = sanitizer.NormalizeFreeText(facility.Description)
	facility.Type = sanitizer.NormalizeFacilityType(facility.Type)
	facility.ImageURL = sanitizer.NormalizeURL(facility.ImageURL)
	facility.Address = sanitizer.NormalizeName(facility.Address)
}

func (s *facilityService) sanitizeUpdate(update *model.FacilityUpdate) {
	update.Name = sanitizer.NormalizeName(update.Name)
	update.Type = sanitizer.NormalizeFacilityType(update.Type)
	if update.Description != nil {
		*update.Description = sanitizer.NormalizeFreeText(*update.Description)
	}
	if update.ImageURL != nil {
		*update.ImageURL = sanitizer.NormalizeURL(*update.ImageURL)
	}
	if update.Address != nil {
		*update.Address = sanitizer.NormalizeName(*update.Address)
	}
}

func updateFields(update *model.FacilityUpdate) bson.M {
	fields := bson.M{}

	if update.Name != "" {
		fields["name"] = update.Name
	}
	if update.Type != "" {
		fields["type"] = update.Type
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Capacity != nil {
		fields["capacity"] = *update.Capacity
	}
	if update.HourlyRate != nil {
		fields["hourly_rate"] = *update.HourlyRate
	}
	if update.IsAvailable != nil {
		fields["is_available"] = *update.IsAvailable
	}
	if update.ImageURL != nil {
		fields["image_url"] = *update.ImageURL
	}
	if update.Address != nil {
		fields["address"] = *update.Address
	}

	return fields
}

func mapRepoError(err error, id string) error {
	switch {
	case errors.Is(err, facilitieserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Facility", id)
	case errors.Is(err, facilitieserrors.ErrInvalidID):
		return apperrors.InvalidInput("invalid facility ID: " + strings.TrimSpace(id))
	default:
		return apperrors.Internal("facility lookup failed", err)
	}
}
