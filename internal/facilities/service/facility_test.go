package service

import (
	"context"
	"io"
	facilitieserrors "reservo/internal/facilities/errors"
	facilityvalidator "reservo/internal/facilities/validator"
	"reservo/pkg/config"
	apperrors "reservo/pkg/errors"
	"reservo/pkg/logger"
	"reservo/pkg/model"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

const testFacilityID = "64f1b2c3d4e5f6a7b8c9d0e1"

type mockFacilityRepo struct {
	createFn         func(ctx context.Context, facility *model.Facility) error
	findByIDFn       func(ctx context.Context, id string) (*model.Facility, error)
	findAllFn        func(ctx context.Context, limit int, offset int64) ([]*model.Facility, error)
	findAvailableFn  func(ctx context.Context, limit int, offset int64) ([]*model.Facility, error)
	findByTypeFn     func(ctx context.Context, facilityType string, limit int, offset int64) ([]*model.Facility, error)
	updateFn         func(ctx context.Context, id string, update bson.M) (*model.Facility, error)
	deleteFn         func(ctx context.Context, id string) error
	countFn          func(ctx context.Context) (int64, error)
	countAvailableFn func(ctx context.Context) (int64, error)
	countByTypeFn    func(ctx context.Context, facilityType string) (int64, error)
}

func (m *mockFacilityRepo) Create(ctx context.Context, facility *model.Facility) error {
	return m.createFn(ctx, facility)
}

func (m *mockFacilityRepo) FindByID(ctx context.Context, id string) (*model.Facility, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockFacilityRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Facility, error) {
	return m.findAllFn(ctx, limit, offset)
}

func (m *mockFacilityRepo) FindAvailable(ctx context.Context, limit int, offset int64) ([]*model.Facility, error) {
	return m.findAvailableFn(ctx, limit, offset)
}

func (m *mockFacilityRepo) FindByType(ctx context.Context, facilityType string, limit int, offset int64) ([]*model.Facility, error) {
	return m.findByTypeFn(ctx, facilityType, limit, offset)
}

func (m *mockFacilityRepo) Update(ctx context.Context, id string, update bson.M) (*model.Facility, error) {
	return m.updateFn(ctx, id, update)
}

func (m *mockFacilityRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockFacilityRepo) Count(ctx context.Context) (int64, error) {
	return m.countFn(ctx)
}

func (m *mockFacilityRepo) CountAvailable(ctx context.Context) (int64, error) {
	return m.countAvailableFn(ctx)
}

func (m *mockFacilityRepo) CountByType(ctx context.Context, facilityType string) (int64, error) {
	return m.countByTypeFn(ctx, facilityType)
}

func newTestService(repo *mockFacilityRepo) FacilityService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard}),
	}
	return NewFacilityService(cfg, repo, facilityvalidator.NewFacilityValidator())
}

func validFacility() *model.Facility {
	return &model.Facility{
		Name:        "  Main   Hall ",
		Description: "Large event hall",
		Type:        "Meeting Room",
		Capacity:    200,
		HourlyRate:  120,
		IsAvailable: true,
	}
}

func TestCreateFacility(t *testing.T) {
	repo := &mockFacilityRepo{
		createFn: func(_ context.Context, facility *model.Facility) error {
			facility.ID = testFacilityID
			return nil
		},
	}
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), validFacility())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.Name != "Main Hall" {
		t.Errorf("name = %q, want sanitized %q", created.Name, "Main Hall")
	}
	if created.Type != "meeting_room" {
		t.Errorf("type = %q, want canonical %q", created.Type, "meeting_room")
	}
	if created.ID != testFacilityID {
		t.Errorf("ID = %q, want %q", created.ID, testFacilityID)
	}
}

func TestCreateFacilityValidation(t *testing.T) {
	svc := newTestService(&mockFacilityRepo{})

	tests := []struct {
		name   string
		mutate func(f *model.Facility)
	}{
		{"missing name", func(f *model.Facility) { f.Name = "" }},
		{"zero capacity", func(f *model.Facility) { f.Capacity = 0 }},
		{"negative rate", func(f *model.Facility) { f.HourlyRate = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facility := validFacility()
			tt.mutate(facility)
			_, err := svc.Create(context.Background(), facility)
			if err == nil {
				t.Fatal("expected validation error")
			}
			appErr, ok := err.(*apperrors.AppError)
			if !ok || appErr.Code != apperrors.CodeValidation {
				t.Errorf("error = %v, want code %s", err, apperrors.CodeValidation)
			}
		})
	}
}

func TestGetFacilityByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := &mockFacilityRepo{
			findByIDFn: func(_ context.Context, id string) (*model.Facility, error) {
				return &model.Facility{ID: id, Name: "Court A"}, nil
			},
		}
		facility, err := newTestService(repo).GetByID(context.Background(), testFacilityID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if facility.ID != testFacilityID {
			t.Errorf("ID = %q, want %q", facility.ID, testFacilityID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockFacilityRepo{
			findByIDFn: func(_ context.Context, _ string) (*model.Facility, error) {
				return nil, facilitieserrors.ErrNotFound
			},
		}
		_, err := newTestService(repo).GetByID(context.Background(), testFacilityID)
		appErr, ok := err.(*apperrors.AppError)
		if !ok || appErr.Code != apperrors.CodeNotFound {
			t.Errorf("error = %v, want code %s", err, apperrors.CodeNotFound)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		repo := &mockFacilityRepo{
			findByIDFn: func(_ context.Context, _ string) (*model.Facility, error) {
				return nil, facilitieserrors.ErrInvalidID
			},
		}
		_, err := newTestService(repo).GetByID(context.Background(), "garbage")
		appErr, ok := err.(*apperrors.AppError)
		if !ok || appErr.Code != apperrors.CodeInvalidInput {
			t.Errorf("error = %v, want code %s", err, apperrors.CodeInvalidInput)
		}
	})
}

func TestUpdateFacility(t *testing.T) {
	t.Run("partial update builds only present fields", func(t *testing.T) {
		var captured bson.M
		repo := &mockFacilityRepo{
			updateFn: func(_ context.Context, id string, update bson.M) (*model.Facility, error) {
				captured = update
				return &model.Facility{ID: id}, nil
			},
		}

		rate := 99.5
		available := false
		_, err := newTestService(repo).Update(context.Background(), testFacilityID, &model.FacilityUpdate{
			HourlyRate:  &rate,
			IsAvailable: &available,
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		if len(captured) != 2 {
			t.Fatalf("captured %d fields, want 2: %v", len(captured), captured)
		}
		if captured["hourly_rate"] != 99.5 {
			t.Errorf("hourly_rate = %v, want 99.5", captured["hourly_rate"])
		}
		if captured["is_available"] != false {
			t.Errorf("is_available = %v, want false", captured["is_available"])
		}
	})

	t.Run("empty update rejected", func(t *testing.T) {
		_, err := newTestService(&mockFacilityRepo{}).Update(context.Background(), testFacilityID, &model.FacilityUpdate{})
		appErr, ok := err.(*apperrors.AppError)
		if !ok || appErr.Code != apperrors.CodeInvalidInput {
			t.Errorf("error = %v, want code %s", err, apperrors.CodeInvalidInput)
		}
	})
}

func TestDeleteFacility(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockFacilityRepo{
			deleteFn: func(_ context.Context, _ string) error { return nil },
		}
		if err := newTestService(repo).Delete(context.Background(), testFacilityID); err != nil {
			t.Errorf("Delete() error = %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockFacilityRepo{
			deleteFn: func(_ context.Context, _ string) error { return facilitieserrors.ErrNotFound },
		}
		err := newTestService(repo).Delete(context.Background(), testFacilityID)
		appErr, ok := err.(*apperrors.AppError)
		if !ok || appErr.Code != apperrors.CodeNotFound {
			t.Errorf("error = %v, want code %s", err, apperrors.CodeNotFound)
		}
	})
}

func TestGetByTypeNormalizesInput(t *testing.T) {
	var queried string
	repo := &mockFacilityRepo{
		findByTypeFn: func(_ context.Context, facilityType string, _ int, _ int64) ([]*model.Facility, error) {
			queried = facilityType
			return []*model.Facility{}, nil
		},
		countByTypeFn: func(_ context.Context, _ string) (int64, error) { return 0, nil },
	}

	_, _, err := newTestService(repo).GetByType(context.Background(), "  Meeting-Room ", 10, 0)
	if err != nil {
		t.Fatalf("GetByType() error = %v", err)
	}
	if queried != "meeting_room" {
		t.Errorf("queried type = %q, want %q", queried, "meeting_room")
	}
}
