package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reservo/internal/bookings/service"
	apperrors "reservo/pkg/errors"
	"reservo/pkg/logger"
	"reservo/pkg/model"
	"reservo/pkg/policy"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
)

type stubBookingService struct {
	createFn       func(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, error)
	getByIDFn      func(ctx context.Context, id string) (*model.Booking, error)
	getAllFn       func(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	getByUserFn    func(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error)
	getByFacFn     func(ctx context.Context, facilityID string, limit int, offset int64) ([]*model.Booking, int64, error)
	updateStatusFn func(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error)
	cancelFn       func(ctx context.Context, id, callerID string, privileged bool) (*model.Booking, error)
}

func (s *stubBookingService) Create(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, error) {
	return s.createFn(ctx, userID, req)
}

func (s *stubBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubBookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	return s.getAllFn(ctx, limit, offset)
}

func (s *stubBookingService) GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	return s.getByUserFn(ctx, userID, limit, offset)
}

func (s *stubBookingService) GetByFacility(ctx context.Context, facilityID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	return s.getByFacFn(ctx, facilityID, limit, offset)
}

func (s *stubBookingService) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	return s.updateStatusFn(ctx, id, status)
}

func (s *stubBookingService) Cancel(ctx context.Context, id, callerID string, privileged bool) (*model.Booking, error) {
	return s.cancelFn(ctx, id, callerID, privileged)
}

var _ service.BookingService = (*stubBookingService)(nil)

func newRouter(svc service.BookingService) *httprouter.Router {
	log := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
	router := httprouter.New()
	NewBookingHandler(svc, policy.NewRolePolicy(), log).RegisterRoutes(router)
	return router
}

func TestCreateEndpoint(t *testing.T) {
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	body := `{"facility_id":"64f1b2c3d4e5f6a7b8c9d0e1","start_time":"2026-03-10T10:00:00Z","end_time":"2026-03-10T11:00:00Z"}`

	t.Run("created", func(t *testing.T) {
		svc := &stubBookingService{
			createFn: func(_ context.Context, userID string, req *model.BookingRequest) (*model.Booking, error) {
				if userID != "user-1" {
					t.Errorf("userID = %q, want user-1", userID)
				}
				return &model.Booking{
					ID:         "abc123abc123abc123abc123",
					UserID:     userID,
					FacilityID: req.FacilityID,
					StartTime:  base,
					EndTime:    base.Add(time.Hour),
					Status:     model.StatusPending,
					TotalPrice: 45,
				}, nil
			},
		}

		r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
		r.Header.Set(policy.HeaderUserID, "user-1")
		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
		}
	})

	t.Run("missing identity", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
		w := httptest.NewRecorder()
		newRouter(&stubBookingService{}).ServeHTTP(w, r)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{not json"))
		r.Header.Set(policy.HeaderUserID, "user-1")
		w := httptest.NewRecorder()
		newRouter(&stubBookingService{}).ServeHTTP(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		svc := &stubBookingService{
			createFn: func(_ context.Context, _ string, _ *model.BookingRequest) (*model.Booking, error) {
				return nil, apperrors.Conflict("The requested time slot is already booked")
			},
		}
		r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
		r.Header.Set(policy.HeaderUserID, "user-1")
		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, r)

		if w.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", w.Code)
		}
		var resp struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Code != apperrors.CodeConflict {
			t.Errorf("code = %s, want %s", resp.Code, apperrors.CodeConflict)
		}
	})
}

func TestUpdateStatusEndpoint(t *testing.T) {
	t.Run("requires staff role", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/id/abc/status", strings.NewReader(`{"status":"CONFIRMED"}`))
		r.Header.Set(policy.HeaderUserID, "user-1")
		w := httptest.NewRecorder()
		newRouter(&stubBookingService{}).ServeHTTP(w, r)

		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("unknown status rejected before service", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/id/abc/status", strings.NewReader(`{"status":"ARCHIVED"}`))
		r.Header.Set(policy.HeaderUserID, "staff-1")
		r.Header.Set(policy.HeaderRoles, policy.RoleStaff)
		w := httptest.NewRecorder()
		// No updateStatusFn: reaching the service would panic the test.
		newRouter(&stubBookingService{}).ServeHTTP(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("lowercase status accepted", func(t *testing.T) {
		svc := &stubBookingService{
			updateStatusFn: func(_ context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
				if status != model.StatusConfirmed {
					t.Errorf("status = %s, want CONFIRMED", status)
				}
				return &model.Booking{ID: id, Status: status}, nil
			},
		}
		r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/id/abc/status", strings.NewReader(`{"status":"confirmed"}`))
		r.Header.Set(policy.HeaderUserID, "staff-1")
		r.Header.Set(policy.HeaderRoles, policy.RoleStaff)
		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200; body: %s", w.Code, w.Body.String())
		}
	})

	t.Run("invalid transition maps to 422", func(t *testing.T) {
		svc := &stubBookingService{
			updateStatusFn: func(_ context.Context, _ string, _ model.BookingStatus) (*model.Booking, error) {
				return nil, apperrors.InvalidTransition("COMPLETED", "CONFIRMED")
			},
		}
		r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/id/abc/status", strings.NewReader(`{"status":"CONFIRMED"}`))
		r.Header.Set(policy.HeaderUserID, "staff-1")
		r.Header.Set(policy.HeaderRoles, policy.RoleStaff)
		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, r)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", w.Code)
		}
	})
}

func TestListEndpointAccess(t *testing.T) {
	t.Run("plain user cannot list all", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
		r.Header.Set(policy.HeaderUserID, "user-1")
		w := httptest.NewRecorder()
		newRouter(&stubBookingService{}).ServeHTTP(w, r)

		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("user views own bookings", func(t *testing.T) {
		svc := &stubBookingService{
			getByUserFn: func(_ context.Context, userID string, _ int, _ int64) ([]*model.Booking, int64, error) {
				return []*model.Booking{{ID: "b1", UserID: userID}}, 1, nil
			},
		}
		r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/user/user-1", nil)
		r.Header.Set(policy.HeaderUserID, "user-1")
		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})

	t.Run("user cannot view another user's bookings", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/user/user-2", nil)
		r.Header.Set(policy.HeaderUserID, "user-1")
		w := httptest.NewRecorder()
		newRouter(&stubBookingService{}).ServeHTTP(w, r)

		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("staff views any user's bookings", func(t *testing.T) {
		svc := &stubBookingService{
			getByUserFn: func(_ context.Context, _ string, _ int, _ int64) ([]*model.Booking, int64, error) {
				return []*model.Booking{}, 0, nil
			},
		}
		r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/user/user-2", nil)
		r.Header.Set(policy.HeaderUserID, "staff-1")
		r.Header.Set(policy.HeaderRoles, policy.RoleStaff)
		w := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}

func TestCancelEndpoint(t *testing.T) {
	svc := &stubBookingService{
		cancelFn: func(_ context.Context, id, callerID string, privileged bool) (*model.Booking, error) {
			if privileged {
				t.Error("plain user must not be privileged")
			}
			return &model.Booking{ID: id, UserID: callerID, Status: model.StatusCancelled}, nil
		},
	}

	r := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/id/abc", nil)
	r.Header.Set(policy.HeaderUserID, "user-1")
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data model.Booking `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Status != model.StatusCancelled {
		t.Errorf("status = %s, want CANCELLED", resp.Data.Status)
	}
}
