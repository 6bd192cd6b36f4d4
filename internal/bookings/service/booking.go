package service

import (
	"context"
	"errors"
	bookingserrors "reservo/internal/bookings/errors"
	"reservo/internal/bookings/repository"
	bookingvalidator "reservo/internal/bookings/validator"
	"reservo/pkg/config"
	apperrors "reservo/pkg/errors"
	"reservo/pkg/kafka"
	"reservo/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const eventSource = "reservo-bookings"

// FacilityDirectory resolves facility records for booking creation. The
// facilities service satisfies this; in a split deployment an HTTP client
// would.
type FacilityDirectory interface {
	GetByID(ctx context.Context, id string) (*model.Facility, error)
}

// EventPublisher publishes lifecycle events. Satisfied by kafka.Producer.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type BookingService interface {
	Create(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error)
	GetByFacility(ctx context.Context, facilityID string, limit int, offset int64) ([]*model.Booking, int64, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error)
	Cancel(ctx context.Context, id, callerID string, privileged bool) (*model.Booking, error)
}

type bookingService struct {
	cfg       *config.Config
	repo      repository.BookingRepository
	locks     repository.SlotLockRepository
	directory FacilityDirectory
	validator bookingvalidator.BookingValidator
	events    EventPublisher
	now       func() time.Time
}

func NewBookingService(
	cfg *config.Config,
	repo repository.BookingRepository,
	locks repository.SlotLockRepository,
	directory FacilityDirectory,
	validator bookingvalidator.BookingValidator,
	events EventPublisher,
) BookingService {
	return &bookingService{
		cfg:       cfg,
		repo:      repo,
		locks:     locks,
		directory: directory,
		validator: validator,
		events:    events,
		now:       time.Now,
	}
}

// Create runs the full admission pipeline: sanitize, validate, resolve the
// facility, price the interval, then check conflicts and insert atomically
// under a per-facility advisory lock. The booking starts PENDING.
func (s *bookingService) Create(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user ID is required")
	}
	if req == nil {
		return nil, apperrors.InvalidInput("booking request cannot be nil")
	}

	s.sanitizeRequest(req)

	if err := s.validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	if !req.StartTime.After(s.now()) {
		return nil, apperrors.Validation("start_time must be in the future", map[string]any{
			"start_time": req.StartTime,
		})
	}

	facility, err := s.directory.GetByID(ctx, req.FacilityID)
	if err != nil {
		return nil, err
	}

	if !facility.IsAvailable {
		return nil, apperrors.FacilityUnavailable(facility.ID)
	}

	// Unreachable after validation, but pricing must never see a
	// non-positive duration.
	if req.EndTime.Sub(req.StartTime) <= 0 {
		return nil, apperrors.Validation("booking duration must be positive", nil)
	}

	totalPrice, billableHours := Quote(facility.HourlyRate, req.StartTime, req.EndTime)

	lockID, err := s.acquireFacilityLock(ctx, facility.ID)
	if err != nil {
		return nil, err
	}
	defer s.releaseFacilityLock(context.WithoutCancel(ctx), lockID)

	booking := &model.Booking{
		UserID:     userID,
		FacilityID: facility.ID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Status:     model.StatusPending,
		TotalPrice: totalPrice,
		Note:       req.Note,
	}

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		conflict, err := s.hasConflict(txCtx, facility.ID, req.StartTime, req.EndTime)
		if err != nil {
			return err
		}
		if conflict {
			return apperrors.Conflict("The requested time slot is already booked")
		}

		if err := s.repo.Create(txCtx, booking); err != nil {
			return apperrors.Internal("failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Internal("booking creation failed", err)
	}

	s.cfg.Log.Info("Booking created",
		"booking_id", booking.ID,
		"user_id", userID,
		"facility_id", facility.ID,
		"start_time", booking.StartTime,
		"end_time", booking.EndTime,
		"billable_hours", billableHours,
		"total_price", booking.TotalPrice,
	)

	s.publishEvent(ctx, kafka.EventBookingCreated, booking)

	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("booking ID is required")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return s.listWithCount(ctx,
		func(ctx context.Context) ([]*model.Booking, error) { return s.repo.FindAll(ctx, limit, offset) },
		s.repo.Count,
	)
}

func (s *bookingService) GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if userID == "" {
		return nil, 0, apperrors.InvalidInput("user ID is required")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return s.listWithCount(ctx,
		func(ctx context.Context) ([]*model.Booking, error) { return s.repo.FindByUser(ctx, userID, limit, offset) },
		func(ctx context.Context) (int64, error) { return s.repo.CountByUser(ctx, userID) },
	)
}

func (s *bookingService) GetByFacility(ctx context.Context, facilityID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if facilityID == "" {
		return nil, 0, apperrors.InvalidInput("facility ID is required")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return s.listWithCount(ctx,
		func(ctx context.Context) ([]*model.Booking, error) {
			return s.repo.FindByFacility(ctx, facilityID, limit, offset)
		},
		func(ctx context.Context) (int64, error) { return s.repo.CountByFacility(ctx, facilityID) },
	)
}

// UpdateStatus applies one step of the booking state machine. Terminal
// states absorb: any transition out of CANCELLED or COMPLETED fails.
func (s *bookingService) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	if !status.Valid() {
		return nil, apperrors.InvalidInput("unknown booking status: " + string(status))
	}

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(status) {
		return nil, apperrors.InvalidTransition(string(booking.Status), string(status))
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, mapRepoError(err, id)
	}

	previous := booking.Status
	booking.Status = status

	s.cfg.Log.Info("Booking status updated",
		"booking_id", booking.ID,
		"from", previous,
		"to", status,
	)

	eventType := kafka.EventBookingStatusChanged
	if status == model.StatusCancelled {
		eventType = kafka.EventBookingCancelled
	}
	s.publishEvent(ctx, eventType, booking)

	return booking, nil
}

// Cancel is a soft delete. Owners may cancel their own bookings;
// privileged callers may cancel any. The slot is freed immediately
// because conflict checks only consider active statuses.
func (s *bookingService) Cancel(ctx context.Context, id, callerID string, privileged bool) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !privileged && booking.UserID != callerID {
		return nil, apperrors.Forbidden("only the booking owner may cancel this booking")
	}

	return s.UpdateStatus(ctx, id, model.StatusCancelled)
}

// acquireFacilityLock serializes concurrent creations on the same facility.
// The unique _id insert is the mutual exclusion; the TTL expiry cleans up
// after a crashed holder.
func (s *bookingService) acquireFacilityLock(ctx context.Context, facilityID string) (string, error) {
	lockID := "facility:" + facilityID

	_, err := s.locks.Create(ctx, &model.SlotLock{
		ID:        lockID,
		ExpiresAt: s.now().Add(s.cfg.SlotLockTTL),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("Another booking for this facility is being processed, please retry")
		}
		return "", apperrors.Internal("failed to acquire booking lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseFacilityLock(ctx context.Context, lockID string) {
	if err := s.locks.Delete(ctx, lockID); err != nil {
		// TTL expiry reclaims the lock if this delete fails.
		s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", err)
	}
}

func (s *bookingService) sanitizeRequest(req *model.BookingRequest) {
	req.FacilityID = sanitizeID(req.FacilityID)
	req.Note = sanitizeNote(req.Note)
}

func (s *bookingService) listWithCount(
	ctx context.Context,
	find func(ctx context.Context) ([]*model.Booking, error),
	count func(ctx context.Context) (int64, error),
) ([]*model.Booking, int64, error) {
	type countResult struct {
		n   int64
		err error
	}

	countCh := make(chan countResult, 1)
	go func() {
		n, err := count(ctx)
		countCh <- countResult{n: n, err: err}
	}()

	bookings, err := find(ctx)
	if err != nil {
		<-countCh
		return nil, 0, apperrors.Internal("failed to list bookings", err)
	}

	cr := <-countCh
	if cr.err != nil {
		return nil, 0, apperrors.Internal("failed to count bookings", cr.err)
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}

	return bookings, cr.n, nil
}

type bookingEventPayload struct {
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	FacilityID string    `json:"facility_id"`
	Status     string    `json:"status"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	TotalPrice float64   `json:"total_price"`
}

// publishEvent emits a lifecycle event keyed by booking ID so events for
// one booking stay ordered. Publish failures are logged, never surfaced:
// the booking is already committed and the DLQ catches broker outages.
func (s *bookingService) publishEvent(ctx context.Context, eventType string, booking *model.Booking) {
	if s.events == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithEventType(eventType).
		WithSource(eventSource).
		WithValue(bookingEventPayload{
			BookingID:  booking.ID,
			UserID:     booking.UserID,
			FacilityID: booking.FacilityID,
			Status:     string(booking.Status),
			StartTime:  booking.StartTime,
			EndTime:    booking.EndTime,
			TotalPrice: booking.TotalPrice,
		}).
		Build()

	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

func mapRepoError(err error, id string) error {
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("invalid booking ID: " + id)
	default:
		return apperrors.Internal("booking lookup failed", err)
	}
}
