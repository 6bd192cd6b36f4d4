package handler

import (
	"encoding/json"
	"net/http"
	"reservo/internal/bookings/service"
	apperrors "reservo/pkg/errors"
	httputil "reservo/pkg/http"
	"reservo/pkg/logger"
	"reservo/pkg/model"
	"reservo/pkg/policy"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	policy  policy.Policy
	log     *logger.Logger
}

func NewBookingHandler(svc service.BookingService, pol policy.Policy, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: svc,
		policy:  pol,
		log:     log,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.GetAll)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.GET("/api/v1/bookings/user/:userId", h.GetByUser)
	router.GET("/api/v1/bookings/facility/:facilityId", h.GetByFacility)
	router.PATCH("/api/v1/bookings/id/:id/status", h.UpdateStatus)
	router.DELETE("/api/v1/bookings/id/:id", h.Cancel)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := policy.UserIDFromRequest(r)
	if userID == "" {
		h.writeError(w, apperrors.Unauthorized("missing caller identity"))
		return
	}

	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	booking, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !h.policy.CanViewAll(policy.RolesFromRequest(r)) {
		h.writeError(w, apperrors.Forbidden("listing all bookings requires staff access"))
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	bookings, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) GetByUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userId")

	caller := policy.UserIDFromRequest(r)
	if caller != userID && !h.policy.CanViewAll(policy.RolesFromRequest(r)) {
		h.writeError(w, apperrors.Forbidden("cannot view another user's bookings"))
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	bookings, total, err := h.service.GetByUser(r.Context(), userID, limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) GetByFacility(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	bookings, total, err := h.service.GetByFacility(r.Context(), ps.ByName("facilityId"), limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !h.policy.CanSetStatus(policy.RolesFromRequest(r)) {
		h.writeError(w, apperrors.Forbidden("updating booking status requires staff access"))
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	status, err := model.ParseBookingStatus(req.Status)
	if err != nil {
		h.writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), ps.ByName("id"), status)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

// Cancel soft-deletes a booking. The record survives with CANCELLED status
// and its slot becomes bookable again.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	caller := policy.UserIDFromRequest(r)
	if caller == "" {
		h.writeError(w, apperrors.Unauthorized("missing caller identity"))
		return
	}

	privileged := h.policy.CanSetStatus(policy.RolesFromRequest(r))

	booking, err := h.service.Cancel(r.Context(), ps.ByName("id"), caller, privileged)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.Error("Request failed", "code", appErr.Code, "error", appErr.Error())
	}
	if writeErr := httputil.WriteError(w, appErr); writeErr != nil {
		h.log.Error("Failed to write error response", "error", writeErr)
	}
}
