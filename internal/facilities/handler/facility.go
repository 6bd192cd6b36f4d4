package handler

import (
	"encoding/json"
	"net/http"
	"reservo/internal/facilities/service"
	apperrors "reservo/pkg/errors"
	httputil "reservo/pkg/http"
	"reservo/pkg/logger"
	"reservo/pkg/model"
	"reservo/pkg/policy"

	"github.com/julienschmidt/httprouter"
)

type FacilityHandler struct {
	service service.FacilityService
	policy  policy.Policy
	log     *logger.Logger
}

func NewFacilityHandler(svc service.FacilityService, pol policy.Policy, log *logger.Logger) *FacilityHandler {
	return &FacilityHandler{
		service: svc,
		policy:  pol,
		log:     log,
	}
}

func (h *FacilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/facilities", h.Create)
	router.GET("/api/v1/facilities", h.GetAll)
	router.GET("/api/v1/facilities/available", h.GetAvailable)
	router.GET("/api/v1/facilities/type/:type", h.GetByType)
	router.GET("/api/v1/facilities/id/:id", h.GetByID)
	router.PATCH("/api/v1/facilities/id/:id", h.Update)
	router.DELETE("/api/v1/facilities/id/:id", h.Delete)
}

func (h *FacilityHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !h.policy.CanManageFacilities(policy.RolesFromRequest(r)) {
		h.writeError(w, apperrors.Forbidden("managing facilities requires admin access"))
		return
	}

	var facility model.Facility
	if err := json.NewDecoder(r.Body).Decode(&facility); err != nil {
		h.writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	created, err := h.service.Create(r.Context(), &facility)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *FacilityHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	facilities, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, facilities, total, limit, offset); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *FacilityHandler) GetAvailable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	facilities, total, err := h.service.GetAvailable(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, facilities, total, limit, offset); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *FacilityHandler) GetByType(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	facilities, total, err := h.service.GetByType(r.Context(), ps.ByName("type"), limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, facilities, total, limit, offset); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *FacilityHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	facility, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, facility); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *FacilityHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !h.policy.CanManageFacilities(policy.RolesFromRequest(r)) {
		h.writeError(w, apperrors.Forbidden("managing facilities requires admin access"))
		return
	}

	var update model.FacilityUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	facility, err := h.service.Update(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, facility); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *FacilityHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !h.policy.CanManageFacilities(policy.RolesFromRequest(r)) {
		h.writeError(w, apperrors.Forbidden("managing facilities requires admin access"))
		return
	}

	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *FacilityHandler) writeError(w http.ResponseWriter, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.Error("Request failed", "code", appErr.Code, "error", appErr.Error())
	}
	if writeErr := httputil.WriteError(w, appErr); writeErr != nil {
		h.log.Error("Failed to write error response", "error", writeErr)
	}
}
