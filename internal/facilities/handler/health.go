package handler

import (
	"context"
	"net/http"
	httputil "reservo/pkg/http"
	"reservo/pkg/logger"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const readinessPingTimeout = 2 * time.Second

// HealthHandler serves liveness and readiness probes. Liveness never
// touches dependencies; readiness pings Mongo.
type HealthHandler struct {
	mongo *mongo.Client
	log   *logger.Logger
}

func NewHealthHandler(mongoClient *mongo.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		mongo: mongoClient,
		log:   log,
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessPingTimeout)
	defer cancel()

	if err := h.mongo.Ping(ctx, readpref.Primary()); err != nil {
		h.log.Error("Readiness check failed", "error", err)
		_ = httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"reason": "database unreachable",
		})
		return
	}

	_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
