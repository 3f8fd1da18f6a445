package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursecatalog/internal/app/models/dto"
	"github.com/yigit/coursecatalog/internal/middleware"
	"github.com/yigit/coursecatalog/internal/pkg/apperrors"
)

// Pinger reports whether storage is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports service health
type HealthController struct {
	store Pinger
}

// NewHealthController creates a new HealthController
func NewHealthController(store Pinger) *HealthController {
	return &HealthController{store: store}
}

// Health checks storage connectivity
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Router /health [get]
func (h *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(pingCtx); err != nil {
		middleware.HandleAPIError(ctx, apperrors.E(apperrors.KindStorageUnavailable, "health", err), "Storage unavailable")
		return
	}

	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
