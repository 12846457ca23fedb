package handlers

import (
	"net/http"

	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type dashboardHandler struct {
	dashboardService portssvc.DashboardService
}

func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardService) {
	h := &dashboardHandler{dashboardService: dashboardService}
	rg.GET("/dashboard/stats", h.stats)
}

// stats godoc
// @Summary Home dashboard counters
// @Description Cross-module counts narrowed to what the caller may see
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.DashboardStats
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *dashboardHandler) stats(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	stats, err := h.dashboardService.Stats(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "failed to load dashboard stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
