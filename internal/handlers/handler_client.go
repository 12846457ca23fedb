package handlers

import (
	"log/slog"
	"net/http"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/dto"
	"github.com/rqos/agency-ops-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// clientHandler handles HTTP requests related to clients.
type clientHandler struct {
	clientService portssvc.ClientService
	designService portssvc.DesignService
}

// registerClientRoutes registers routes related to clients, including the
// approved-work gallery served off the design pipeline.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientService, designService portssvc.DesignService) {
	h := &clientHandler{clientService: clientService, designService: designService}

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:id", h.getClient)
		clients.PUT("/:id", h.updateClient)
		clients.DELETE("/:id", middleware.RequireRoles(domain.RoleAdmin), h.deleteClient)
		clients.GET("/:id/gallery", h.clientGallery)
	}
}

// createClient godoc
// @Summary Register a new client
// @Tags clients
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} domain.Client
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createClient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req, caller.UserID)
	if err != nil {
		respondError(c, err, "failed to create client")
		return
	}
	c.JSON(http.StatusCreated, client)
}

// listClients godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {array} domain.Client
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	var status *domain.ClientStatus
	if value := c.Query("status"); value != "" {
		s := domain.ClientStatus(value)
		status = &s
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), status)
	if err != nil {
		respondError(c, err, "failed to list clients")
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *clientHandler) getClient(c *gin.Context) {
	client, err := h.clientService.GetClientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to get client")
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *clientHandler) updateClient(c *gin.Context) {
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "failed to update client")
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *clientHandler) deleteClient(c *gin.Context) {
	if err := h.clientService.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete client")
		return
	}
	c.Status(http.StatusNoContent)
}

// clientGallery godoc
// @Summary List a client's approved design work with attachments
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {array} domain.GalleryItem
// @Security BearerAuth
// @Router /clients/{id}/gallery [get]
func (h *clientHandler) clientGallery(c *gin.Context) {
	items, err := h.designService.ClientGallery(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to load client gallery")
		return
	}
	c.JSON(http.StatusOK, items)
}
