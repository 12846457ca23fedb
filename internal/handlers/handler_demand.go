package handlers

import (
	"net/http"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/dto"
	"github.com/rqos/agency-ops-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// demandHandler handles the general kanban pipeline.
type demandHandler struct {
	demandService portssvc.DemandService
	scopePolicy   portssvc.ScopePolicy
}

func registerDemandRoutes(rg *gin.RouterGroup, demandService portssvc.DemandService, scopePolicy portssvc.ScopePolicy) {
	h := &demandHandler{demandService: demandService, scopePolicy: scopePolicy}

	columns := rg.Group("/demand-columns")
	{
		columns.POST("", h.createColumn)
		columns.GET("", h.listColumns)
		columns.PUT("/:id", h.updateColumn)
		columns.DELETE("/:id", h.deleteColumn)
	}

	demands := rg.Group("/demands")
	{
		demands.POST("", h.createDemand)
		demands.GET("", h.listDemands)
		demands.GET("/board", h.getBoard)
		demands.GET("/:id", h.getDemand)
		demands.PUT("/:id", h.updateDemand)
		demands.POST("/:id/move", h.moveDemand)
		demands.DELETE("/:id", h.deleteDemand)
		demands.GET("/:id/history", h.listHistory)
		demands.GET("/:id/comments", h.listComments)
		demands.POST("/:id/comments", h.addComment)
	}
}

func (h *demandHandler) createColumn(c *gin.Context) {
	var req dto.CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	column, err := h.demandService.CreateColumn(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to create column")
		return
	}
	c.JSON(http.StatusCreated, column)
}

func (h *demandHandler) listColumns(c *gin.Context) {
	columns, err := h.demandService.ListColumns(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list columns")
		return
	}
	c.JSON(http.StatusOK, columns)
}

func (h *demandHandler) updateColumn(c *gin.Context) {
	var req dto.UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	column, err := h.demandService.UpdateColumn(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "failed to update column")
		return
	}
	c.JSON(http.StatusOK, column)
}

func (h *demandHandler) deleteColumn(c *gin.Context) {
	if err := h.demandService.DeleteColumn(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete column")
		return
	}
	c.Status(http.StatusNoContent)
}

// createDemand godoc
// @Summary Open a work item on the general pipeline
// @Description Creates a demand; without a column it lands in the intake column
// @Tags demands
// @Accept json
// @Produce json
// @Param demand body dto.CreateDemandRequest true "Demand details"
// @Success 201 {object} domain.Demand
// @Security BearerAuth
// @Router /demands [post]
func (h *demandHandler) createDemand(c *gin.Context) {
	var req dto.CreateDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	demand, err := h.demandService.CreateDemand(c.Request.Context(), req, caller.UserID)
	if err != nil {
		respondError(c, err, "failed to create demand")
		return
	}
	c.JSON(http.StatusCreated, demand)
}

// listDemands godoc
// @Summary List work items, narrowed to the caller's visible set
// @Tags demands
// @Produce json
// @Param clientID query string false "Filter by client"
// @Param assigneeID query string false "Filter by assignee"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Success 200 {array} domain.Demand
// @Security BearerAuth
// @Router /demands [get]
func (h *demandHandler) listDemands(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	scope, err := h.scopePolicy.ScopeFor(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "failed to resolve caller scope")
		return
	}

	filter := domain.DemandFilter{
		ClientID:   optionalQuery(c, "clientID"),
		AssigneeID: optionalQuery(c, "assigneeID"),
		Scope:      scope,
	}
	if value := c.Query("status"); value != "" {
		s := domain.DemandStatus(value)
		filter.Status = &s
	}
	if value := c.Query("priority"); value != "" {
		p := domain.DemandPriority(value)
		filter.Priority = &p
	}

	demands, err := h.demandService.ListDemands(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "failed to list demands")
		return
	}
	c.JSON(http.StatusOK, demands)
}

func (h *demandHandler) getBoard(c *gin.Context) {
	board, err := h.demandService.GetBoard(c.Request.Context(),
		optionalQuery(c, "clientID"), optionalQuery(c, "assigneeID"))
	if err != nil {
		respondError(c, err, "failed to load board")
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *demandHandler) getDemand(c *gin.Context) {
	demand, err := h.demandService.GetDemandByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to get demand")
		return
	}
	c.JSON(http.StatusOK, demand)
}

func (h *demandHandler) updateDemand(c *gin.Context) {
	var req dto.UpdateDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	demand, err := h.demandService.UpdateDemand(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "failed to update demand")
		return
	}
	c.JSON(http.StatusOK, demand)
}

// moveDemand godoc
// @Summary Move a work item to another column
// @Description Repositions the demand, records the transition in history and stamps completion on done-stage columns
// @Tags demands
// @Accept json
// @Produce json
// @Param id path string true "Demand ID"
// @Param move body dto.MoveDemandRequest true "Target column and position"
// @Success 200 {object} domain.Demand
// @Security BearerAuth
// @Router /demands/{id}/move [post]
func (h *demandHandler) moveDemand(c *gin.Context) {
	var req dto.MoveDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	demand, err := h.demandService.MoveDemand(c.Request.Context(), c.Param("id"), req, caller.UserID)
	if err != nil {
		respondError(c, err, "failed to move demand")
		return
	}
	c.JSON(http.StatusOK, demand)
}

func (h *demandHandler) deleteDemand(c *gin.Context) {
	if err := h.demandService.DeleteDemand(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete demand")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *demandHandler) listHistory(c *gin.Context) {
	history, err := h.demandService.ListHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to list history")
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *demandHandler) listComments(c *gin.Context) {
	comments, err := h.demandService.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to list comments")
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *demandHandler) addComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	comment, err := h.demandService.AddComment(c.Request.Context(), c.Param("id"), req, caller.UserID)
	if err != nil {
		respondError(c, err, "failed to add comment")
		return
	}
	c.JSON(http.StatusCreated, comment)
}
