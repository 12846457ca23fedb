package handlers

import (
	"io"
	"net/http"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/dto"
	"github.com/rqos/agency-ops-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// designHandler handles the design-production pipeline: its board, payment
// approvals, attachments and the per-member rate table.
type designHandler struct {
	designService portssvc.DesignService
}

func registerDesignRoutes(rg *gin.RouterGroup, designService portssvc.DesignService) {
	h := &designHandler{designService: designService}

	columns := rg.Group("/design-columns")
	{
		columns.POST("", h.createColumn)
		columns.GET("", h.listColumns)
		columns.PUT("/:id", h.updateColumn)
		columns.DELETE("/:id", h.deleteColumn)
	}

	demands := rg.Group("/design-demands")
	{
		demands.POST("", h.createDemand)
		demands.GET("", h.listDemands)
		demands.GET("/board", h.getBoard)
		demands.GET("/:id", h.getDemand)
		demands.PUT("/:id", h.updateDemand)
		demands.POST("/:id/move", h.moveDemand)
		demands.POST("/:id/approve", h.approveDemand)
		demands.DELETE("/:id", h.deleteDemand)
		demands.GET("/:id/history", h.listHistory)
		demands.GET("/:id/comments", h.listComments)
		demands.POST("/:id/comments", h.addComment)
		demands.POST("/:id/attachments", h.uploadAttachment)
		demands.GET("/:id/attachments", h.listAttachments)
	}

	attachments := rg.Group("/design-attachments")
	{
		attachments.GET("/:id", h.getAttachment)
		attachments.DELETE("/:id", h.deleteAttachment)
	}

	payments := rg.Group("/design-payments")
	{
		payments.GET("", h.listPayments)
		payments.GET("/summary", h.paymentSummary)
	}

	rates := rg.Group("/design-rates")
	{
		rates.GET("", h.listRates)
		rates.PUT("/:memberID", middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager), h.upsertRate)
	}
}

func (h *designHandler) createColumn(c *gin.Context) {
	var req dto.CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	column, err := h.designService.CreateColumn(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to create column")
		return
	}
	c.JSON(http.StatusCreated, column)
}

func (h *designHandler) listColumns(c *gin.Context) {
	columns, err := h.designService.ListColumns(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list columns")
		return
	}
	c.JSON(http.StatusOK, columns)
}

func (h *designHandler) updateColumn(c *gin.Context) {
	var req dto.UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	column, err := h.designService.UpdateColumn(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "failed to update column")
		return
	}
	c.JSON(http.StatusOK, column)
}

func (h *designHandler) deleteColumn(c *gin.Context) {
	if err := h.designService.DeleteColumn(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete column")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *designHandler) createDemand(c *gin.Context) {
	var req dto.CreateDesignDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	demand, err := h.designService.CreateDemand(c.Request.Context(), req, caller.UserID)
	if err != nil {
		respondError(c, err, "failed to create design demand")
		return
	}
	c.JSON(http.StatusCreated, demand)
}

func (h *designHandler) listDemands(c *gin.Context) {
	demands, err := h.designService.ListDemands(c.Request.Context(),
		optionalQuery(c, "clientID"), optionalQuery(c, "assigneeID"))
	if err != nil {
		respondError(c, err, "failed to list design demands")
		return
	}
	c.JSON(http.StatusOK, demands)
}

func (h *designHandler) getBoard(c *gin.Context) {
	board, err := h.designService.GetBoard(c.Request.Context(),
		optionalQuery(c, "clientID"), optionalQuery(c, "assigneeID"))
	if err != nil {
		respondError(c, err, "failed to load design board")
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *designHandler) getDemand(c *gin.Context) {
	demand, err := h.designService.GetDemandByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to get design demand")
		return
	}
	c.JSON(http.StatusOK, demand)
}

func (h *designHandler) updateDemand(c *gin.Context) {
	var req dto.UpdateDesignDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	demand, err := h.designService.UpdateDemand(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "failed to update design demand")
		return
	}
	c.JSON(http.StatusOK, demand)
}

func (h *designHandler) moveDemand(c *gin.Context) {
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
	demand, err := h.designService.MoveDemand(c.Request.Context(), c.Param("id"), req, caller.UserID)
	if err != nil {
		respondError(c, err, "failed to move design demand")
		return
	}
	c.JSON(http.StatusOK, demand)
}

// approveDemand godoc
// @Summary Approve a design demand and register its payment
// @Description Freezes the payment at the assignee's current rate; approving twice returns 409
// @Tags design
// @Produce json
// @Param id path string true "Design demand ID"
// @Success 200 {object} domain.DesignDemand
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /design-demands/{id}/approve [post]
func (h *designHandler) approveDemand(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	demand, err := h.designService.ApproveDemand(c.Request.Context(), c.Param("id"), caller.UserID)
	if err != nil {
		respondError(c, err, "failed to approve design demand")
		return
	}
	c.JSON(http.StatusOK, demand)
}

func (h *designHandler) deleteDemand(c *gin.Context) {
	if err := h.designService.DeleteDemand(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete design demand")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *designHandler) listHistory(c *gin.Context) {
	history, err := h.designService.ListHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to list history")
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *designHandler) listComments(c *gin.Context) {
	comments, err := h.designService.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to list comments")
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *designHandler) addComment(c *gin.Context) {
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
	comment, err := h.designService.AddComment(c.Request.Context(), c.Param("id"), req, caller.UserID)
	if err != nil {
		respondError(c, err, "failed to add comment")
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// uploadAttachment godoc
// @Summary Attach a file to a design demand
// @Description Accepts a multipart "file" field; size and content type are validated before anything persists
// @Tags design
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Design demand ID"
// @Param file formData file true "File to attach"
// @Success 201 {object} domain.Attachment
// @Security BearerAuth
// @Router /design-demands/{id}/attachments [post]
func (h *designHandler) uploadAttachment(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file field: " + err.Error()})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	upload := dto.AttachmentUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        data,
	}
	attachment, err := h.designService.UploadAttachment(c.Request.Context(), c.Param("id"), upload, caller.UserID)
	if err != nil {
		respondError(c, err, "failed to upload attachment")
		return
	}
	c.JSON(http.StatusCreated, attachment)
}

func (h *designHandler) listAttachments(c *gin.Context) {
	attachments, err := h.designService.ListAttachments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to list attachments")
		return
	}
	c.JSON(http.StatusOK, attachments)
}

func (h *designHandler) getAttachment(c *gin.Context) {
	attachment, err := h.designService.GetAttachmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to get attachment")
		return
	}
	c.JSON(http.StatusOK, attachment)
}

func (h *designHandler) deleteAttachment(c *gin.Context) {
	if err := h.designService.DeleteAttachment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete attachment")
		return
	}
	c.Status(http.StatusNoContent)
}

// listPayments godoc
// @Summary List registered design payments for a billing period
// @Tags design
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Param memberID query string false "Filter by member"
// @Success 200 {array} domain.DesignPayment
// @Security BearerAuth
// @Router /design-payments [get]
func (h *designHandler) listPayments(c *gin.Context) {
	month, year, err := periodFromQuery(c)
	if err != nil {
		respondError(c, err, "invalid period")
		return
	}
	payments, err := h.designService.ListPayments(c.Request.Context(), month, year, optionalQuery(c, "memberID"))
	if err != nil {
		respondError(c, err, "failed to list payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *designHandler) paymentSummary(c *gin.Context) {
	month, year, err := periodFromQuery(c)
	if err != nil {
		respondError(c, err, "invalid period")
		return
	}
	summary, err := h.designService.PaymentSummary(c.Request.Context(), month, year)
	if err != nil {
		respondError(c, err, "failed to build payment summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *designHandler) listRates(c *gin.Context) {
	rates, err := h.designService.ListRates(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list rates")
		return
	}
	c.JSON(http.StatusOK, rates)
}

func (h *designHandler) upsertRate(c *gin.Context) {
	var req dto.UpsertRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	rate, err := h.designService.UpsertRate(c.Request.Context(), c.Param("memberID"), req)
	if err != nil {
		respondError(c, err, "failed to save rate")
		return
	}
	c.JSON(http.StatusOK, rate)
}
