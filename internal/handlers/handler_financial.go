package handlers

import (
	"net/http"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/dto"
	"github.com/rqos/agency-ops-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// financialHandler exposes the monthly rollup and the manually entered figures
// behind it. The whole surface is restricted to admins and managers.
type financialHandler struct {
	financialService portssvc.FinancialService
}

func registerFinancialRoutes(rg *gin.RouterGroup, financialService portssvc.FinancialService) {
	h := &financialHandler{financialService: financialService}

	financials := rg.Group("/financials", middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager))
	{
		financials.GET("/summary", h.monthlySummary)
		financials.PUT("/monthly", h.updateMonthly)
		financials.GET("/clients/:id/costs", h.clientCosts)
		financials.POST("/expenses", h.createExpense)
		financials.GET("/expenses", h.listExpenses)
		financials.PUT("/expenses/:id", h.updateExpense)
		financials.DELETE("/expenses/:id", h.deleteExpense)
	}
}

// monthlySummary godoc
// @Summary Monthly financial rollup
// @Description Aggregates receivable, staffing cost, design payments, taxes, marketing and extra expenses into the period's net profit
// @Tags financials
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} domain.MonthlySummary
// @Security BearerAuth
// @Router /financials/summary [get]
func (h *financialHandler) monthlySummary(c *gin.Context) {
	month, year, err := periodFromQuery(c)
	if err != nil {
		respondError(c, err, "invalid period")
		return
	}
	summary, err := h.financialService.MonthlySummary(c.Request.Context(), month, year)
	if err != nil {
		respondError(c, err, "failed to build monthly summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *financialHandler) updateMonthly(c *gin.Context) {
	month, year, err := periodFromQuery(c)
	if err != nil {
		respondError(c, err, "invalid period")
		return
	}
	var req dto.UpdateMonthlyFinancialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	monthly, err := h.financialService.UpdateMonthly(c.Request.Context(), month, year, req)
	if err != nil {
		respondError(c, err, "failed to update monthly financials")
		return
	}
	c.JSON(http.StatusOK, monthly)
}

// clientCosts godoc
// @Summary Per-client cost and margin breakdown for a period
// @Tags financials
// @Produce json
// @Param id path string true "Client ID"
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {object} domain.ClientCostSummary
// @Security BearerAuth
// @Router /financials/clients/{id}/costs [get]
func (h *financialHandler) clientCosts(c *gin.Context) {
	month, year, err := periodFromQuery(c)
	if err != nil {
		respondError(c, err, "invalid period")
		return
	}
	costs, err := h.financialService.ClientCosts(c.Request.Context(), c.Param("id"), month, year)
	if err != nil {
		respondError(c, err, "failed to compute client costs")
		return
	}
	c.JSON(http.StatusOK, costs)
}

func (h *financialHandler) createExpense(c *gin.Context) {
	var req dto.CreateExtraExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	expense, err := h.financialService.CreateExtraExpense(c.Request.Context(), req, caller.UserID)
	if err != nil {
		respondError(c, err, "failed to create expense")
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *financialHandler) listExpenses(c *gin.Context) {
	month, year, err := periodFromQuery(c)
	if err != nil {
		respondError(c, err, "invalid period")
		return
	}
	expenses, err := h.financialService.ListExtraExpenses(c.Request.Context(), month, year)
	if err != nil {
		respondError(c, err, "failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *financialHandler) updateExpense(c *gin.Context) {
	var req dto.UpdateExtraExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	expense, err := h.financialService.UpdateExtraExpense(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "failed to update expense")
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *financialHandler) deleteExpense(c *gin.Context) {
	if err := h.financialService.DeleteExtraExpense(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}
