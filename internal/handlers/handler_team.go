package handlers

import (
	"net/http"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/dto"
	"github.com/rqos/agency-ops-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// teamHandler handles HTTP requests for squads, members and allocations.
type teamHandler struct {
	teamService portssvc.TeamService
}

func registerTeamRoutes(rg *gin.RouterGroup, teamService portssvc.TeamService) {
	h := &teamHandler{teamService: teamService}

	squads := rg.Group("/squads")
	{
		squads.POST("", h.createSquad)
		squads.GET("", h.listSquads)
		squads.GET("/:id", h.getSquad)
		squads.PUT("/:id", h.updateSquad)
		squads.DELETE("/:id", middleware.RequireRoles(domain.RoleAdmin), h.deleteSquad)
	}

	members := rg.Group("/members")
	{
		members.POST("", h.createMember)
		members.GET("", h.listMembers)
		members.GET("/:id", h.getMember)
		members.PUT("/:id", h.updateMember)
		members.DELETE("/:id", middleware.RequireRoles(domain.RoleAdmin), h.deleteMember)
	}

	allocations := rg.Group("/allocations")
	{
		allocations.POST("", h.createAllocation)
		allocations.GET("", h.listAllocations)
		allocations.PUT("/:id", h.updateAllocation)
		allocations.DELETE("/:id", h.deleteAllocation)
	}
}

func (h *teamHandler) createSquad(c *gin.Context) {
	var req dto.CreateSquadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	squad, err := h.teamService.CreateSquad(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to create squad")
		return
	}
	c.JSON(http.StatusCreated, squad)
}

func (h *teamHandler) listSquads(c *gin.Context) {
	squads, err := h.teamService.ListSquads(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list squads")
		return
	}
	c.JSON(http.StatusOK, squads)
}

func (h *teamHandler) getSquad(c *gin.Context) {
	squad, err := h.teamService.GetSquadByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to get squad")
		return
	}
	c.JSON(http.StatusOK, squad)
}

func (h *teamHandler) updateSquad(c *gin.Context) {
	var req dto.UpdateSquadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	squad, err := h.teamService.UpdateSquad(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "failed to update squad")
		return
	}
	c.JSON(http.StatusOK, squad)
}

func (h *teamHandler) deleteSquad(c *gin.Context) {
	if err := h.teamService.DeleteSquad(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete squad")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *teamHandler) createMember(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	member, err := h.teamService.CreateMember(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to create member")
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *teamHandler) listMembers(c *gin.Context) {
	var status *domain.MemberStatus
	if value := c.Query("status"); value != "" {
		s := domain.MemberStatus(value)
		status = &s
	}
	members, err := h.teamService.ListMembers(c.Request.Context(), optionalQuery(c, "squadID"), status)
	if err != nil {
		respondError(c, err, "failed to list members")
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *teamHandler) getMember(c *gin.Context) {
	member, err := h.teamService.GetMemberByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to get member")
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *teamHandler) updateMember(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	member, err := h.teamService.UpdateMember(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "failed to update member")
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *teamHandler) deleteMember(c *gin.Context) {
	if err := h.teamService.DeleteMember(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete member")
		return
	}
	c.Status(http.StatusNoContent)
}

// createAllocation godoc
// @Summary Allocate a member to a client
// @Description Creates a staffing allocation; duplicate member or role pairs for a client are rejected
// @Tags allocations
// @Accept json
// @Produce json
// @Param allocation body dto.CreateAllocationRequest true "Allocation details"
// @Success 201 {object} domain.StaffingAllocation
// @Failure 409 {object} map[string]string "Member or role already allocated"
// @Security BearerAuth
// @Router /allocations [post]
func (h *teamHandler) createAllocation(c *gin.Context) {
	var req dto.CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	allocation, err := h.teamService.CreateAllocation(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to create allocation")
		return
	}
	c.JSON(http.StatusCreated, allocation)
}

func (h *teamHandler) listAllocations(c *gin.Context) {
	allocations, err := h.teamService.ListAllocations(c.Request.Context(),
		optionalQuery(c, "clientID"), optionalQuery(c, "memberID"))
	if err != nil {
		respondError(c, err, "failed to list allocations")
		return
	}
	c.JSON(http.StatusOK, allocations)
}

func (h *teamHandler) updateAllocation(c *gin.Context) {
	var req dto.UpdateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	allocation, err := h.teamService.UpdateAllocation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "failed to update allocation")
		return
	}
	c.JSON(http.StatusOK, allocation)
}

func (h *teamHandler) deleteAllocation(c *gin.Context) {
	if err := h.teamService.DeleteAllocation(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete allocation")
		return
	}
	c.Status(http.StatusNoContent)
}
