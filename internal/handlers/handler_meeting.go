package handlers

import (
	"net/http"

	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/dto"
	"github.com/rqos/agency-ops-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type meetingHandler struct {
	meetingService portssvc.MeetingService
}

func registerMeetingRoutes(rg *gin.RouterGroup, meetingService portssvc.MeetingService) {
	h := &meetingHandler{meetingService: meetingService}

	meetings := rg.Group("/meetings")
	{
		meetings.POST("", h.createMeeting)
		meetings.GET("", h.listMeetings)
	}
}

// createMeeting godoc
// @Summary Log a client meeting
// @Description Records the meeting; a provided health score also updates the client's current score
// @Tags meetings
// @Accept json
// @Produce json
// @Param meeting body dto.CreateMeetingRequest true "Meeting details"
// @Success 201 {object} domain.Meeting
// @Security BearerAuth
// @Router /meetings [post]
func (h *meetingHandler) createMeeting(c *gin.Context) {
	var req dto.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	meeting, err := h.meetingService.CreateMeeting(c.Request.Context(), req, caller.UserID)
	if err != nil {
		respondError(c, err, "failed to create meeting")
		return
	}
	c.JSON(http.StatusCreated, meeting)
}

func (h *meetingHandler) listMeetings(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var meetingType *domain.MeetingType
	if value := c.Query("type"); value != "" {
		t := domain.MeetingType(value)
		meetingType = &t
	}
	meetings, err := h.meetingService.ListMeetings(c.Request.Context(), optionalQuery(c, "clientID"), meetingType, caller)
	if err != nil {
		respondError(c, err, "failed to list meetings")
		return
	}
	c.JSON(http.StatusOK, meetings)
}
