package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobtrackr/jobtrackr/internal/middleware"
	"github.com/jobtrackr/jobtrackr/internal/services"
)

type DashboardHandler struct {
	Applications *services.ApplicationService
}

func NewDashboardHandler(apps *services.ApplicationService) *DashboardHandler {
	return &DashboardHandler{Applications: apps}
}

// Dashboard recomputes every aggregate from the current record set. Nothing
// is cached; a mutation followed by a refetch always sees fresh numbers.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	apps, err := h.Applications.All(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load applications: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, services.BuildDashboard(apps))
}

func (h *DashboardHandler) FollowUps(c *gin.Context) {
	apps, err := h.Applications.All(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load applications: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, services.OverdueFollowUps(apps, time.Now()))
}
