package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobtrackr/jobtrackr/internal/dtos"
	"github.com/jobtrackr/jobtrackr/internal/middleware"
	"github.com/jobtrackr/jobtrackr/internal/services"
)

type GhostHandler struct {
	Ghosts *services.GhostService
	Users  *services.UserService
}

func NewGhostHandler(ghosts *services.GhostService, users *services.UserService) *GhostHandler {
	return &GhostHandler{Ghosts: ghosts, Users: users}
}

// Candidates re-runs the classifier against the user's threshold. The call
// also auto-reverts stale auto-ghosted records, so just opening the ghost
// panel keeps the flag honest.
func (h *GhostHandler) Candidates(c *gin.Context) {
	userID := middleware.UserID(c)
	user, err := h.Users.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings: " + err.Error()})
		return
	}

	candidates, err := h.Ghosts.Candidates(c.Request.Context(), userID, user.GhostThresholdDays, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ghost check failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"threshold_days": user.GhostThresholdDays,
		"candidates":     candidates,
	})
}

func (h *GhostHandler) GetThreshold(c *gin.Context) {
	user, err := h.Users.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": user.GhostThresholdDays})
}

// SetThreshold persists the new threshold and immediately re-classifies:
// raising the bar reverts auto-ghosted records that no longer clear it.
func (h *GhostHandler) SetThreshold(c *gin.Context) {
	var req dtos.ThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	userID := middleware.UserID(c)
	if err := h.Users.SetGhostThreshold(c.Request.Context(), userID, req.Days); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save threshold: " + err.Error()})
		return
	}

	candidates, err := h.Ghosts.Candidates(c.Request.Context(), userID, req.Days, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ghost check failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": req.Days, "candidates": candidates})
}

func (h *GhostHandler) Confirm(c *gin.Context) {
	var req dtos.GhostConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	token, expiresAt, err := h.Ghosts.Confirm(c.Request.Context(), middleware.UserID(c), req.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to ghost applications: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ghosted":    len(req.IDs),
		"undo_token": token,
		"expires_at": expiresAt,
	})
}

func (h *GhostHandler) Undo(c *gin.Context) {
	var req dtos.GhostUndoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	reverted, err := h.Ghosts.Undo(c.Request.Context(), middleware.UserID(c), req.Token)
	if err != nil {
		if errors.Is(err, services.ErrUndoExpired) {
			c.JSON(http.StatusGone, gin.H{"error": "undo window expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "undo failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reverted": reverted})
}
