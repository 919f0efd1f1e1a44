package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobtrackr/jobtrackr/internal/dtos"
	"github.com/jobtrackr/jobtrackr/internal/middleware"
	"github.com/jobtrackr/jobtrackr/internal/scrape"
	"github.com/jobtrackr/jobtrackr/internal/services"
)

type ApplicationHandler struct {
	Applications *services.ApplicationService
	LLM          *services.LLMService
}

func NewApplicationHandler(apps *services.ApplicationService, llm *services.LLMService) *ApplicationHandler {
	return &ApplicationHandler{Applications: apps, LLM: llm}
}

// List is GET /applications with search/status/work_type/source/page query
// params. Changing a filter is just a new query, which lands on page 1 unless
// the client asks for another page.
func (h *ApplicationHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	filter := services.Filter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		WorkType: c.Query("work_type"),
		Source:   c.Query("source"),
	}

	result, err := h.Applications.List(c.Request.Context(), middleware.UserID(c), filter, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load applications: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ApplicationHandler) Sources(c *gin.Context) {
	sources, err := h.Applications.Sources(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sources: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sources": sources})
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	var req dtos.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	app, err := h.Applications.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create application: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	var req dtos.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	app, err := h.Applications.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err, "failed to update application")
		return
	}
	c.JSON(http.StatusOK, app)
}

// UpdateStatus backs the kanban drag: only the status moves.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req dtos.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	app, err := h.Applications.UpdateStatus(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err, "failed to update status")
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	if err := h.Applications.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		h.respondError(c, err, "failed to delete application")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Extract is POST /applications/extract: raw posting HTML in, structured
// JSON out. The model's JSON is passed through untouched.
func (h *ApplicationHandler) Extract(c *gin.Context) {
	var req dtos.ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	extracted, err := h.LLM.ExtractJobDetails(c.Request.Context(), req.RawHTML)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "extraction failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": json.RawMessage(extracted)})
}

// Capture is what the browser extension posts. Fields the extension scraped
// win; gaps are filled from the page text by the per-site strategies.
func (h *ApplicationHandler) Capture(c *gin.Context) {
	var req dtos.CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	derived := scrape.Detect(req.JobURL, req.PageText)

	appliedDate := req.AppliedDate
	if appliedDate == nil || *appliedDate == "" {
		today := time.Now().Format(services.DateLayout)
		appliedDate = &today
	}

	create := dtos.ApplicationRequest{
		CompanyName: req.CompanyName,
		JobTitle:    req.JobTitle,
		AppliedDate: appliedDate,
		JobURL:      &req.JobURL,
		Location:    req.Location,
		Source:      fillFrom(req.Source, derived.Source),
		ApplyMethod: fillFrom(req.ApplyMethod, derived.ApplyMethod),
		WorkType:    fillFrom(req.WorkType, derived.WorkType),
		JobType:     fillFrom(req.JobType, derived.JobType),
	}

	app, err := h.Applications.Create(c.Request.Context(), middleware.UserID(c), &create)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save captured job: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) respondError(c *gin.Context, err error, msg string) {
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg + ": " + err.Error()})
}

func fillFrom(explicit *string, derived string) *string {
	if explicit != nil && *explicit != "" {
		return explicit
	}
	if derived == "" {
		return nil
	}
	return &derived
}
