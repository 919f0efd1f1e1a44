package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jobtrackr/jobtrackr/internal/dtos"
	"github.com/jobtrackr/jobtrackr/internal/middleware"
	"github.com/jobtrackr/jobtrackr/internal/services"
)

// minResumeChars rejects obviously truncated extractions before burning an
// LLM call on them.
const minResumeChars = 50

type ResumeHandler struct {
	Resumes *services.ResumeService
	LLM     *services.LLMService
}

func NewResumeHandler(resumes *services.ResumeService, llm *services.LLMService) *ResumeHandler {
	return &ResumeHandler{Resumes: resumes, LLM: llm}
}

// Create registers a resume version and hands back a presigned URL the client
// uploads the PDF to. The record exists even if the upload is abandoned.
func (h *ResumeHandler) Create(c *gin.Context) {
	var req dtos.ResumeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	resume, uploadURL, err := h.Resumes.Create(c.Request.Context(), middleware.UserID(c), req.VersionName, req.FileName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create resume: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"resume": resume, "upload_url": uploadURL})
}

func (h *ResumeHandler) List(c *gin.Context) {
	resumes, err := h.Resumes.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load resumes: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumes": resumes})
}

func (h *ResumeHandler) SignedURL(c *gin.Context) {
	url, err := h.Resumes.SignedURL(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "resume not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign url: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	if err := h.Resumes.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "resume not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete resume: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Score compares pasted resume text against a job description.
func (h *ResumeHandler) Score(c *gin.Context) {
	var req dtos.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if len(strings.TrimSpace(req.ResumeText)) < minResumeChars {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume text too short to score"})
		return
	}

	result, err := h.LLM.ScoreResume(c.Request.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		if errors.Is(err, services.ErrBadModelOutput) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to parse model response, try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "scoring failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
