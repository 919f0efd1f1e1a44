package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobtrackr/jobtrackr/internal/middleware"
	"github.com/jobtrackr/jobtrackr/internal/services"
)

const recentBatchLimit = 5

type ImportHandler struct {
	Imports *services.ImportService
}

func NewImportHandler(imports *services.ImportService) *ImportHandler {
	return &ImportHandler{Imports: imports}
}

// Upload accepts a multipart CSV file and imports it as one undoable batch.
func (h *ImportHandler) Upload(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	defer file.Close()

	report, err := h.Imports.Import(c.Request.Context(), middleware.UserID(c), file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "import failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ImportHandler) Recent(c *gin.Context) {
	batches, err := h.Imports.RecentBatches(c.Request.Context(), middleware.UserID(c), recentBatchLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load imports: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"batches": batches})
}

// Undo removes every record the batch inserted and reports the exact count,
// even when some rows were edited or deleted in the meantime.
func (h *ImportHandler) Undo(c *gin.Context) {
	removed, err := h.Imports.UndoBatch(c.Request.Context(), middleware.UserID(c), c.Param("timestamp"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "undo failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
