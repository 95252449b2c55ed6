package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"passdesk/internal/service"
)

// ScanHandler handles passport OCR scan endpoints.
type ScanHandler struct {
	scanService service.ScanService
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scanService service.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// ScanImage handles POST /api/v1/scans
// The passport image arrives as a multipart file; the response carries the
// extracted fields and their per-field validation status.
func (h *ScanHandler) ScanImage(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	image, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "READ_FAILED", "could not read uploaded file")
		return
	}

	result, err := h.scanService.ScanImage(c.Request.Context(), image)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ScanFile handles POST /api/v1/scans/files/:id
// Scans an image previously uploaded to object storage.
func (h *ScanHandler) ScanFile(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid file ID")
		return
	}

	result, err := h.scanService.ScanFile(c.Request.Context(), fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// BatchScanRequest is the body for a batch scan over uploaded files.
type BatchScanRequest struct {
	FileIDs []uuid.UUID `json:"file_ids" binding:"required,min=1"`
}

// ScanBatch handles POST /api/v1/scans/batch
func (h *ScanHandler) ScanBatch(c *gin.Context) {
	var req BatchScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	items, err := h.scanService.ScanBatch(c.Request.Context(), req.FileIDs)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, items)
}
