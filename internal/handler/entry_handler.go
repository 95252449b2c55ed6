package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"passdesk/internal/config"
	"passdesk/internal/middleware"
	"passdesk/internal/port"
	"passdesk/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// EntryHandler handles passport registry endpoints.
type EntryHandler struct {
	entryService service.EntryService
	excelCfg     config.ExcelConfig
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryService service.EntryService, excelCfg config.ExcelConfig) *EntryHandler {
	return &EntryHandler{entryService: entryService, excelCfg: excelCfg}
}

// Register handles POST /api/v1/entries
func (h *EntryHandler) Register(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	var input service.RegisterEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entry, err := h.entryService.Register(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, entry)
}

// List handles GET /api/v1/entries
func (h *EntryHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	filter := port.EntryFilter{
		PassportNo: c.Query("passport_no"),
		Surname:    c.Query("surname"),
		Offset:     offset,
		Limit:      limit,
	}

	entries, total, err := h.entryService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/entries/:id
func (h *EntryHandler) GetByID(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entry ID")
		return
	}

	entry, err := h.entryService.GetByID(c.Request.Context(), entryID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entry)
}

// Update handles PUT /api/v1/entries/:id
func (h *EntryHandler) Update(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entry ID")
		return
	}

	var input service.UpdateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entry, err := h.entryService.Update(c.Request.Context(), entryID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entry)
}

// Delete handles DELETE /api/v1/entries/:id
func (h *EntryHandler) Delete(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entry ID")
		return
	}

	if err := h.entryService.Delete(c.Request.Context(), entryID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "entry deleted"})
}

// BulkDeleteRequest lists the entries to remove in one call.
type BulkDeleteRequest struct {
	EntryIDs []uuid.UUID `json:"entry_ids" binding:"required,min=1"`
}

// BulkDelete handles POST /api/v1/entries/bulk-delete
func (h *EntryHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	deleted, err := h.entryService.DeleteMany(c.Request.Context(), req.EntryIDs)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": deleted})
}

// CheckValidity handles POST /api/v1/entries/validity-check
func (h *EntryHandler) CheckValidity(c *gin.Context) {
	var input service.ValidityCheckInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	results, err := h.entryService.CheckValidity(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, results)
}

// Normalize handles POST /api/v1/entries/normalize
func (h *EntryHandler) Normalize(c *gin.Context) {
	changed, err := h.entryService.NormalizeAll(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"normalized": changed})
}

// AppendWorkbook handles POST /api/v1/entries/:id/workbook
// Takes the operator's existing xlsx as a multipart upload, appends the
// entry, and streams the updated workbook back. Older column layouts are
// migrated in the process.
func (h *EntryHandler) AppendWorkbook(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entry ID")
		return
	}

	file, header, err := c.Request.FormFile("workbook")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "workbook file is required")
		return
	}
	defer file.Close()

	book, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "failed to read workbook")
		return
	}

	updated, err := h.entryService.AppendToWorkbook(c.Request.Context(), entryID, book)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", header.Filename))
	c.Data(http.StatusOK, xlsxContentType, updated)
}

// Export handles GET /api/v1/entries/export
// Streams the registry as an xlsx attachment.
func (h *EntryHandler) Export(c *gin.Context) {
	data, err := h.entryService.ExportWorkbook(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := h.excelCfg.FileName
	if filename == "" {
		filename = fmt.Sprintf("passport_registry_%s.xlsx", time.Now().Format("20060102"))
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
