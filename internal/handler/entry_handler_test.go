package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"passdesk/internal/config"
	"passdesk/internal/domain"
	"passdesk/internal/handler"
	"passdesk/internal/middleware"
	"passdesk/internal/service"
	"passdesk/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setAuthContext injects the values AuthMiddleware would set after a
// successful token validation.
func setAuthContext(c *gin.Context, userID uuid.UUID, role string) {
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyUsername, "operator1")
	c.Set(middleware.ContextKeyRole, role)
}

func newEntryHandler() (*handler.EntryHandler, *mocks.MockEntryService) {
	mockSvc := new(mocks.MockEntryService)
	h := handler.NewEntryHandler(mockSvc, config.ExcelConfig{SheetName: "旅券情報", FileName: "registry.xlsx"})
	return h, mockSvc
}

func TestEntryHandler_Register_Success(t *testing.T) {
	h, mockSvc := newEntryHandler()

	userID := uuid.New()
	expected := &domain.Entry{ID: uuid.New(), PassportNo: "TZ1234567", CreatedBy: userID}

	mockSvc.On("Register", mock.Anything, userID, mock.MatchedBy(func(input service.RegisterEntryInput) bool {
		return input.Fields != nil && input.Fields.PassportNo == "TZ1234567" && input.Address == "Shinjuku"
	})).Return(expected, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"fields": map[string]string{
			"passport_no": "TZ1234567",
			"surname":     "YAMADA",
		},
		"address": "Shinjuku",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, userID, "member")

	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestEntryHandler_Register_NoAuth(t *testing.T) {
	h, _ := newEntryHandler()

	body, _ := json.Marshal(map[string]interface{}{
		"fields": map[string]string{"passport_no": "TZ1234567"},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEntryHandler_Register_MissingFields(t *testing.T) {
	h, _ := newEntryHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader([]byte(`{}`)))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, uuid.New(), "member")

	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEntryHandler_GetByID_NotFound(t *testing.T) {
	h, mockSvc := newEntryHandler()

	entryID := uuid.New()
	mockSvc.On("GetByID", mock.Anything, entryID).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/entries/"+entryID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: entryID.String()}}
	setAuthContext(c, uuid.New(), "member")

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEntryHandler_GetByID_InvalidID(t *testing.T) {
	h, _ := newEntryHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/entries/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	setAuthContext(c, uuid.New(), "member")

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEntryHandler_CheckValidity(t *testing.T) {
	h, mockSvc := newEntryHandler()

	results := []domain.ValidityResult{
		{EntryID: uuid.New(), PassportNo: "TZ1234567", Status: domain.ValidityOK, DaysLeft: 200},
	}
	mockSvc.On("CheckValidity", mock.Anything, mock.MatchedBy(func(input service.ValidityCheckInput) bool {
		return input.EntryDate == "2026/09/01" && input.RequiredDays == 90
	})).Return(results, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"entry_date":    "2026/09/01",
		"required_days": 90,
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/entries/validity-check", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, uuid.New(), "member")

	h.CheckValidity(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestEntryHandler_Export(t *testing.T) {
	h, mockSvc := newEntryHandler()

	mockSvc.On("ExportWorkbook", mock.Anything).Return([]byte("workbook-bytes"), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/entries/export", nil)
	setAuthContext(c, uuid.New(), "member")

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "registry.xlsx")
	assert.Equal(t, "workbook-bytes", w.Body.String())
}

func TestEntryHandler_AppendWorkbook(t *testing.T) {
	h, mockSvc := newEntryHandler()

	entryID := uuid.New()
	mockSvc.On("AppendToWorkbook", mock.Anything, entryID, []byte("old-book")).
		Return([]byte("new-book"), nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("workbook", "registry.xlsx")
	require.NoError(t, err)
	_, err = fw.Write([]byte("old-book"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/entries/"+entryID.String()+"/workbook", &buf)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	c.Params = gin.Params{{Key: "id", Value: entryID.String()}}
	setAuthContext(c, uuid.New(), "member")

	h.AppendWorkbook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "registry.xlsx")
	assert.Equal(t, "new-book", w.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestEntryHandler_AppendWorkbook_MissingFile(t *testing.T) {
	h, _ := newEntryHandler()

	entryID := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/entries/"+entryID.String()+"/workbook", nil)
	c.Params = gin.Params{{Key: "id", Value: entryID.String()}}
	setAuthContext(c, uuid.New(), "member")

	h.AppendWorkbook(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEntryHandler_BulkDelete(t *testing.T) {
	h, mockSvc := newEntryHandler()

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	mockSvc.On("DeleteMany", mock.Anything, ids).Return(2, nil)

	body, _ := json.Marshal(map[string]interface{}{"entry_ids": ids})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/entries/bulk-delete", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, uuid.New(), "admin")

	h.BulkDelete(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(2), data["deleted"])
	mockSvc.AssertExpectations(t)
}

func TestEntryHandler_BulkDelete_EmptyList(t *testing.T) {
	h, _ := newEntryHandler()

	body, _ := json.Marshal(map[string]interface{}{"entry_ids": []string{}})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/entries/bulk-delete", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, uuid.New(), "admin")

	h.BulkDelete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEntryHandler_Normalize(t *testing.T) {
	h, mockSvc := newEntryHandler()

	mockSvc.On("NormalizeAll", mock.Anything).Return(3, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/entries/normalize", nil)
	setAuthContext(c, uuid.New(), "admin")

	h.Normalize(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["normalized"])
}
