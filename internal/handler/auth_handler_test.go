package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"passdesk/internal/domain"
	"passdesk/internal/handler"
	"passdesk/internal/service"
	"passdesk/mocks"
)

func newAuthHandler() (*handler.AuthHandler, *mocks.MockAuthService, *mocks.MockUserService) {
	mockAuth := new(mocks.MockAuthService)
	mockUsers := new(mocks.MockUserService)
	h := handler.NewAuthHandler(mockAuth, mockUsers)
	return h, mockAuth, mockUsers
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h, mockAuth, _ := newAuthHandler()

	pair := &service.TokenPair{AccessToken: "access", RefreshToken: "refresh"}
	mockAuth.On("Login", mock.Anything, service.LoginInput{
		Username: "desk01",
		Password: "password123",
	}).Return(pair, nil)

	body, _ := json.Marshal(map[string]string{
		"username": "desk01",
		"password": "password123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "access", data["access_token"])
	mockAuth.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h, mockAuth, _ := newAuthHandler()

	mockAuth.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

	body, _ := json.Marshal(map[string]string{
		"username": "desk01",
		"password": "wrongpassword",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_ShortPassword(t *testing.T) {
	h, _, _ := newAuthHandler()

	body, _ := json.Marshal(map[string]string{
		"username": "desk01",
		"password": "short",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_RefreshToken_Success(t *testing.T) {
	h, mockAuth, _ := newAuthHandler()

	pair := &service.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}
	mockAuth.On("RefreshToken", mock.Anything, "old-refresh").Return(pair, nil)

	body, _ := json.Marshal(map[string]string{"refresh_token": "old-refresh"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.RefreshToken(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockAuth.AssertExpectations(t)
}

func TestAuthHandler_Me(t *testing.T) {
	h, _, mockUsers := newAuthHandler()

	userID := uuid.New()
	user := &domain.User{ID: userID, Username: "desk01", Role: domain.RoleMember}
	mockUsers.On("GetByID", mock.Anything, userID).Return(user, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	setAuthContext(c, userID, "member")

	h.Me(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "desk01", data["username"])
	mockUsers.AssertExpectations(t)
}

func TestAuthHandler_Me_NoContext(t *testing.T) {
	h, _, _ := newAuthHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)

	h.Me(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
