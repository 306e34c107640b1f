package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/koolkhan8586/hr-management/internal/auth"
	autherrors "github.com/koolkhan8586/hr-management/internal/auth/errors"
	authMock "github.com/koolkhan8586/hr-management/internal/auth/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService)
	router := setupAuthRouter()
	router.POST("/login", handler.Login)

	t.Run("web client receives cookies", func(t *testing.T) {
		mockService.EXPECT().
			Login(gomock.Any(), "admin@example.com", "secret123").
			Return(auth.TokenResponse{
				User:         auth.AuthResponse{EmployeeID: "A1", Email: "admin@example.com", Role: "admin"},
				AccessToken:  "access-token",
				RefreshToken: "refresh-token",
			}, nil)

		body, _ := json.Marshal(auth.LoginRequest{Email: "admin@example.com", Password: "secret123"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "WEB")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		if assert.Len(t, cookies, 2) {
			assert.Equal(t, "access_token", cookies[0].Name)
			assert.Equal(t, "access-token", cookies[0].Value)
		}

		var res map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		user := res["data"].(map[string]any)["user"].(map[string]any)
		assert.Equal(t, "admin@example.com", user["email"])
	})

	t.Run("invalid credentials", func(t *testing.T) {
		mockService.EXPECT().
			Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(auth.TokenResponse{}, autherrors.ErrInvalidCredentials)

		body, _ := json.Marshal(auth.LoginRequest{Email: "wrong@example.com", Password: "123"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("malformed email never reaches service", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":"nope","password":"x"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := authMock.NewMockService(ctrl)
	handler := auth.NewHandler(mockService)

	router := setupAuthRouter()
	router.GET("/me", func(c *gin.Context) {
		if id := c.GetHeader("X-Employee"); id != "" {
			c.Set("employee_id", id)
		}
		c.Next()
	}, handler.Me)

	mockService.EXPECT().
		GetMe(gomock.Any(), "E1").
		Return(auth.AuthResponse{EmployeeID: "E1", Role: "employee"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-Employee", "E1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"employeeId":"E1"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := authMock.NewMockService(ctrl)
	router := setupAuthRouter()
	router.POST("/refresh", auth.NewHandler(mockService).RefreshToken)

	t.Run("web client without cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		req.Header.Set("X-Client-Type", "WEB")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "NO_REFRESH_TOKEN")
	})

	t.Run("mobile client body", func(t *testing.T) {
		mockService.EXPECT().
			RefreshToken(gomock.Any(), "rt-1").
			Return(auth.TokenResponse{AccessToken: "new-access"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewBufferString(`{"refreshToken":"rt-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "new-access")
	})
}
