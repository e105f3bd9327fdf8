package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/auth"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/constants"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/dto"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/middleware"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/models"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/repository"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	tokens      *auth.TokenManager
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Todo{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	handler := NewAuthHandler(authService, tokens)

	r := gin.New()
	requireAuth := middleware.RequireAuth(tokens, userRepo)
	r.POST("/api/v1/auth/register", handler.Register)
	r.POST("/api/v1/auth/login", handler.Login)
	r.GET("/api/v1/auth/me", requireAuth, handler.GetCurrentUser)
	r.DELETE("/api/v1/auth/me", requireAuth, handler.DeleteCurrentUser)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		router:      r,
		authService: authService,
		tokens:      tokens,
	}
}

func postJSON(t *testing.T, r *gin.Engine, url string, payload map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/v1/auth/register", map[string]string{
		"email":    "newuser@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserWithTokenDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "newuser@example.com", response.Email)
	require.Equal(t, "bearer", response.TokenType)
	require.NotEmpty(t, response.AccessToken)

	// The token is immediately usable.
	userID, err := env.tokens.Verify(response.AccessToken)
	require.NoError(t, err)
	require.Equal(t, response.ID, userID)
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/v1/auth/register", map[string]string{
		"email":    "not-an-email",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := postJSON(t, env.router, "/api/v1/auth/register", map[string]string{
		"email":    "existing@example.com",
		"password": "othersecret",
	})

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := postJSON(t, env.router, "/api/v1/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserWithTokenDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "existing@example.com", response.Email)
	require.NotEmpty(t, response.AccessToken)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := postJSON(t, env.router, "/api/v1/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "wrongpassword",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	token, err := env.tokens.Issue(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set(constants.AuthorizationHeader, constants.BearerPrefix+" "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.ID, response.ID)
	require.Equal(t, "existing@example.com", response.Email)

	// Password material never appears in responses.
	require.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_DeleteCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	require.NoError(t, env.db.Create(&models.Todo{
		UserID:     user.ID,
		Title:      "mine",
		Priority:   models.PriorityMedium,
		Recurrence: models.RecurrenceNone,
	}).Error)

	token, err := env.tokens.Issue(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/auth/me", nil)
	req.Header.Set(constants.AuthorizationHeader, constants.BearerPrefix+" "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var todoCount int64
	env.db.Model(&models.Todo{}).Count(&todoCount)
	require.Equal(t, int64(0), todoCount)

	// The token stops working once the account is gone.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set(constants.AuthorizationHeader, constants.BearerPrefix+" "+token)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
