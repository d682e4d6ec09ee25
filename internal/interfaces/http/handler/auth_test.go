package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fintrack/backend/internal/application/identity"
	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/auth"
	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/fintrack/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*ledger.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]*ledger.User)}
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.User, error) {
	return r.FindByID(ctx, id)
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*ledger.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryUserRepo) Create(_ context.Context, user *ledger.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memoryUserRepo) Save(_ context.Context, user *ledger.User) error {
	return r.Create(context.Background(), user)
}

func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-that-is-long-enough-32ch",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "fintrack-test",
		MaxRefreshCount:        2,
	})
	service := identity.NewAuthService(newMemoryUserRepo(), jwtService, nil)

	router := gin.New()
	router.Use(middleware.JWTAuthMiddleware(jwtService))
	api := router.Group("/api/v1")
	NewAuthHandler(service).RegisterRoutes(api)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine) (accessToken, refreshToken string) {
	t.Helper()
	w := postJSON(t, router, "/api/v1/auth/register", gin.H{
		"name":            "Asha",
		"email":           "asha@example.com",
		"password":        "correct-horse",
		"opening_balance": "2500",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	require.NotEmpty(t, resp.Data.RefreshToken)
	return resp.Data.AccessToken, resp.Data.RefreshToken
}

func TestAuthHandler_Register(t *testing.T) {
	router := newAuthTestRouter(t)

	t.Run("creates the account and returns tokens", func(t *testing.T) {
		registerUser(t, router)
	})

	t.Run("rejects a duplicate email with 409", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/auth/register", gin.H{
			"name":     "Asha Again",
			"email":    "ASHA@example.com",
			"password": "another-password",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), shared.CodeConflict)
	})

	t.Run("rejects a short password with 400", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/auth/register", gin.H{
			"name":     "Short",
			"email":    "short@example.com",
			"password": "short",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	router := newAuthTestRouter(t)
	registerUser(t, router)

	t.Run("returns tokens for valid credentials", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/auth/login", gin.H{
			"email":    "asha@example.com",
			"password": "correct-horse",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "access_token")
	})

	t.Run("rejects a wrong password with 401", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/auth/login", gin.H{
			"email":    "asha@example.com",
			"password": "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects an unknown email with 401", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/auth/login", gin.H{
			"email":    "nobody@example.com",
			"password": "correct-horse",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	router := newAuthTestRouter(t)
	_, refreshToken := registerUser(t, router)

	t.Run("exchanges a refresh token for a new pair", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/auth/refresh", gin.H{
			"refresh_token": refreshToken,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "access_token")
	})

	t.Run("rejects a malformed token with 401", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/auth/refresh", gin.H{
			"refresh_token": "not-a-token",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Profile(t *testing.T) {
	router := newAuthTestRouter(t)
	accessToken, _ := registerUser(t, router)

	t.Run("returns the account for a valid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "asha@example.com")
		assert.Contains(t, w.Body.String(), "2500")
	})

	t.Run("rejects a missing token with 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
