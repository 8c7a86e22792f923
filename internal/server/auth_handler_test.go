package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/context-engine/internal/types"
)

func setupTestAuthHandler(t *testing.T) (*AuthHandler, *UserService) {
	userService, _ := setupTestUserService(t)
	jwtService := setupTestJWTService(t, 24)
	return NewAuthHandler(userService, jwtService), userService
}

func registerTestUser(t *testing.T, userService *UserService) *types.User {
	t.Helper()
	user, err := userService.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, _ := setupTestAuthHandler(t)

		body := `{"name": "Jane Doe", "email": "jane@example.com", "password": "password123"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.Register(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp types.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.User)
		assert.Equal(t, "jane@example.com", resp.User.Email)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("invalid json", func(t *testing.T) {
		handler, _ := setupTestAuthHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(`{invalid`))
		w := httptest.NewRecorder()

		handler.Register(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("password too short", func(t *testing.T) {
		handler, _ := setupTestAuthHandler(t)

		body := `{"name": "Jane Doe", "email": "jane@example.com", "password": "short"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation error")
	})

	t.Run("invalid email", func(t *testing.T) {
		handler, _ := setupTestAuthHandler(t)

		body := `{"name": "Jane Doe", "email": "not-an-email", "password": "password123"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		handler, userService := setupTestAuthHandler(t)
		registerTestUser(t, userService)

		body := `{"name": "Jane Again", "email": "jane@example.com", "password": "password123"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, userService := setupTestAuthHandler(t)
		registered := registerTestUser(t, userService)

		body := `{"email": "jane@example.com", "password": "password123"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp types.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.User)
		assert.Equal(t, registered.ID, resp.User.ID)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		handler, userService := setupTestAuthHandler(t)
		registerTestUser(t, userService)

		body := `{"email": "jane@example.com", "password": "wrong-password"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		handler, _ := setupTestAuthHandler(t)

		body := `{"email": "nobody@example.com", "password": "password123"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		handler, _ := setupTestAuthHandler(t)

		body := `{"email": "jane@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_UpdatePassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, userService := setupTestAuthHandler(t)
		user := registerTestUser(t, userService)

		body := `{"current_password": "password123", "new_password": "newpassword456"}`
		req := httptest.NewRequest(http.MethodPut, "/auth/password", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.UpdatePasswordWithUserID(w, req, user.ID)
		require.Equal(t, http.StatusOK, w.Code)

		// New password now authenticates
		_, err := userService.Login(context.Background(), &types.LoginRequest{
			Email:    "jane@example.com",
			Password: "newpassword456",
		})
		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		handler, userService := setupTestAuthHandler(t)
		user := registerTestUser(t, userService)

		body := `{"current_password": "not-the-password", "new_password": "newpassword456"}`
		req := httptest.NewRequest(http.MethodPut, "/auth/password", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.UpdatePasswordWithUserID(w, req, user.ID)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("new password too short", func(t *testing.T) {
		handler, userService := setupTestAuthHandler(t)
		user := registerTestUser(t, userService)

		body := `{"current_password": "password123", "new_password": "short"}`
		req := httptest.NewRequest(http.MethodPut, "/auth/password", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.UpdatePasswordWithUserID(w, req, user.ID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		handler, _ := setupTestAuthHandler(t)

		body := `{"current_password": "password123", "new_password": "newpassword456"}`
		req := httptest.NewRequest(http.MethodPut, "/auth/password", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.UpdatePasswordWithUserID(w, req, uuid.New())
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
