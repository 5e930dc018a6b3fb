package users_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"smarthire-backend/internal/shared/auth"
	"smarthire-backend/internal/shared/server/middleware"
	"smarthire-backend/internal/users"
)

func newTestRouter(t *testing.T) (*gin.Engine, *users.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	svc := users.NewService(users.NewMemoryRepo(), tokens)
	handler := users.NewHandler(svc)

	r := gin.New()
	authRequired := middleware.Auth(tokens)

	public := r.Group("/api/auth")
	private := r.Group("/api/auth")
	private.Use(authRequired)
	handler.RegisterAuthRoutes(public, private)

	admin := r.Group("/api/users")
	admin.Use(authRequired, middleware.RequireRoles(users.RoleAdmin))
	handler.RegisterAdminRoutes(admin)

	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "secret1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.Role != users.RoleStudent {
		t.Errorf("role = %q, want student", resp.User.Role)
	}

	// Same email again.
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Ada Again",
		"email":    "ada@example.com",
		"password": "secret2",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate email status = %d, want 400", w.Code)
	}
}

func TestLoginEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "secret1",
	})

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ada@example.com", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ada@example.com", "password": "secret1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestMeRoundTrip(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "secret1",
	})
	var reg struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &reg); err != nil {
		t.Fatalf("decode register: %v", err)
	}

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", reg.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d: %s", w.Code, w.Body.String())
	}
	var me struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.ID != reg.User.ID {
		t.Errorf("me id = %q, want %q", me.ID, reg.User.ID)
	}

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", w.Code)
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	r, svc := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "secret1",
	})
	var reg struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &reg); err != nil {
		t.Fatalf("decode register: %v", err)
	}

	w = doJSON(t, r, http.MethodGet, "/api/users", reg.Token, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("student listing users: status = %d, want 403", w.Code)
	}

	// Promote and log in again for an admin token.
	if _, err := svc.Update(t.Context(), reg.User.ID, users.UpdateInput{Role: users.RoleAdmin}); err != nil {
		t.Fatalf("promote: %v", err)
	}
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ada@example.com", "password": "secret1",
	})
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	w = doJSON(t, r, http.MethodGet, "/api/users", login.Token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("admin listing users: status = %d, want 200: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, "/api/users/"+reg.User.ID, login.Token, gin.H{"name": "Countess"})
	if w.Code != http.StatusOK {
		t.Errorf("admin update: status = %d: %s", w.Code, w.Body.String())
	}
}
