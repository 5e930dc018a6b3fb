package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"smarthire-backend/internal/shared/auth"
)

func newAuthRouter(t *testing.T, tokens *auth.TokenManager, roles ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/protected")
	group.Use(Auth(tokens))
	if len(roles) > 0 {
		group.Use(RequireRoles(roles...))
	}
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": UserIDFromContext(c),
			"role":   UserRoleFromContext(c),
		})
	})
	return r
}

func doAuthed(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingOrBadTokens(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := newAuthRouter(t, tokens)

	if w := doAuthed(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no header: status = %d, want 401", w.Code)
	}
	if w := doAuthed(r, "Token abc"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong scheme: status = %d, want 401", w.Code)
	}
	if w := doAuthed(r, "Bearer not.a.token"); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", w.Code)
	}

	other := auth.NewTokenManager("other-secret", time.Hour)
	foreign, err := other.Sign("u1", "student")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if w := doAuthed(r, "Bearer "+foreign); w.Code != http.StatusUnauthorized {
		t.Errorf("foreign token: status = %d, want 401", w.Code)
	}
}

func TestAuthSetsIdentity(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := newAuthRouter(t, tokens)

	token, err := tokens.Sign("u1", "student")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	w := doAuthed(r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if want := `"userId":"u1"`; !strings.Contains(body, want) {
		t.Errorf("body %q missing %q", body, want)
	}
}

func TestAuthAbortsPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodOptions, "/protected", nil)

	Auth(tokens)(c)

	if !c.IsAborted() {
		t.Error("preflight request not aborted")
	}
	if got := c.Writer.Status(); got != http.StatusNoContent {
		t.Errorf("status = %d, want 204", got)
	}
}

func TestRequireRoles(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := newAuthRouter(t, tokens, "admin")

	student, err := tokens.Sign("u1", "student")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if w := doAuthed(r, "Bearer "+student); w.Code != http.StatusForbidden {
		t.Errorf("student: status = %d, want 403", w.Code)
	}

	admin, err := tokens.Sign("u2", "admin")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if w := doAuthed(r, "Bearer "+admin); w.Code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", w.Code)
	}
}
