package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jhconstruction/backoffice/internal/domain/authz"
	"github.com/jhconstruction/backoffice/internal/server/middleware"
	"github.com/jhconstruction/backoffice/internal/service/auth"
)

func testEngine(t *testing.T, tokens *auth.Service, op authz.Operation) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	group := r.Group("/", middleware.Authenticate(tokens))
	group.GET("/gated", middleware.Require(op), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": middleware.CallerID(c),
			"role":   string(middleware.CallerRole(c)),
		})
	})
	return r
}

func request(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingToken(t *testing.T) {
	tokens := auth.NewService("secret", time.Hour)
	r := testEngine(t, tokens, authz.OpReportView)

	if w := request(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateBadToken(t *testing.T) {
	tokens := auth.NewService("secret", time.Hour)
	r := testEngine(t, tokens, authz.OpReportView)

	if w := request(r, "not-a-token"); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireDeniesRole(t *testing.T) {
	tokens := auth.NewService("secret", time.Hour)
	r := testEngine(t, tokens, authz.OpProjectDelete)

	token, _, err := tokens.IssueToken("u1", authz.RoleEmployee)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if w := request(r, token); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequireAllowsRole(t *testing.T) {
	tokens := auth.NewService("secret", time.Hour)
	r := testEngine(t, tokens, authz.OpProjectDelete)

	token, _, err := tokens.IssueToken("u1", authz.RoleManager)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if w := request(r, token); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CORS("https://office.example.com"))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://office.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://office.example.com" {
		t.Errorf("allow-origin = %q", got)
	}
}

func TestCORSWildcardEchoesOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CORS("*"))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// A literal "*" combined with Allow-Credentials is rejected by browsers,
	// so the wildcard must answer with the caller's own origin.
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("allow-origin = %q, want the request origin echoed back", got)
	}
	if got := w.Header().Get("Vary"); got != "Origin" {
		t.Errorf("vary = %q, want Origin", got)
	}
}

func TestCORSNoOriginHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CORS("*"))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow-origin = %q, want no CORS headers for same-origin requests", got)
	}
}
