package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// A registered route behind the auth middleware answers 401 to an anonymous
// request, while an unregistered path falls through to gin's 404. That
// distinction lets route registration be checked without a database.
func TestModerationRoutesRegisteredAndProtected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := setupRouter()

	protected := []string{
		"/api/v1/admin/users/1",
		"/api/v1/admin/posts/1",
		"/api/v1/admin/comments/1",
	}
	for _, path := range protected {
		req := httptest.NewRequest(http.MethodDelete, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("DELETE %s status = %d, want %d", path, rec.Code, http.StatusUnauthorized)
		}
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/likes/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unregistered admin path status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
