package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// Input validation happens before any storage access, so these paths run
// against the bare handler.
func TestRegisterUserValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/register", RegisterUser)

	cases := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"username": `},
		{name: "missing email", body: `{"username":"alice","password":"password123"}`},
		{name: "invalid email", body: `{"username":"alice","email":"not-an-email","password":"password123"}`},
		{name: "short password", body: `{"username":"alice","email":"alice@example.com","password":"short"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(router, "/auth/register", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
		})
	}
}

func TestLoginUserValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", LoginUser)

	cases := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `not json`},
		{name: "missing login", body: `{"password":"password123"}`},
		{name: "missing password", body: `{"login":"alice"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(router, "/auth/login", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
		})
	}
}

// Registration maps the unique-index violation raised when two registrations
// race past the existence check onto a conflict, not an internal error.
func TestDuplicateAccountDetection(t *testing.T) {
	if !duplicateAccount(gorm.ErrDuplicatedKey) {
		t.Error("duplicateAccount(gorm.ErrDuplicatedKey) = false, want true")
	}
	if !duplicateAccount(fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey)) {
		t.Error("wrapped duplicated-key error not detected")
	}
	if duplicateAccount(errors.New("connection reset by peer")) {
		t.Error("unrelated error misreported as duplicate account")
	}
	if duplicateAccount(nil) {
		t.Error("nil error misreported as duplicate account")
	}
}
