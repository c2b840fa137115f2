package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mingle/backend/internal/relation"

	"github.com/gin-gonic/gin"
)

func TestRespondRelationErrorStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "self relation", err: relation.ErrSelfRelation, want: http.StatusBadRequest},
		{name: "unknown user", err: relation.ErrUserNotFound, want: http.StatusNotFound},
		{name: "already related", err: relation.ErrAlreadyExists, want: http.StatusConflict},
		{name: "no pending request", err: relation.ErrNoPendingRequest, want: http.StatusConflict},
		{name: "not friends", err: relation.ErrNotFriends, want: http.StatusConflict},
		{name: "storage failure", err: errors.New("connection refused"), want: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			respondRelationError(c, tc.err)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestSendRequestRejectsInvalidTargetID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/users/:id/request", func(c *gin.Context) {
		c.Set("userID", uint(1))
	}, SendRequest)

	req := httptest.NewRequest(http.MethodPost, "/users/abc/request", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d (body: %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}
