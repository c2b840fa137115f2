package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewPaginatedResponseMeta(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int64
		page       int
		limit      int
		wantPages  int
	}{
		{"exact fit", 20, 1, 10, 2},
		{"partial last page", 21, 1, 10, 3},
		{"empty", 0, 1, 10, 0},
		{"single page", 3, 1, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPaginatedResponse([]int{}, tt.totalItems, tt.page, tt.limit)
			if resp.Meta.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", resp.Meta.TotalPages, tt.wantPages)
			}
			if resp.Meta.TotalItems != tt.totalItems {
				t.Errorf("TotalItems = %d, want %d", resp.Meta.TotalItems, tt.totalItems)
			}
		})
	}
}

func TestPageParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "page=3&limit=25", 3, 25},
		{"limit capped", "limit=500", 1, 100},
		{"garbage ignored", "page=abc&limit=-4", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

			page, limit := pageParams(c)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("pageParams() = (%d, %d), want (%d, %d)", page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}
