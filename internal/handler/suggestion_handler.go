package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"mingle/backend/internal/suggest"

	"github.com/gin-gonic/gin"
)

// SuggestedUserResponse is the public summary of a suggested user.
type SuggestedUserResponse struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	FriendsCount int64     `json:"friends_count"`
}

// GetSuggestions godoc
// @Summary      Get friend suggestions
// @Description  Returns a ranked page of users the caller might want to befriend, scored by mutual friends and post interactions, backfilled with well-connected users.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        limit query     int  false  "Page size, capped at 20" default(10)
// @Param        page  query     int  false  "Page number" default(1)
// @Success      200   {array}   SuggestedUserResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /users/suggestions [get]
func GetSuggestions(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	suggestions, err := suggester.Suggest(c.Request.Context(), viewerID.(uint), limit, page)
	if err != nil {
		if errors.Is(err, suggest.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute suggestions"})
		return
	}

	responses := make([]SuggestedUserResponse, 0, len(suggestions))
	for _, s := range suggestions {
		responses = append(responses, SuggestedUserResponse{
			ID:           s.User.ID,
			Username:     s.User.Username,
			Email:        s.User.Email,
			CreatedAt:    s.User.CreatedAt,
			FriendsCount: s.FriendsCount,
		})
	}

	c.JSON(http.StatusOK, responses)
}
