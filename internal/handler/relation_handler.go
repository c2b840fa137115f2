package handler

import (
	"errors"
	"net/http"
	"strconv"

	"mingle/backend/internal/database"
	"mingle/backend/internal/hub"
	"mingle/backend/internal/models"
	"mingle/backend/internal/relation"

	"github.com/gin-gonic/gin"
)

func targetUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return 0, false
	}
	return uint(id), true
}

// respondRelationError maps state machine errors onto HTTP statuses.
func respondRelationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, relation.ErrSelfRelation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot target yourself"})
	case errors.Is(err, relation.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, relation.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "A relation with this user already exists"})
	case errors.Is(err, relation.ErrNoPendingRequest):
		c.JSON(http.StatusConflict, gin.H{"error": "No pending request between these users"})
	case errors.Is(err, relation.ErrNotFriends):
		c.JSON(http.StatusConflict, gin.H{"error": "You are not friends with this user"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update relation"})
	}
}

// SendRequest godoc
// @Summary      Send friend request
// @Description  Sends a friend request to another user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      201  {object}  map[string]string "{"message": "Request sent"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Relation already exists"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/{id}/request [post]
func SendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetID, ok := targetUserID(c)
	if !ok {
		return
	}

	if err := relationSvc.SendRequest(c.Request.Context(), viewerID.(uint), targetID); err != nil {
		respondRelationError(c, err)
		return
	}

	hub.GlobalHub.Notify(targetID, hub.Event{
		Type:    hub.EventFriendRequest,
		Payload: gin.H{"from_user_id": viewerID.(uint)},
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Request sent"})
}

// AcceptRequest godoc
// @Summary      Accept friend request
// @Description  Accepts a pending friend request from another user. Only the recipient may accept.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Requesting User ID"
// @Success      200  {object}  map[string]string "{"message": "Request accepted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "No pending request"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/{id}/accept [post]
func AcceptRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	requesterID, ok := targetUserID(c)
	if !ok {
		return
	}

	if err := relationSvc.Accept(c.Request.Context(), viewerID.(uint), requesterID); err != nil {
		respondRelationError(c, err)
		return
	}

	hub.GlobalHub.Notify(requesterID, hub.Event{
		Type:    hub.EventRequestAccepted,
		Payload: gin.H{"by_user_id": viewerID.(uint)},
	})

	c.JSON(http.StatusOK, gin.H{"message": "Request accepted"})
}

// DeclineRequest godoc
// @Summary      Decline friend request
// @Description  Declines a pending friend request from another user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Requesting User ID"
// @Success      200  {object}  map[string]string "{"message": "Request declined"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "No pending request"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/{id}/decline [post]
func DeclineRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	requesterID, ok := targetUserID(c)
	if !ok {
		return
	}

	if err := relationSvc.Decline(c.Request.Context(), viewerID.(uint), requesterID); err != nil {
		respondRelationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request declined"})
}

// CancelRequest godoc
// @Summary      Cancel a sent friend request
// @Description  Withdraws the caller's own pending request to another user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  map[string]string "{"message": "Request cancelled"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "No pending request"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/{id}/cancel [post]
func CancelRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetID, ok := targetUserID(c)
	if !ok {
		return
	}

	if err := relationSvc.Cancel(c.Request.Context(), viewerID.(uint), targetID); err != nil {
		respondRelationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request cancelled"})
}

// RemoveFriend godoc
// @Summary      Remove a friend
// @Description  Removes the friendship between the caller and another user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Friend User ID"
// @Success      200  {object}  map[string]string "{"message": "Friend removed"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Not friends"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/{id}/remove [post]
func RemoveFriend(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetID, ok := targetUserID(c)
	if !ok {
		return
	}

	if err := relationSvc.Unfriend(c.Request.Context(), viewerID.(uint), targetID); err != nil {
		respondRelationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}

// GetFriends godoc
// @Summary      List the caller's friends
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PublicUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/me/friends [get]
func GetFriends(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var relations []models.UserRelation
	err := database.DB.
		Preload("FromUser").Preload("ToUser").
		Where("(from_user_id = ? OR to_user_id = ?) AND status = ?", viewerID, viewerID, models.StatusAccepted).
		Find(&relations).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	userResponses := make([]PublicUserResponse, 0, len(relations))
	for _, r := range relations {
		friend := r.FromUser
		if r.FromUserID == viewerID.(uint) {
			friend = r.ToUser
		}
		if friend.ID == 0 {
			continue
		}
		userResponses = append(userResponses, buildPublicUserResponse(friend, viewerID.(uint)))
	}

	c.JSON(http.StatusOK, userResponses)
}

// GetRequests godoc
// @Summary      List pending friend requests
// @Description  Lists the caller's pending requests, incoming or outgoing.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        direction query     string  true  "incoming or outgoing"
// @Success      200       {array}   PublicUserResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      401       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /users/me/requests [get]
func GetRequests(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	direction := c.Query("direction")

	query := database.DB.Where("status = ?", models.StatusPending)
	switch direction {
	case "incoming":
		query = query.Where("to_user_id = ?", viewerID).Preload("FromUser")
	case "outgoing":
		query = query.Where("from_user_id = ?", viewerID).Preload("ToUser")
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "A 'direction' query parameter (incoming or outgoing) is required"})
		return
	}

	var relations []models.UserRelation
	if err := query.Find(&relations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	userResponses := make([]PublicUserResponse, 0, len(relations))
	for _, r := range relations {
		other := r.FromUser
		if direction == "outgoing" {
			other = r.ToUser
		}
		if other.ID == 0 {
			continue
		}
		userResponses = append(userResponses, buildPublicUserResponse(other, viewerID.(uint)))
	}

	c.JSON(http.StatusOK, userResponses)
}
