package handler

import (
	"net/http"
	"strconv"
	"time"

	"mingle/backend/internal/database"
	"mingle/backend/internal/hub"
	"mingle/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// CommentInput defines the request body for creating a comment.
type CommentInput struct {
	Content string `json:"content" binding:"required,max=2048"`
}

// CommentResponse is the public representation of a comment.
type CommentResponse struct {
	ID             uint      `json:"id"`
	PostID         uint      `json:"post_id"`
	AuthorID       uint      `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

func newCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:             comment.ID,
		PostID:         comment.PostID,
		AuthorID:       comment.AuthorID,
		AuthorUsername: comment.Author.Username,
		Content:        comment.Content,
		CreatedAt:      comment.CreatedAt,
	}
}

// CreateComment godoc
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int          true  "Post ID"
// @Param        input body  CommentInput true  "Comment content"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/comments [post]
func CreateComment(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	postID, _ := strconv.Atoi(c.Param("id"))

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: viewerID.(uint),
		Content:  input.Content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	if post.AuthorID != viewerID.(uint) {
		hub.GlobalHub.Notify(post.AuthorID, hub.Event{
			Type:    hub.EventPostCommented,
			Payload: gin.H{"post_id": post.ID, "by_user_id": viewerID.(uint)},
		})
	}

	database.DB.Preload("Author").First(&comment, comment.ID)
	c.JSON(http.StatusCreated, newCommentResponse(comment))
}

// GetComments godoc
// @Summary      List comments on a post
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id    path   int  true   "Post ID"
// @Param        page  query  int  false  "Page number" default(1)
// @Param        limit query  int  false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[CommentResponse]
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/comments [get]
func GetComments(c *gin.Context) {
	postID, _ := strconv.Atoi(c.Param("id"))
	page, limit := pageParams(c)

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	query := database.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID)

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count comments"})
		return
	}

	var comments []models.Comment
	err := query.Preload("Author").
		Order("created_at ASC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, newCommentResponse(comment))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, totalItems, page, limit))
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Deletes a comment. Allowed for the author and for admins.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Comment ID"
// @Success      200 {object} map[string]string "{"message": "Comment deleted"}"
// @Failure      403 {object} ErrorResponse "Not the author"
// @Failure      404 {object} ErrorResponse "Comment not found"
// @Router       /comments/{id} [delete]
func DeleteComment(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	var comment models.Comment
	if err := database.DB.First(&comment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	if comment.AuthorID != viewerID.(uint) && !isAdmin(viewerID.(uint)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own comments"})
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// AdminDeleteComment godoc
// @Summary      Delete any comment
// @Description  Removes a comment regardless of its author.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Comment ID"
// @Success      200 {object} map[string]string "{"message": "Comment deleted"}"
// @Failure      403 {object} ErrorResponse "Admin access required"
// @Failure      404 {object} ErrorResponse "Comment not found"
// @Router       /admin/comments/{id} [delete]
func AdminDeleteComment(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	result := database.DB.Delete(&models.Comment{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
