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

// region --- DTOs ---

// PostInput defines the request body for creating or updating a post.
type PostInput struct {
	Content string `json:"content" binding:"required,max=4096"`
}

// PostResponse is the public representation of a post.
type PostResponse struct {
	ID             uint      `json:"id"`
	AuthorID       uint      `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	LikesCount     int64     `json:"likes_count"`
	CommentsCount  int64     `json:"comments_count"`
	LikedByMe      bool      `json:"liked_by_me"`
}

func newPostResponse(post models.Post, viewerID uint) PostResponse {
	var likesCount, commentsCount, viewerLikes int64
	database.DB.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likesCount)
	database.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentsCount)
	database.DB.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", post.ID, viewerID).Count(&viewerLikes)

	return PostResponse{
		ID:             post.ID,
		AuthorID:       post.AuthorID,
		AuthorUsername: post.Author.Username,
		Content:        post.Content,
		CreatedAt:      post.CreatedAt,
		LikesCount:     likesCount,
		CommentsCount:  commentsCount,
		LikedByMe:      viewerLikes > 0,
	}
}

// endregion

// region --- Handlers ---

// CreatePost godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostInput true "Post content"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /posts [post]
func CreatePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := models.Post{
		AuthorID: viewerID.(uint),
		Content:  input.Content,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	database.DB.Preload("Author").First(&post, post.ID)
	c.JSON(http.StatusCreated, newPostResponse(post, viewerID.(uint)))
}

// GetPosts godoc
// @Summary      List posts
// @Description  Retrieves a paginated list of posts, optionally filtered by content or author.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        q         query  string  false  "Search query for post content"
// @Param        author_id query  int     false  "Only posts by this author"
// @Param        page      query  int     false  "Page number" default(1)
// @Param        limit     query  int     false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /posts [get]
func GetPosts(c *gin.Context) {
	viewerID := currentUserID(c)
	page, limit := pageParams(c)

	query := database.DB.Model(&models.Post{})
	if searchQuery := c.Query("q"); searchQuery != "" {
		query = query.Where("content ILIKE ?", "%"+searchQuery+"%")
	}
	if authorIDStr := c.Query("author_id"); authorIDStr != "" {
		authorID, err := strconv.ParseUint(authorIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid author ID"})
			return
		}
		query = query.Where("author_id = ?", uint(authorID))
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count posts"})
		return
	}

	var posts []models.Post
	err := query.Preload("Author").
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, newPostResponse(post, viewerID))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, totalItems, page, limit))
}

// GetPostByID godoc
// @Summary      Get a single post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200 {object} PostResponse
// @Failure      404 {object} ErrorResponse "Post not found"
// @Router       /posts/{id} [get]
func GetPostByID(c *gin.Context) {
	viewerID := currentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))

	var post models.Post
	if err := database.DB.Preload("Author").First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, newPostResponse(post, viewerID))
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Replaces the content of the caller's own post.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int       true  "Post ID"
// @Param        input body  PostInput true  "New content"
// @Success      200  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the author"
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id} [put]
func UpdatePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	var post models.Post
	if err := database.DB.First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if post.AuthorID != viewerID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own posts"})
		return
	}

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post.Content = input.Content
	if err := database.DB.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	database.DB.Preload("Author").First(&post, id)
	c.JSON(http.StatusOK, newPostResponse(post, viewerID.(uint)))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes a post. Allowed for the author and for admins.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200 {object} map[string]string "{"message": "Post deleted"}"
// @Failure      403 {object} ErrorResponse "Not the author"
// @Failure      404 {object} ErrorResponse "Post not found"
// @Router       /posts/{id} [delete]
func DeletePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	var post models.Post
	if err := database.DB.First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if post.AuthorID != viewerID.(uint) && !isAdmin(viewerID.(uint)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own posts"})
		return
	}

	if err := database.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// ToggleLikePost godoc
// @Summary      Toggle a like on a post
// @Description  Likes the post, or removes the caller's like if it exists.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200 {object} map[string]bool "{"liked": true}"
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Post not found"
// @Failure      500 {object} ErrorResponse
// @Router       /posts/{id}/like [post]
func ToggleLikePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	id, _ := strconv.Atoi(c.Param("id"))

	var post models.Post
	if err := database.DB.First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var existing int64
	database.DB.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", post.ID, viewerID).Count(&existing)

	if existing > 0 {
		if err := database.DB.Where("post_id = ? AND user_id = ?", post.ID, viewerID).Delete(&models.Like{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove like"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"liked": false})
		return
	}

	like := models.Like{PostID: post.ID, UserID: viewerID.(uint)}
	if err := database.DB.Create(&like).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	if post.AuthorID != viewerID.(uint) {
		hub.GlobalHub.Notify(post.AuthorID, hub.Event{
			Type:    hub.EventPostLiked,
			Payload: gin.H{"post_id": post.ID, "by_user_id": viewerID.(uint)},
		})
	}

	c.JSON(http.StatusOK, gin.H{"liked": true})
}

// AdminDeletePost godoc
// @Summary      Delete any post
// @Description  Removes a post regardless of its author.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200 {object} map[string]string "{"message": "Post deleted"}"
// @Failure      403 {object} ErrorResponse "Admin access required"
// @Failure      404 {object} ErrorResponse "Post not found"
// @Router       /admin/posts/{id} [delete]
func AdminDeletePost(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	result := database.DB.Delete(&models.Post{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// endregion

func isAdmin(userID uint) bool {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return false
	}
	return user.IsAdmin()
}

// currentUserID returns the authenticated user's ID, or zero on routes where
// authentication is optional and no token was presented.
func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get("userID"); ok {
		return v.(uint)
	}
	return 0
}
