package post

import (
	"errors"
	"time"

	"github.com/conectaedu/conecta-api/model"
	"github.com/conectaedu/conecta-api/utils/query"
	"github.com/conectaedu/conecta-api/utils/response"
	"github.com/conectaedu/conecta-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PostHandler handles post-related requests
type PostHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewPostHandler creates a new post handler
func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	Title    string   `json:"title" validate:"required,min=3,max=255"`
	Content  string   `json:"content" validate:"required"`
	AuthorID uint     `json:"authorId" validate:"required,min=1"`
	Tags     []string `json:"tags" validate:"omitempty,dive,min=1,max=50"`
	MediaIDs []uint   `json:"mediaIds"`
}

// UpdatePostRequest represents a partial update; only submitted fields change
type UpdatePostRequest struct {
	Title    *string  `json:"title" validate:"omitempty,min=3,max=255"`
	Content  *string  `json:"content" validate:"omitempty"`
	Tags     []string `json:"tags" validate:"omitempty,dive,min=1,max=50"`
	MediaIDs []uint   `json:"mediaIds"`
}

// AddCommentRequest represents the request body for commenting on a post
type AddCommentRequest struct {
	AuthorID uint   `json:"authorId" validate:"required,min=1"`
	Content  string `json:"content" validate:"required,max=2000"`
}

// ListPosts handles GET /posts
func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	params := query.ParseListParams(c)

	q := query.ExcludeDeleted(h.db.Model(&model.Post{}), params.IncludeDeleted)

	if author := c.Query("author"); author != "" {
		q = q.Where("author_id = ?", author)
	}
	if tag := c.Query("tag"); tag != "" {
		q = q.Where("? = ANY(tags)", tag)
	}

	q = query.Search(q, params.Search, "title", "content")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count posts", err)
	}

	pagination := response.CalculatePagination(params.Page, params.Limit, total)

	var posts []model.Post
	if err := params.Paginate(q).
		Preload("Author").
		Preload("Media").
		Preload("Comments").
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch posts", err)
	}

	return response.Paginated(c, posts, pagination)
}

// GetPost handles GET /posts/:id
func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid post id")
	}

	includeDeleted := c.Query("includeDeleted") == "true"

	var post model.Post
	q := query.ExcludeDeleted(h.db, includeDeleted)
	if err := q.Preload("Author").
		Preload("Media").
		Preload("Comments").
		Preload("Comments.Author").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to fetch post", err)
	}

	return response.Success(c, post)
}

// CreatePost handles POST /posts
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	// The author reference must resolve
	var author model.Person
	if err := h.db.First(&author, req.AuthorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Author not found")
		}
		return response.InternalServerError(c, "Failed to verify author", err)
	}

	post := model.Post{
		Title:    validation.SanitizeString(req.Title),
		Content:  req.Content,
		AuthorID: req.AuthorID,
		Tags:     req.Tags,
	}

	if len(req.MediaIDs) > 0 {
		var media []model.Storage
		if err := h.db.Find(&media, req.MediaIDs).Error; err != nil {
			return response.InternalServerError(c, "Failed to resolve media", err)
		}
		post.Media = media
	}

	if err := h.db.Create(&post).Error; err != nil {
		return response.InternalServerError(c, "Failed to create post", err)
	}

	if err := h.db.Preload("Author").Preload("Media").First(&post, post.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch post", err)
	}

	return response.Created(c, "Post created successfully", post)
}

// UpdatePost handles PUT /posts/:id
func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid post id")
	}

	var req UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var post model.Post
	if err := query.ExcludeDeleted(h.db, false).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to fetch post", err)
	}

	if req.Title != nil {
		post.Title = validation.SanitizeString(*req.Title)
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}

	if err := h.db.Save(&post).Error; err != nil {
		return response.InternalServerError(c, "Failed to update post", err)
	}

	if req.MediaIDs != nil {
		var media []model.Storage
		if len(req.MediaIDs) > 0 {
			if err := h.db.Find(&media, req.MediaIDs).Error; err != nil {
				return response.InternalServerError(c, "Failed to resolve media", err)
			}
		}
		if err := h.db.Model(&post).Association("Media").Replace(media); err != nil {
			return response.InternalServerError(c, "Failed to update media", err)
		}
	}

	if err := h.db.Preload("Author").Preload("Media").First(&post, post.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch post", err)
	}

	return response.SuccessWithMessage(c, "Post updated successfully", post)
}

// DeletePost handles DELETE /posts/:id. Posts are soft-deleted; deleting an
// already-deleted post is idempotent.
func (h *PostHandler) DeletePost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid post id")
	}

	var post model.Post
	if err := h.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to fetch post", err)
	}

	if updates := post.SoftDelete(time.Now()); updates != nil {
		if err := h.db.Model(&post).Updates(updates).Error; err != nil {
			return response.InternalServerError(c, "Failed to delete post", err)
		}
	}

	return response.Message(c, "Post deleted successfully")
}

// RestorePost handles POST /posts/:id/restore
func (h *PostHandler) RestorePost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid post id")
	}

	var post model.Post
	if err := h.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to fetch post", err)
	}

	updates := post.Restore()
	if updates == nil {
		return response.BadRequest(c, "Post is not deleted")
	}
	if err := h.db.Model(&post).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to restore post", err)
	}

	if err := h.db.Preload("Author").Preload("Media").First(&post, post.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch post", err)
	}

	return response.SuccessWithMessage(c, "Post restored successfully", post)
}

// LikePost handles POST /posts/:id/like with a single atomic increment
func (h *PostHandler) LikePost(c *fiber.Ctx) error {
	return h.incrementCounter(c, "likes")
}

// DislikePost handles POST /posts/:id/dislike
func (h *PostHandler) DislikePost(c *fiber.Ctx) error {
	return h.incrementCounter(c, "dislikes")
}

func (h *PostHandler) incrementCounter(c *fiber.Ctx, column string) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid post id")
	}

	result := query.ExcludeDeleted(h.db.Model(&model.Post{}), false).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to update post", result.Error)
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Post not found")
	}

	var post model.Post
	if err := h.db.First(&post, id).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch post", err)
	}

	if column == "likes" {
		return response.SuccessWithMessage(c, "Post liked successfully", fiber.Map{"likes": post.Likes})
	}
	return response.SuccessWithMessage(c, "Post disliked successfully", fiber.Map{"dislikes": post.Dislikes})
}

// AddComment handles POST /posts/:id/comments
func (h *PostHandler) AddComment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid post id")
	}

	var req AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var post model.Post
	if err := query.ExcludeDeleted(h.db, false).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Post not found")
		}
		return response.InternalServerError(c, "Failed to fetch post", err)
	}

	var author model.Person
	if err := h.db.First(&author, req.AuthorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Author not found")
		}
		return response.InternalServerError(c, "Failed to verify author", err)
	}

	comment := model.Comment{
		PostID:   post.ID,
		AuthorID: req.AuthorID,
		Content:  validation.SanitizeString(req.Content),
	}

	if err := h.db.Create(&comment).Error; err != nil {
		return response.InternalServerError(c, "Failed to add comment", err)
	}

	if err := h.db.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch comment", err)
	}

	return response.Created(c, "Comment added successfully", comment)
}
