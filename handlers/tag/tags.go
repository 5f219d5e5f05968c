package tag

import (
	"errors"
	"strconv"
	"strings"

	"github.com/conectaedu/conecta-api/model"
	"github.com/conectaedu/conecta-api/utils/query"
	"github.com/conectaedu/conecta-api/utils/response"
	"github.com/conectaedu/conecta-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TagHandler handles tag-related requests
type TagHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewTagHandler creates a new tag handler
func NewTagHandler(db *gorm.DB) *TagHandler {
	return &TagHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateTagRequest represents the request body for creating a tag
type CreateTagRequest struct {
	TagName     string `json:"tagName" validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"required,max=500"`
	Color       string `json:"color" validate:"required,hexcolor"`
	MediaID     *uint  `json:"mediaId"`
}

// UpdateTagRequest represents a partial update; only submitted fields change
type UpdateTagRequest struct {
	TagName     *string `json:"tagName" validate:"omitempty,min=2,max=50"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
	MediaID     *uint   `json:"mediaId"`
}

// ListTags handles GET /tags
func (h *TagHandler) ListTags(c *fiber.Ctx) error {
	params := query.ParseListParams(c)

	q := h.db.Model(&model.Tag{})

	if color := c.Query("color"); color != "" {
		q = q.Where("color = ?", color)
	}

	q = query.Search(q, params.Search, "tag_name", "description")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count tags", err)
	}

	pagination := response.CalculatePagination(params.Page, params.Limit, total)

	var tags []model.Tag
	if err := params.Paginate(q).
		Preload("Media").
		Order("created_at DESC").
		Find(&tags).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch tags", err)
	}

	return response.Paginated(c, tags, pagination)
}

// GetTag handles GET /tags/:id
func (h *TagHandler) GetTag(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid tag id")
	}

	var tag model.Tag
	if err := h.db.Preload("Media").First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Tag not found")
		}
		return response.InternalServerError(c, "Failed to fetch tag", err)
	}

	return response.Success(c, tag)
}

// GetByName handles GET /tags/name/:tagName
func (h *TagHandler) GetByName(c *fiber.Ctx) error {
	tagName := c.Params("tagName")

	var tag model.Tag
	if err := h.db.Preload("Media").
		Where("tag_name = ?", tagName).
		First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Tag not found")
		}
		return response.InternalServerError(c, "Failed to fetch tag", err)
	}

	return response.Success(c, tag)
}

// GetPopular handles GET /tags/popular, returning the most recent tags.
// TODO: rank by actual usage once item_tags counts are worth aggregating.
func (h *TagHandler) GetPopular(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > query.MaxLimit {
		limit = query.MaxLimit
	}

	var tags []model.Tag
	if err := h.db.Preload("Media").
		Order("created_at DESC").
		Limit(limit).
		Find(&tags).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch popular tags", err)
	}

	return response.List(c, tags, len(tags))
}

// SearchByColor handles GET /tags/color/:color
func (h *TagHandler) SearchByColor(c *fiber.Ctx) error {
	// The leading # is usually omitted from the path
	color := c.Params("color")
	if !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	if !validation.ValidateHexColor(color) {
		return response.BadRequest(c, "Invalid hex color")
	}

	var tags []model.Tag
	if err := h.db.Preload("Media").
		Where("color = ?", color).
		Order("created_at DESC").
		Find(&tags).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch tags by color", err)
	}

	return response.List(c, tags, len(tags))
}

// CreateTag handles POST /tags
func (h *TagHandler) CreateTag(c *fiber.Ctx) error {
	var req CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	tag := model.Tag{
		TagName:     validation.SanitizeString(req.TagName),
		Description: validation.SanitizeString(req.Description),
		Color:       req.Color,
		MediaID:     req.MediaID,
	}

	if err := h.db.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "Tag with this name already exists")
		}
		return response.InternalServerError(c, "Failed to create tag", err)
	}

	if err := h.db.Preload("Media").First(&tag, tag.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch tag", err)
	}

	return response.Created(c, "Tag created successfully", tag)
}

// UpdateTag handles PUT /tags/:id
func (h *TagHandler) UpdateTag(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid tag id")
	}

	var req UpdateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var tag model.Tag
	if err := h.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Tag not found")
		}
		return response.InternalServerError(c, "Failed to fetch tag", err)
	}

	if req.TagName != nil {
		tag.TagName = validation.SanitizeString(*req.TagName)
	}
	if req.Description != nil {
		tag.Description = validation.SanitizeString(*req.Description)
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}
	if req.MediaID != nil {
		tag.MediaID = req.MediaID
	}

	if err := h.db.Save(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "Tag with this name already exists")
		}
		return response.InternalServerError(c, "Failed to update tag", err)
	}

	if err := h.db.Preload("Media").First(&tag, tag.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch tag", err)
	}

	return response.SuccessWithMessage(c, "Tag updated successfully", tag)
}

// DeleteTag handles DELETE /tags/:id
func (h *TagHandler) DeleteTag(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid tag id")
	}

	result := h.db.Delete(&model.Tag{}, id)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete tag", result.Error)
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Tag not found")
	}

	return response.Message(c, "Tag deleted successfully")
}
