package item

import (
	"errors"

	"github.com/conectaedu/conecta-api/model"
	"github.com/conectaedu/conecta-api/utils/query"
	"github.com/conectaedu/conecta-api/utils/response"
	"github.com/conectaedu/conecta-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ItemHandler handles item-related requests
type ItemHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewItemHandler creates a new item handler
func NewItemHandler(db *gorm.DB) *ItemHandler {
	return &ItemHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateItemRequest represents the request body for creating an item
type CreateItemRequest struct {
	TagName     string `json:"tagName" validate:"required,min=2,max=100"`
	Type        string `json:"type" validate:"omitempty,oneof=project notebook flashcard presentation book article research podcast video other"`
	Description string `json:"description" validate:"required,max=2000"`
	Repo        string `json:"repo" validate:"omitempty,url"`
	Deploy      string `json:"deploy" validate:"omitempty,url"`
	MediaIDs    []uint `json:"mediaIds"`
	TagIDs      []uint `json:"tagIds"`
	FeedbackIDs []uint `json:"feedbackIds"`
}

// UpdateItemRequest represents a partial update; only submitted fields change
type UpdateItemRequest struct {
	TagName     *string `json:"tagName" validate:"omitempty,min=2,max=100"`
	Type        *string `json:"type" validate:"omitempty,oneof=project notebook flashcard presentation book article research podcast video other"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Repo        *string `json:"repo" validate:"omitempty,url"`
	Deploy      *string `json:"deploy" validate:"omitempty,url"`
	MediaIDs    []uint  `json:"mediaIds"`
	TagIDs      []uint  `json:"tagIds"`
}

// ListItems handles GET /items
func (h *ItemHandler) ListItems(c *fiber.Ctx) error {
	params := query.ParseListParams(c)

	q := h.db.Model(&model.Item{})

	if itemType := c.Query("type"); itemType != "" {
		if !model.IsValidItemType(itemType) {
			return response.BadRequest(c, "Invalid item type")
		}
		q = q.Where("type = ?", itemType)
	}

	q = query.Search(q, params.Search, "tag_name", "description")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count items", err)
	}

	pagination := response.CalculatePagination(params.Page, params.Limit, total)

	var items []model.Item
	if err := params.Paginate(q).
		Preload("Media").
		Preload("Tags").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch items", err)
	}

	return response.Paginated(c, items, pagination)
}

// GetItem handles GET /items/:id
func (h *ItemHandler) GetItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid item id")
	}

	var item model.Item
	if err := h.db.Preload("Media").
		Preload("Tags").
		Preload("Feedbacks").
		First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Item not found")
		}
		return response.InternalServerError(c, "Failed to fetch item", err)
	}

	return response.Success(c, item)
}

// CreateItem handles POST /items
func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	var req CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	itemType := req.Type
	if itemType == "" {
		itemType = "project"
	}

	item := model.Item{
		TagName:     validation.SanitizeString(req.TagName),
		Type:        itemType,
		Description: validation.SanitizeString(req.Description),
		Repo:        req.Repo,
		Deploy:      req.Deploy,
	}

	if len(req.MediaIDs) > 0 {
		if err := h.db.Find(&item.Media, req.MediaIDs).Error; err != nil {
			return response.InternalServerError(c, "Failed to resolve media", err)
		}
	}
	if len(req.TagIDs) > 0 {
		if err := h.db.Find(&item.Tags, req.TagIDs).Error; err != nil {
			return response.InternalServerError(c, "Failed to resolve tags", err)
		}
	}
	if len(req.FeedbackIDs) > 0 {
		if err := h.db.Find(&item.Feedbacks, req.FeedbackIDs).Error; err != nil {
			return response.InternalServerError(c, "Failed to resolve feedbacks", err)
		}
	}

	if err := h.db.Create(&item).Error; err != nil {
		return response.InternalServerError(c, "Failed to create item", err)
	}

	if err := h.db.Preload("Media").Preload("Tags").First(&item, item.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch item", err)
	}

	return response.Created(c, "Item created successfully", item)
}

// UpdateItem handles PUT /items/:id
func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid item id")
	}

	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var item model.Item
	if err := h.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Item not found")
		}
		return response.InternalServerError(c, "Failed to fetch item", err)
	}

	if req.TagName != nil {
		item.TagName = validation.SanitizeString(*req.TagName)
	}
	if req.Type != nil {
		item.Type = *req.Type
	}
	if req.Description != nil {
		item.Description = validation.SanitizeString(*req.Description)
	}
	if req.Repo != nil {
		item.Repo = *req.Repo
	}
	if req.Deploy != nil {
		item.Deploy = *req.Deploy
	}

	if err := h.db.Save(&item).Error; err != nil {
		return response.InternalServerError(c, "Failed to update item", err)
	}

	if req.MediaIDs != nil {
		var media []model.Storage
		if len(req.MediaIDs) > 0 {
			if err := h.db.Find(&media, req.MediaIDs).Error; err != nil {
				return response.InternalServerError(c, "Failed to resolve media", err)
			}
		}
		if err := h.db.Model(&item).Association("Media").Replace(media); err != nil {
			return response.InternalServerError(c, "Failed to update media", err)
		}
	}
	if req.TagIDs != nil {
		var tags []model.Tag
		if len(req.TagIDs) > 0 {
			if err := h.db.Find(&tags, req.TagIDs).Error; err != nil {
				return response.InternalServerError(c, "Failed to resolve tags", err)
			}
		}
		if err := h.db.Model(&item).Association("Tags").Replace(tags); err != nil {
			return response.InternalServerError(c, "Failed to update tags", err)
		}
	}

	if err := h.db.Preload("Media").Preload("Tags").First(&item, item.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch item", err)
	}

	return response.SuccessWithMessage(c, "Item updated successfully", item)
}

// DeleteItem handles DELETE /items/:id
func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid item id")
	}

	result := h.db.Delete(&model.Item{}, id)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete item", result.Error)
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Item not found")
	}

	return response.Message(c, "Item deleted successfully")
}

// LikeItem handles POST /items/:id/like
func (h *ItemHandler) LikeItem(c *fiber.Ctx) error {
	return h.incrementCounter(c, "likes")
}

// DislikeItem handles POST /items/:id/dislike
func (h *ItemHandler) DislikeItem(c *fiber.Ctx) error {
	return h.incrementCounter(c, "dislikes")
}

func (h *ItemHandler) incrementCounter(c *fiber.Ctx, column string) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid item id")
	}

	result := h.db.Model(&model.Item{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to update item", result.Error)
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Item not found")
	}

	var item model.Item
	if err := h.db.First(&item, id).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch item", err)
	}

	if column == "likes" {
		return response.SuccessWithMessage(c, "Item liked successfully", fiber.Map{"likes": item.Likes})
	}
	return response.SuccessWithMessage(c, "Item disliked successfully", fiber.Map{"dislikes": item.Dislikes})
}
