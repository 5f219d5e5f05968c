package assignature

import (
	"errors"

	"github.com/conectaedu/conecta-api/model"
	"github.com/conectaedu/conecta-api/utils/query"
	"github.com/conectaedu/conecta-api/utils/response"
	"github.com/conectaedu/conecta-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// AssignatureHandler handles assignature-related requests
type AssignatureHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewAssignatureHandler creates a new assignature handler
func NewAssignatureHandler(db *gorm.DB) *AssignatureHandler {
	return &AssignatureHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateAssignatureRequest represents the request body for creating an
// assignature. Type values contain spaces so membership is checked against
// the model's closed set rather than a struct tag.
type CreateAssignatureRequest struct {
	TagName        string  `json:"tagName" validate:"required,min=2,max=100"`
	Type           string  `json:"type"`
	Description    string  `json:"description" validate:"required,max=2000"`
	MediaIDs       []uint  `json:"mediaIds"`
	ModuleIDs      []int64 `json:"moduleIds"`
	TaskIDs        []int64 `json:"taskIds"`
	ClassroomIDs   []int64 `json:"classroomIds"`
	InstitutionIDs []uint  `json:"institutionIds"`
	TagIDs         []uint  `json:"tagIds"`
	FeedbackIDs    []uint  `json:"feedbackIds"`
}

// UpdateAssignatureRequest represents a partial update
type UpdateAssignatureRequest struct {
	TagName        *string `json:"tagName" validate:"omitempty,min=2,max=100"`
	Type           *string `json:"type"`
	Description    *string `json:"description" validate:"omitempty,max=2000"`
	MediaIDs       []uint  `json:"mediaIds"`
	ModuleIDs      []int64 `json:"moduleIds"`
	TaskIDs        []int64 `json:"taskIds"`
	ClassroomIDs   []int64 `json:"classroomIds"`
	InstitutionIDs []uint  `json:"institutionIds"`
	TagIDs         []uint  `json:"tagIds"`
}

// ListAssignatures handles GET /assignatures
func (h *AssignatureHandler) ListAssignatures(c *fiber.Ctx) error {
	params := query.ParseListParams(c)

	q := h.db.Model(&model.Assignature{})

	if aType := c.Query("type"); aType != "" {
		if !model.IsValidAssignatureType(aType) {
			return response.BadRequest(c, "Invalid assignature type")
		}
		q = q.Where("type = ?", aType)
	}
	if institution := c.Query("institution"); institution != "" {
		q = q.Joins("JOIN assignature_institutions ai ON ai.assignature_id = assignatures.id").
			Where("ai.institution_id = ?", institution)
	}

	q = query.Search(q, params.Search, "tag_name", "description")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count assignatures", err)
	}

	pagination := response.CalculatePagination(params.Page, params.Limit, total)

	var assignatures []model.Assignature
	if err := params.Paginate(q).
		Preload("Media").
		Preload("Institutions").
		Preload("Tags").
		Order("created_at DESC").
		Find(&assignatures).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch assignatures", err)
	}

	return response.Paginated(c, assignatures, pagination)
}

// GetAssignature handles GET /assignatures/:id
func (h *AssignatureHandler) GetAssignature(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid assignature id")
	}

	var assignature model.Assignature
	if err := h.db.Preload("Media").
		Preload("Institutions").
		Preload("Tags").
		Preload("Feedbacks").
		First(&assignature, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Assignature not found")
		}
		return response.InternalServerError(c, "Failed to fetch assignature", err)
	}

	return response.Success(c, assignature)
}

// CreateAssignature handles POST /assignatures
func (h *AssignatureHandler) CreateAssignature(c *fiber.Ctx) error {
	var req CreateAssignatureRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	aType := req.Type
	if aType == "" {
		aType = "superior"
	}
	if !model.IsValidAssignatureType(aType) {
		return response.ValidationFailed(c, map[string][]string{"type": {"Type is not a valid assignature type"}})
	}

	assignature := model.Assignature{
		TagName:      validation.SanitizeString(req.TagName),
		Type:         aType,
		Description:  validation.SanitizeString(req.Description),
		ModuleIDs:    pq.Int64Array(req.ModuleIDs),
		TaskIDs:      pq.Int64Array(req.TaskIDs),
		ClassroomIDs: pq.Int64Array(req.ClassroomIDs),
	}

	if len(req.MediaIDs) > 0 {
		if err := h.db.Find(&assignature.Media, req.MediaIDs).Error; err != nil {
			return response.InternalServerError(c, "Failed to resolve media", err)
		}
	}
	if len(req.InstitutionIDs) > 0 {
		if err := h.db.Find(&assignature.Institutions, req.InstitutionIDs).Error; err != nil {
			return response.InternalServerError(c, "Failed to resolve institutions", err)
		}
	}
	if len(req.TagIDs) > 0 {
		if err := h.db.Find(&assignature.Tags, req.TagIDs).Error; err != nil {
			return response.InternalServerError(c, "Failed to resolve tags", err)
		}
	}
	if len(req.FeedbackIDs) > 0 {
		if err := h.db.Find(&assignature.Feedbacks, req.FeedbackIDs).Error; err != nil {
			return response.InternalServerError(c, "Failed to resolve feedbacks", err)
		}
	}

	if err := h.db.Create(&assignature).Error; err != nil {
		return response.InternalServerError(c, "Failed to create assignature", err)
	}

	if err := h.db.Preload("Media").Preload("Institutions").Preload("Tags").First(&assignature, assignature.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch assignature", err)
	}

	return response.Created(c, "Assignature created successfully", assignature)
}

// UpdateAssignature handles PUT /assignatures/:id
func (h *AssignatureHandler) UpdateAssignature(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid assignature id")
	}

	var req UpdateAssignatureRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var assignature model.Assignature
	if err := h.db.First(&assignature, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Assignature not found")
		}
		return response.InternalServerError(c, "Failed to fetch assignature", err)
	}

	if req.TagName != nil {
		assignature.TagName = validation.SanitizeString(*req.TagName)
	}
	if req.Type != nil {
		if !model.IsValidAssignatureType(*req.Type) {
			return response.ValidationFailed(c, map[string][]string{"type": {"Type is not a valid assignature type"}})
		}
		assignature.Type = *req.Type
	}
	if req.Description != nil {
		assignature.Description = validation.SanitizeString(*req.Description)
	}
	if req.ModuleIDs != nil {
		assignature.ModuleIDs = pq.Int64Array(req.ModuleIDs)
	}
	if req.TaskIDs != nil {
		assignature.TaskIDs = pq.Int64Array(req.TaskIDs)
	}
	if req.ClassroomIDs != nil {
		assignature.ClassroomIDs = pq.Int64Array(req.ClassroomIDs)
	}

	if err := h.db.Save(&assignature).Error; err != nil {
		return response.InternalServerError(c, "Failed to update assignature", err)
	}

	if req.MediaIDs != nil {
		var media []model.Storage
		if len(req.MediaIDs) > 0 {
			if err := h.db.Find(&media, req.MediaIDs).Error; err != nil {
				return response.InternalServerError(c, "Failed to resolve media", err)
			}
		}
		if err := h.db.Model(&assignature).Association("Media").Replace(media); err != nil {
			return response.InternalServerError(c, "Failed to update media", err)
		}
	}
	if req.InstitutionIDs != nil {
		var institutions []model.Institution
		if len(req.InstitutionIDs) > 0 {
			if err := h.db.Find(&institutions, req.InstitutionIDs).Error; err != nil {
				return response.InternalServerError(c, "Failed to resolve institutions", err)
			}
		}
		if err := h.db.Model(&assignature).Association("Institutions").Replace(institutions); err != nil {
			return response.InternalServerError(c, "Failed to update institutions", err)
		}
	}
	if req.TagIDs != nil {
		var tags []model.Tag
		if len(req.TagIDs) > 0 {
			if err := h.db.Find(&tags, req.TagIDs).Error; err != nil {
				return response.InternalServerError(c, "Failed to resolve tags", err)
			}
		}
		if err := h.db.Model(&assignature).Association("Tags").Replace(tags); err != nil {
			return response.InternalServerError(c, "Failed to update tags", err)
		}
	}

	if err := h.db.Preload("Media").Preload("Institutions").Preload("Tags").First(&assignature, assignature.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch assignature", err)
	}

	return response.SuccessWithMessage(c, "Assignature updated successfully", assignature)
}

// DeleteAssignature handles DELETE /assignatures/:id
func (h *AssignatureHandler) DeleteAssignature(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid assignature id")
	}

	result := h.db.Delete(&model.Assignature{}, id)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete assignature", result.Error)
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Assignature not found")
	}

	return response.Message(c, "Assignature deleted successfully")
}

// LikeAssignature handles POST /assignatures/:id/like
func (h *AssignatureHandler) LikeAssignature(c *fiber.Ctx) error {
	return h.incrementCounter(c, "likes")
}

// DislikeAssignature handles POST /assignatures/:id/dislike
func (h *AssignatureHandler) DislikeAssignature(c *fiber.Ctx) error {
	return h.incrementCounter(c, "dislikes")
}

func (h *AssignatureHandler) incrementCounter(c *fiber.Ctx, column string) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid assignature id")
	}

	result := h.db.Model(&model.Assignature{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to update assignature", result.Error)
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Assignature not found")
	}

	var assignature model.Assignature
	if err := h.db.First(&assignature, id).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch assignature", err)
	}

	if column == "likes" {
		return response.SuccessWithMessage(c, "Assignature liked successfully", fiber.Map{"likes": assignature.Likes})
	}
	return response.SuccessWithMessage(c, "Assignature disliked successfully", fiber.Map{"dislikes": assignature.Dislikes})
}
