package institution

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

// InstitutionHandler handles institution-related requests
type InstitutionHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewInstitutionHandler creates a new institution handler
func NewInstitutionHandler(db *gorm.DB) *InstitutionHandler {
	return &InstitutionHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateInstitutionRequest represents the request body for creating an institution
type CreateInstitutionRequest struct {
	RazaoSocial  string   `json:"razaoSocial" validate:"required,min=3,max=255"`
	NomeFantasia string   `json:"nomeFantasia" validate:"required,min=2,max=255"`
	Abbr         string   `json:"abbr" validate:"required,min=2,max=20"`
	Email        string   `json:"email" validate:"omitempty,email"`
	Dominio      []string `json:"dominio" validate:"omitempty,dive,oneof=educacao ONG empresa comercio GOV politico industria"`
	Enderecos    []string `json:"enderecos"`
	Telefone     []string `json:"telefone"`
	CNPJ         string   `json:"cnpj" validate:"required,min=14,max=18"`
	MediaIDs     []uint   `json:"mediaIds"`
}

// UpdateInstitutionRequest represents a partial update
type UpdateInstitutionRequest struct {
	RazaoSocial  *string  `json:"razaoSocial" validate:"omitempty,min=3,max=255"`
	NomeFantasia *string  `json:"nomeFantasia" validate:"omitempty,min=2,max=255"`
	Abbr         *string  `json:"abbr" validate:"omitempty,min=2,max=20"`
	Email        *string  `json:"email" validate:"omitempty,email"`
	Dominio      []string `json:"dominio" validate:"omitempty,dive,oneof=educacao ONG empresa comercio GOV politico industria"`
	Enderecos    []string `json:"enderecos"`
	Telefone     []string `json:"telefone"`
	CNPJ         *string  `json:"cnpj" validate:"omitempty,min=14,max=18"`
	MediaIDs     []uint   `json:"mediaIds"`
}

// ListInstitutions handles GET /institutions
func (h *InstitutionHandler) ListInstitutions(c *fiber.Ctx) error {
	params := query.ParseListParams(c)

	q := h.db.Model(&model.Institution{})

	if dominio := c.Query("dominio"); dominio != "" {
		if !model.IsValidDomain(dominio) {
			return response.BadRequest(c, "Invalid domain category")
		}
		q = q.Where("? = ANY(dominio)", dominio)
	}

	q = query.Search(q, params.Search, "razao_social", "nome_fantasia", "abbr", "email")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count institutions", err)
	}

	pagination := response.CalculatePagination(params.Page, params.Limit, total)

	var institutions []model.Institution
	if err := params.Paginate(q).
		Preload("Media").
		Order("created_at DESC").
		Find(&institutions).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch institutions", err)
	}

	return response.Paginated(c, institutions, pagination)
}

// GetInstitution handles GET /institutions/:id
func (h *InstitutionHandler) GetInstitution(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid institution id")
	}

	var institution model.Institution
	if err := h.db.Preload("Media").First(&institution, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Institution not found")
		}
		return response.InternalServerError(c, "Failed to fetch institution", err)
	}

	return response.Success(c, institution)
}

// GetByDomain handles GET /institutions/domain/:domain
func (h *InstitutionHandler) GetByDomain(c *fiber.Ctx) error {
	domain := c.Params("domain")
	if !model.IsValidDomain(domain) {
		return response.BadRequest(c, "Invalid domain category")
	}

	var institutions []model.Institution
	if err := h.db.Preload("Media").
		Where("? = ANY(dominio)", domain).
		Order("created_at DESC").
		Find(&institutions).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch institutions", err)
	}

	return response.List(c, institutions, len(institutions))
}

// CreateInstitution handles POST /institutions
func (h *InstitutionHandler) CreateInstitution(c *fiber.Ctx) error {
	var req CreateInstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	dominio := req.Dominio
	if len(dominio) == 0 {
		dominio = []string{"educacao"}
	}

	institution := model.Institution{
		RazaoSocial:  validation.SanitizeString(req.RazaoSocial),
		NomeFantasia: validation.SanitizeString(req.NomeFantasia),
		Abbr:         validation.SanitizeString(req.Abbr),
		Email:        req.Email,
		Dominio:      pq.StringArray(dominio),
		Enderecos:    pq.StringArray(req.Enderecos),
		Telefone:     pq.StringArray(req.Telefone),
		CNPJ:         validation.SanitizeString(req.CNPJ),
	}

	if len(req.MediaIDs) > 0 {
		if err := h.db.Find(&institution.Media, req.MediaIDs).Error; err != nil {
			return response.InternalServerError(c, "Failed to resolve media", err)
		}
	}

	if err := h.db.Create(&institution).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "Institution with this legal name, email or CNPJ already exists")
		}
		return response.InternalServerError(c, "Failed to create institution", err)
	}

	if err := h.db.Preload("Media").First(&institution, institution.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch institution", err)
	}

	return response.Created(c, "Institution created successfully", institution)
}

// UpdateInstitution handles PUT /institutions/:id
func (h *InstitutionHandler) UpdateInstitution(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid institution id")
	}

	var req UpdateInstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var institution model.Institution
	if err := h.db.First(&institution, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Institution not found")
		}
		return response.InternalServerError(c, "Failed to fetch institution", err)
	}

	if req.RazaoSocial != nil {
		institution.RazaoSocial = validation.SanitizeString(*req.RazaoSocial)
	}
	if req.NomeFantasia != nil {
		institution.NomeFantasia = validation.SanitizeString(*req.NomeFantasia)
	}
	if req.Abbr != nil {
		institution.Abbr = validation.SanitizeString(*req.Abbr)
	}
	if req.Email != nil {
		institution.Email = *req.Email
	}
	if len(req.Dominio) > 0 {
		institution.Dominio = pq.StringArray(req.Dominio)
	}
	if req.Enderecos != nil {
		institution.Enderecos = pq.StringArray(req.Enderecos)
	}
	if req.Telefone != nil {
		institution.Telefone = pq.StringArray(req.Telefone)
	}
	if req.CNPJ != nil {
		institution.CNPJ = validation.SanitizeString(*req.CNPJ)
	}

	if err := h.db.Save(&institution).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "Institution with this legal name, email or CNPJ already exists")
		}
		return response.InternalServerError(c, "Failed to update institution", err)
	}

	if req.MediaIDs != nil {
		var media []model.Storage
		if len(req.MediaIDs) > 0 {
			if err := h.db.Find(&media, req.MediaIDs).Error; err != nil {
				return response.InternalServerError(c, "Failed to resolve media", err)
			}
		}
		if err := h.db.Model(&institution).Association("Media").Replace(media); err != nil {
			return response.InternalServerError(c, "Failed to update media", err)
		}
	}

	if err := h.db.Preload("Media").First(&institution, institution.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch institution", err)
	}

	return response.SuccessWithMessage(c, "Institution updated successfully", institution)
}

// DeleteInstitution handles DELETE /institutions/:id
func (h *InstitutionHandler) DeleteInstitution(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid institution id")
	}

	result := h.db.Delete(&model.Institution{}, id)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete institution", result.Error)
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Institution not found")
	}

	return response.Message(c, "Institution deleted successfully")
}
