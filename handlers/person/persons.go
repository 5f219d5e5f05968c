package person

import (
	"errors"
	"time"

	"github.com/conectaedu/conecta-api/model"
	"github.com/conectaedu/conecta-api/utils/auth"
	"github.com/conectaedu/conecta-api/utils/middleware"
	"github.com/conectaedu/conecta-api/utils/query"
	"github.com/conectaedu/conecta-api/utils/response"
	"github.com/conectaedu/conecta-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InvalidCredentialsMessage is deliberately the same for an unknown
// identifier, a wrong password and an inactive account, so sign-in responses
// leak nothing about which case occurred.
const InvalidCredentialsMessage = "Invalid credentials"

const missingSocialValue = "NÃO INFORMADO"

// PersonHandler handles person-related requests
type PersonHandler struct {
	db         *gorm.DB
	validator  *validation.Validator
	jwtManager *auth.JWTManager
	limiter    *middleware.RateLimiter
}

// NewPersonHandler creates a new person handler
func NewPersonHandler(db *gorm.DB, jwtManager *auth.JWTManager, limiter *middleware.RateLimiter) *PersonHandler {
	return &PersonHandler{
		db:         db,
		validator:  validation.NewValidator(),
		jwtManager: jwtManager,
		limiter:    limiter,
	}
}

// CreatePersonRequest represents the request body for registering a person.
// Only a plaintext password and its confirmation are accepted; a pre-hashed
// credential is never taken from a client.
type CreatePersonRequest struct {
	Username        string             `json:"username" validate:"required,min=3,max=30"`
	FirstName       string             `json:"firstName" validate:"required,max=100"`
	LastName        string             `json:"lastName" validate:"required,max=100"`
	Email           string             `json:"email" validate:"required,email"`
	Password        string             `json:"password" validate:"required,min=8"`
	ConfirmPassword string             `json:"confirmPassword" validate:"required,eqfield=Password"`
	Roles           []string           `json:"roles" validate:"omitempty,dive,oneof=user admin professor mentor orientador monitor aluno pesquisador"`
	Role            string             `json:"role" validate:"omitempty,oneof=user admin professor mentor orientador monitor aluno pesquisador"`
	Bio             string             `json:"bio" validate:"omitempty,max=2000"`
	Hex             string             `json:"hex" validate:"omitempty,hexcolor"`
	Newsletter      *bool              `json:"newsletter"`
	Social          *model.SocialLinks `json:"social"`
	Github          string             `json:"github"`
	Linkedin        string             `json:"linkedin"`
	Twitter         string             `json:"twitter"`
	Instagram       string             `json:"instagram"`
	Facebook        string             `json:"facebook"`
	AvatarID        *uint              `json:"avatarId"`
	CoverID         *uint              `json:"coverId"`
}

// UpdatePersonRequest represents a partial update; only submitted fields change
type UpdatePersonRequest struct {
	Username   *string            `json:"username" validate:"omitempty,min=3,max=30"`
	FirstName  *string            `json:"firstName" validate:"omitempty,max=100"`
	LastName   *string            `json:"lastName" validate:"omitempty,max=100"`
	Email      *string            `json:"email" validate:"omitempty,email"`
	Roles      []string           `json:"roles" validate:"omitempty,dive,oneof=user admin professor mentor orientador monitor aluno pesquisador"`
	Bio        *string            `json:"bio" validate:"omitempty,max=2000"`
	Hex        *string            `json:"hex" validate:"omitempty,hexcolor"`
	Newsletter *bool              `json:"newsletter"`
	Social     *model.SocialLinks `json:"social"`
	AvatarID   *uint              `json:"avatarId"`
	CoverID    *uint              `json:"coverId"`
	IsActive   *bool              `json:"isActive"`
}

// ChangePasswordRequest requires the current password before rotation
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// SignInRequest accepts a username or email as identifier
type SignInRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// fillSocial folds flat social fields into the nested struct and applies
// the placeholder for anything left blank.
func fillSocial(social *model.SocialLinks, req *CreatePersonRequest) model.SocialLinks {
	out := model.SocialLinks{}
	if social != nil {
		out = *social
	}

	pick := func(nested, flat string) string {
		if flat != "" {
			return validation.SanitizeString(flat)
		}
		if nested != "" {
			return nested
		}
		return missingSocialValue
	}

	out.Github = pick(out.Github, req.Github)
	out.Linkedin = pick(out.Linkedin, req.Linkedin)
	out.Twitter = pick(out.Twitter, req.Twitter)
	out.Instagram = pick(out.Instagram, req.Instagram)
	out.Facebook = pick(out.Facebook, req.Facebook)
	return out
}

// ListPersons handles GET /persons
func (h *PersonHandler) ListPersons(c *fiber.Ctx) error {
	params := query.ParseListParams(c)

	q := h.db.Model(&model.Person{})

	if role := c.Query("role"); role != "" {
		q = q.Where("? = ANY(roles)", role)
	}
	if username := c.Query("username"); username != "" {
		q = q.Where("username = ?", username)
	}
	if email := c.Query("email"); email != "" {
		q = q.Where("email = ?", email)
	}
	if isActive := c.Query("isActive"); isActive != "" {
		q = q.Where("is_active = ?", isActive == "true")
	}

	q = query.Search(q, params.Search, "username", "first_name", "last_name", "email")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count persons", err)
	}

	pagination := response.CalculatePagination(params.Page, params.Limit, total)

	var persons []model.Person
	if err := params.Paginate(q).
		Preload("Avatar").
		Preload("Cover").
		Order("created_at DESC").
		Find(&persons).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch persons", err)
	}

	return response.Paginated(c, persons, pagination)
}

// GetPerson handles GET /persons/:id
func (h *PersonHandler) GetPerson(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid person id")
	}

	var person model.Person
	if err := h.db.Preload("Avatar").Preload("Cover").
		First(&person, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Person not found")
		}
		return response.InternalServerError(c, "Failed to fetch person", err)
	}

	return response.Success(c, person)
}

// GetPersonByUsername handles GET /persons/username/:username
func (h *PersonHandler) GetPersonByUsername(c *fiber.Ctx) error {
	username := c.Params("username")

	var person model.Person
	if err := h.db.Preload("Avatar").Preload("Cover").
		Where("username = ?", username).
		First(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Person not found")
		}
		return response.InternalServerError(c, "Failed to fetch person", err)
	}

	return response.Success(c, person)
}

// CreatePerson handles POST /persons
func (h *PersonHandler) CreatePerson(c *fiber.Ctx) error {
	var req CreatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	req.Username = validation.SanitizeString(req.Username)
	req.FirstName = validation.SanitizeString(req.FirstName)
	req.LastName = validation.SanitizeString(req.LastName)
	req.Bio = validation.SanitizeString(req.Bio)

	if ok, msg := validation.ValidateUsername(req.Username); !ok {
		return response.ValidationFailed(c, map[string][]string{"username": {msg}})
	}

	// Hash before building the record; the plaintext is never persisted
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	roles := req.Roles
	if len(roles) == 0 && req.Role != "" {
		roles = []string{req.Role}
	}
	if len(roles) == 0 {
		roles = []string{"user"}
	}

	bio := req.Bio
	if bio == "" {
		bio = "Biografia não disponível"
	}

	hex := req.Hex
	if hex == "" {
		hex = "#3498db"
	}

	newsletter := false
	if req.Newsletter != nil {
		newsletter = *req.Newsletter
	}

	person := model.Person{
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Roles:        roles,
		PasswordHash: hash,
		Hex:          hex,
		Bio:          bio,
		Social:       datatypes.NewJSONType(fillSocial(req.Social, &req)),
		Newsletter:   newsletter,
		AvatarID:     req.AvatarID,
		CoverID:      req.CoverID,
		IsActive:     true,
	}

	if err := h.db.Create(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "Username or email already exists")
		}
		return response.InternalServerError(c, "Failed to create person", err)
	}

	if err := h.db.Preload("Avatar").Preload("Cover").First(&person, person.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch person", err)
	}

	return response.Created(c, "Person created successfully", person)
}

// UpdatePerson handles PUT /persons/:id
func (h *PersonHandler) UpdatePerson(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid person id")
	}

	var req UpdatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var person model.Person
	if err := h.db.First(&person, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Person not found")
		}
		return response.InternalServerError(c, "Failed to fetch person", err)
	}

	if req.Username != nil {
		username := validation.SanitizeString(*req.Username)
		if ok, msg := validation.ValidateUsername(username); !ok {
			return response.ValidationFailed(c, map[string][]string{"username": {msg}})
		}
		person.Username = username
	}
	if req.FirstName != nil {
		person.FirstName = validation.SanitizeString(*req.FirstName)
	}
	if req.LastName != nil {
		person.LastName = validation.SanitizeString(*req.LastName)
	}
	if req.Email != nil {
		person.Email = *req.Email
	}
	if len(req.Roles) > 0 {
		person.Roles = req.Roles
	}
	if req.Bio != nil {
		person.Bio = validation.SanitizeString(*req.Bio)
	}
	if req.Hex != nil {
		person.Hex = *req.Hex
	}
	if req.Newsletter != nil {
		person.Newsletter = *req.Newsletter
	}
	if req.Social != nil {
		person.Social = datatypes.NewJSONType(*req.Social)
	}
	if req.AvatarID != nil {
		person.AvatarID = req.AvatarID
	}
	if req.CoverID != nil {
		person.CoverID = req.CoverID
	}
	if req.IsActive != nil {
		person.IsActive = *req.IsActive
	}

	if err := h.db.Save(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "Username or email already exists")
		}
		return response.InternalServerError(c, "Failed to update person", err)
	}

	if err := h.db.Preload("Avatar").Preload("Cover").First(&person, person.ID).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch person", err)
	}

	return response.SuccessWithMessage(c, "Person updated successfully", person)
}

// DeletePerson handles DELETE /persons/:id
func (h *PersonHandler) DeletePerson(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid person id")
	}

	result := h.db.Delete(&model.Person{}, id)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete person", result.Error)
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Person not found")
	}

	return response.Message(c, "Person deleted successfully")
}

// ChangePassword handles PUT /persons/:id/password
func (h *PersonHandler) ChangePassword(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid person id")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var person model.Person
	if err := h.db.First(&person, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Person not found")
		}
		return response.InternalServerError(c, "Failed to fetch person", err)
	}

	// Current password must verify before anything is mutated
	if err := auth.VerifyPassword(person.PasswordHash, req.CurrentPassword); err != nil {
		return response.BadRequest(c, "Current password is incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.db.Model(&person).Update("password_hash", hash).Error; err != nil {
		return response.InternalServerError(c, "Failed to change password", err)
	}

	return response.Message(c, "Password changed successfully")
}

// SignIn handles POST /persons/sign-in
func (h *PersonHandler) SignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var person model.Person
	err := h.db.
		Where("username = ? OR email = ?", req.Identifier, req.Identifier).
		First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.Unauthorized(c, InvalidCredentialsMessage)
		}
		return response.InternalServerError(c, "Failed to sign in", err)
	}

	if !person.IsActive {
		return response.Unauthorized(c, InvalidCredentialsMessage)
	}

	if err := auth.VerifyPassword(person.PasswordHash, req.Password); err != nil {
		return response.Unauthorized(c, InvalidCredentialsMessage)
	}

	now := time.Now()
	person.LastLogin = &now
	if err := h.db.Model(&person).Update("last_login", now).Error; err != nil {
		return response.InternalServerError(c, "Failed to sign in", err)
	}

	if h.limiter != nil {
		h.limiter.ClearAttempts(c.Context(), c.IP())
	}

	data := fiber.Map{
		"person":    person,
		"lastLogin": person.LastLogin,
	}

	if h.jwtManager != nil {
		token, err := h.jwtManager.GenerateToken(person.ID, person.Username, person.Roles)
		if err != nil {
			return response.InternalServerError(c, "Failed to sign in", err)
		}
		data["token"] = token
	}

	return response.SuccessWithMessage(c, "Signed in successfully", data)
}
