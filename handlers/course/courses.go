package course

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

// CourseHandler handles course-related requests
type CourseHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateCourseRequest represents the request body for creating a course
type CreateCourseRequest struct {
	Curso     string   `json:"curso" validate:"required,min=3,max=255"`
	Anos      int      `json:"anos" validate:"required,min=1,max=10"`
	Abbr      string   `json:"abbr" validate:"required,min=2,max=20"`
	Variacoes []string `json:"variacoes" validate:"omitempty,dive,min=1,max=255"`
}

// UpdateCourseRequest represents a partial update; only submitted fields change
type UpdateCourseRequest struct {
	Curso     *string  `json:"curso" validate:"omitempty,min=3,max=255"`
	Anos      *int     `json:"anos" validate:"omitempty,min=1,max=10"`
	Abbr      *string  `json:"abbr" validate:"omitempty,min=2,max=20"`
	Variacoes []string `json:"variacoes" validate:"omitempty,dive,min=1,max=255"`
}

// VariationRequest carries a single name variation
type VariationRequest struct {
	Variacao string `json:"variacao" validate:"required,min=1,max=255"`
}

// NormalizeAbbr upper-cases a course abbreviation so lookups are
// case-insensitive against the stored value.
func NormalizeAbbr(abbr string) string {
	return strings.ToUpper(strings.TrimSpace(abbr))
}

// ListCourses handles GET /courses; courses sort alphabetically by name
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	params := query.ParseListParams(c)

	q := h.db.Model(&model.Course{})

	if anos := c.Query("anos"); anos != "" {
		q = q.Where("anos = ?", anos)
	}
	if abbr := c.Query("abbr"); abbr != "" {
		q = q.Where("abbr = ?", NormalizeAbbr(abbr))
	}

	q = query.Search(q, params.Search, "curso", "abbr", "array_to_string(variacoes, ' ')")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count courses", err)
	}

	pagination := response.CalculatePagination(params.Page, params.Limit, total)

	var courses []model.Course
	if err := params.Paginate(q).
		Order("curso ASC").
		Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses", err)
	}

	return response.Paginated(c, courses, pagination)
}

// GetCourse handles GET /courses/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid course id")
	}

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course", err)
	}

	return response.Success(c, course)
}

// GetByAbbr handles GET /courses/abbr/:abbr
func (h *CourseHandler) GetByAbbr(c *fiber.Ctx) error {
	abbr := NormalizeAbbr(c.Params("abbr"))

	var course model.Course
	if err := h.db.Where("abbr = ?", abbr).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course", err)
	}

	return response.Success(c, course)
}

// GetByDuration handles GET /courses/duration/:anos
func (h *CourseHandler) GetByDuration(c *fiber.Ctx) error {
	anos, err := strconv.Atoi(c.Params("anos"))
	if err != nil || anos < 1 || anos > 10 {
		return response.BadRequest(c, "Duration must be a number between 1 and 10")
	}

	var courses []model.Course
	if err := h.db.Where("anos = ?", anos).
		Order("curso ASC").
		Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses", err)
	}

	return response.List(c, courses, len(courses))
}

// CreateCourse handles POST /courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	course := model.Course{
		Curso:     validation.SanitizeString(req.Curso),
		Anos:      req.Anos,
		Abbr:      NormalizeAbbr(req.Abbr),
		Variacoes: req.Variacoes,
	}

	if err := h.db.Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "Course with this name already exists")
		}
		return response.InternalServerError(c, "Failed to create course", err)
	}

	return response.Created(c, "Course created successfully", course)
}

// UpdateCourse handles PUT /courses/:id
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid course id")
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course", err)
	}

	if req.Curso != nil {
		course.Curso = validation.SanitizeString(*req.Curso)
	}
	if req.Anos != nil {
		course.Anos = *req.Anos
	}
	if req.Abbr != nil {
		course.Abbr = NormalizeAbbr(*req.Abbr)
	}
	if req.Variacoes != nil {
		course.Variacoes = req.Variacoes
	}

	if err := h.db.Save(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "Course with this name already exists")
		}
		return response.InternalServerError(c, "Failed to update course", err)
	}

	return response.SuccessWithMessage(c, "Course updated successfully", course)
}

// DeleteCourse handles DELETE /courses/:id
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid course id")
	}

	result := h.db.Delete(&model.Course{}, id)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete course", result.Error)
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Course not found")
	}

	return response.Message(c, "Course deleted successfully")
}

// AddVariation handles POST /courses/:id/variations with set semantics
func (h *CourseHandler) AddVariation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid course id")
	}

	var req VariationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course", err)
	}

	variation := validation.SanitizeString(req.Variacao)
	for _, v := range course.Variacoes {
		if v == variation {
			return response.SuccessWithMessage(c, "Variation already present", course)
		}
	}

	course.Variacoes = append(course.Variacoes, variation)
	if err := h.db.Model(&course).Update("variacoes", course.Variacoes).Error; err != nil {
		return response.InternalServerError(c, "Failed to add variation", err)
	}

	return response.SuccessWithMessage(c, "Variation added successfully", course)
}

// RemoveVariation handles DELETE /courses/:id/variations
func (h *CourseHandler) RemoveVariation(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid course id")
	}

	var req VariationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course", err)
	}

	variation := validation.SanitizeString(req.Variacao)
	kept := course.Variacoes[:0]
	found := false
	for _, v := range course.Variacoes {
		if v == variation {
			found = true
			continue
		}
		kept = append(kept, v)
	}
	if !found {
		return response.NotFound(c, "Variation not found")
	}

	course.Variacoes = kept
	if err := h.db.Model(&course).Update("variacoes", course.Variacoes).Error; err != nil {
		return response.InternalServerError(c, "Failed to remove variation", err)
	}

	return response.SuccessWithMessage(c, "Variation removed successfully", course)
}
