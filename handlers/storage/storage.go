package storage

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/conectaedu/conecta-api/model"
	filestore "github.com/conectaedu/conecta-api/services/storage"
	"github.com/conectaedu/conecta-api/utils/query"
	"github.com/conectaedu/conecta-api/utils/response"
	"github.com/conectaedu/conecta-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StorageHandler handles file metadata and upload/download requests
type StorageHandler struct {
	db        *gorm.DB
	files     filestore.FileStore
	validator *validation.Validator
}

// NewStorageHandler creates a new storage handler
func NewStorageHandler(db *gorm.DB, files filestore.FileStore) *StorageHandler {
	return &StorageHandler{
		db:        db,
		files:     files,
		validator: validation.NewValidator(),
	}
}

// UpdateStorageRequest allows renaming the original name of an upload
type UpdateStorageRequest struct {
	OriginalName *string `json:"originalName" validate:"omitempty,min=1,max=255"`
}

// ListFiles handles GET /storage
func (h *StorageHandler) ListFiles(c *fiber.Ctx) error {
	params := query.ParseListParams(c)

	q := query.ExcludeDeleted(h.db.Model(&model.Storage{}), params.IncludeDeleted)

	if fileType := c.Query("fileType"); fileType != "" {
		q = q.Where("mimetype ILIKE ?", fileType+"%")
	}

	q = query.Search(q, params.Search, "filename", "original_name", "mimetype")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count files", err)
	}

	pagination := response.CalculatePagination(params.Page, params.Limit, total)

	var files []model.Storage
	if err := params.Paginate(q).
		Order("created_at DESC").
		Find(&files).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch files", err)
	}

	return response.Paginated(c, files, pagination)
}

// GetFile handles GET /storage/:id and GET /uploads/:id
func (h *StorageHandler) GetFile(c *fiber.Ctx) error {
	record, err := h.findRecord(c, c.Query("includeDeleted") == "true")
	if err != nil {
		return err
	}
	return response.Success(c, record)
}

// UpdateFile handles PUT /storage/:id
func (h *StorageHandler) UpdateFile(c *fiber.Ctx) error {
	record, err := h.findRecord(c, false)
	if err != nil {
		return err
	}

	var req UpdateStorageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	if req.OriginalName != nil {
		record.OriginalName = validation.SanitizeString(*req.OriginalName)
	}

	if err := h.db.Save(record).Error; err != nil {
		return response.InternalServerError(c, "Failed to update file", err)
	}

	return response.SuccessWithMessage(c, "File updated successfully", record)
}

// DeleteFile handles DELETE /storage/:id and DELETE /uploads/:id.
// Records are soft-deleted so they stay restorable; the file itself is
// purged later by the retention job.
func (h *StorageHandler) DeleteFile(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid file id")
	}

	var record model.Storage
	if err := h.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "File not found")
		}
		return response.InternalServerError(c, "Failed to fetch file", err)
	}

	if updates := record.SoftDelete(time.Now()); updates != nil {
		if err := h.db.Model(&record).Updates(updates).Error; err != nil {
			return response.InternalServerError(c, "Failed to delete file", err)
		}
	}

	return response.Message(c, "File deleted successfully")
}

// RestoreFile handles POST /storage/:id/restore
func (h *StorageHandler) RestoreFile(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid file id")
	}

	var record model.Storage
	if err := h.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "File not found")
		}
		return response.InternalServerError(c, "Failed to fetch file", err)
	}

	updates := record.Restore()
	if updates == nil {
		return response.BadRequest(c, "File is not deleted")
	}
	if err := h.db.Model(&record).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to restore file", err)
	}

	return response.SuccessWithMessage(c, "File restored successfully", record)
}

// Upload handles POST /storage/upload and POST /uploads
func (h *StorageHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "No file was uploaded")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file", err)
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	filename := filestore.GenerateFilename(fileHeader.Filename)

	url, err := h.files.Save(c.Context(), filename, src, contentType)
	if err != nil {
		return response.InternalServerError(c, "Failed to store file", err)
	}

	record := model.Storage{
		URL:          url,
		Filename:     filename,
		OriginalName: fileHeader.Filename,
		Mimetype:     contentType,
		Size:         fileHeader.Size,
		UploadedAt:   time.Now(),
	}

	if err := h.db.Create(&record).Error; err != nil {
		// Remove the stored file so a failed insert leaves no orphan
		_ = h.files.Remove(c.Context(), filename)
		return response.InternalServerError(c, "Failed to save file record", err)
	}

	return response.Created(c, "File uploaded successfully", record)
}

// Download handles GET /storage/:id/download and GET /uploads/:id/download
func (h *StorageHandler) Download(c *fiber.Ctx) error {
	return h.sendFile(c, "attachment")
}

// View handles GET /uploads/:id/view, serving the file inline
func (h *StorageHandler) View(c *fiber.Ctx) error {
	return h.sendFile(c, "inline")
}

func (h *StorageHandler) sendFile(c *fiber.Ctx, disposition string) error {
	record, err := h.findRecord(c, c.Query("includeDeleted") == "true")
	if err != nil {
		return err
	}

	reader, err := h.files.Open(c.Context(), record.Filename)
	if err != nil {
		if errors.Is(err, filestore.ErrFileNotFound) {
			return response.NotFound(c, "Stored file not found")
		}
		return response.InternalServerError(c, "Failed to open file", err)
	}

	name := record.OriginalName
	if name == "" {
		name = record.Filename
	}

	mimetype := record.Mimetype
	if mimetype == "" {
		mimetype = "application/octet-stream"
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("%s; filename=%q", disposition, name))
	c.Set(fiber.HeaderContentType, mimetype)

	return c.SendStream(reader, streamSize(record.Size))
}

// streamSize narrows a recorded byte size for SendStream. Unknown sizes and
// sizes that do not fit an int on 32-bit platforms yield -1, which streams
// the body chunked instead of with a Content-Length.
func streamSize(n int64) int {
	if n <= 0 || n > math.MaxInt32 {
		return -1
	}
	return int(n)
}

func (h *StorageHandler) findRecord(c *fiber.Ctx, includeDeleted bool) (*model.Storage, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, response.BadRequest(c, "Invalid file id")
	}

	var record model.Storage
	q := query.ExcludeDeleted(h.db, includeDeleted)
	if err := q.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFound(c, "File not found")
		}
		return nil, response.InternalServerError(c, "Failed to fetch file", err)
	}

	return &record, nil
}
