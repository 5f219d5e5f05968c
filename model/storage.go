package model

import "time"

// Storage represents an uploaded file's metadata. The bytes themselves live in
// a FileStore backend; records are soft-deleted so uploads can be restored.
type Storage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	URL          string    `gorm:"not null" json:"url"`
	Filename     string    `gorm:"not null" json:"filename"`
	OriginalName string    `json:"originalName"`
	Mimetype     string    `json:"mimetype"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploadedAt"`

	Deleted   bool       `gorm:"not null;default:false;index" json:"deleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// SoftDelete marks the record deleted at the given time and returns the column
// updates to persist, or nil when it is already deleted.
func (s *Storage) SoftDelete(now time.Time) map[string]interface{} {
	if s.Deleted {
		return nil
	}
	s.Deleted = true
	s.DeletedAt = &now
	return map[string]interface{}{"deleted": true, "deleted_at": now}
}

// Restore clears the deleted state and returns the column updates to persist,
// or nil when the record is not deleted.
func (s *Storage) Restore() map[string]interface{} {
	if !s.Deleted {
		return nil
	}
	s.Deleted = false
	s.DeletedAt = nil
	return map[string]interface{}{"deleted": false, "deleted_at": nil}
}
