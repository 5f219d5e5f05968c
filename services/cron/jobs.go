package cron

import (
	"context"
	"log"
	"time"

	"github.com/conectaedu/conecta-api/model"
)

// DeletedStorageRetention is how long a soft-deleted upload stays restorable
// before its file and record are purged for good.
const DeletedStorageRetention = 30 * 24 * time.Hour

// SweepRateLimitAttempts drops expired entries from the attempt store
func (m *CronManager) SweepRateLimitAttempts() {
	if m.attemptStore == nil {
		return
	}
	m.attemptStore.Sweep()
}

// PurgeDeletedStorage hard-deletes storage records that were soft-deleted
// longer than the retention period ago, removing their files first.
func (m *CronManager) PurgeDeletedStorage() {
	cutoff := time.Now().Add(-DeletedStorageRetention)

	var expired []model.Storage
	if err := m.db.
		Where("deleted = ? AND deleted_at < ?", true, cutoff).
		Find(&expired).Error; err != nil {
		log.Println("Failed to query expired storage records:", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	ctx := context.Background()
	purged := 0
	for _, record := range expired {
		if m.fileStore != nil {
			if err := m.fileStore.Remove(ctx, record.Filename); err != nil {
				log.Printf("Failed to remove file %s: %v", record.Filename, err)
				continue
			}
		}
		if err := m.db.Delete(&model.Storage{}, record.ID).Error; err != nil {
			log.Printf("Failed to purge storage record %d: %v", record.ID, err)
			continue
		}
		purged++
	}

	log.Printf("Purged %d expired storage record(s)", purged)
}
