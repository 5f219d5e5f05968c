package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostSoftDelete(t *testing.T) {
	t.Parallel()

	t.Run("marks an active post deleted", func(t *testing.T) {
		t.Parallel()
		post := Post{ID: 1}
		now := time.Now()

		updates := post.SoftDelete(now)
		require.NotNil(t, updates)
		assert.Equal(t, true, updates["deleted"])
		assert.Equal(t, now, updates["deleted_at"])
		assert.True(t, post.Deleted)
		require.NotNil(t, post.DeletedAt)
		assert.Equal(t, now, *post.DeletedAt)
	})

	t.Run("second delete is idempotent", func(t *testing.T) {
		t.Parallel()
		post := Post{ID: 1}
		first := time.Now()
		require.NotNil(t, post.SoftDelete(first))

		updates := post.SoftDelete(first.Add(time.Hour))
		assert.Nil(t, updates)

		// The original deletion timestamp survives
		require.NotNil(t, post.DeletedAt)
		assert.Equal(t, first, *post.DeletedAt)
	})
}

func TestPostRestore(t *testing.T) {
	t.Parallel()

	t.Run("restores a deleted post", func(t *testing.T) {
		t.Parallel()
		now := time.Now()
		post := Post{ID: 1, Deleted: true, DeletedAt: &now}

		updates := post.Restore()
		require.NotNil(t, updates)
		assert.Equal(t, false, updates["deleted"])
		assert.Nil(t, updates["deleted_at"])
		assert.False(t, post.Deleted)
		assert.Nil(t, post.DeletedAt)
	})

	t.Run("restoring an active post is rejected", func(t *testing.T) {
		t.Parallel()
		post := Post{ID: 1}

		assert.Nil(t, post.Restore())
		assert.False(t, post.Deleted)
		assert.Nil(t, post.DeletedAt)
	})
}

func TestStorageSoftDeleteAndRestore(t *testing.T) {
	t.Parallel()

	t.Run("delete then restore round-trips", func(t *testing.T) {
		t.Parallel()
		record := Storage{ID: 7, Filename: "report.pdf"}
		now := time.Now()

		require.NotNil(t, record.SoftDelete(now))
		assert.True(t, record.Deleted)

		updates := record.Restore()
		require.NotNil(t, updates)
		assert.False(t, record.Deleted)
		assert.Nil(t, record.DeletedAt)
	})

	t.Run("second delete is idempotent", func(t *testing.T) {
		t.Parallel()
		record := Storage{ID: 7}
		require.NotNil(t, record.SoftDelete(time.Now()))
		assert.Nil(t, record.SoftDelete(time.Now()))
	})

	t.Run("restoring an active record is rejected", func(t *testing.T) {
		t.Parallel()
		record := Storage{ID: 7}
		assert.Nil(t, record.Restore())
	})
}
