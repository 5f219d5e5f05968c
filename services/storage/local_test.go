package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundtrip(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir(), "http://localhost:3003/")
	require.NoError(t, err)

	ctx := context.Background()

	url, err := store.Save(ctx, "photo.png", strings.NewReader("fake image bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3003/storage/photo.png", url)

	reader, err := store.Open(ctx, "photo.png")
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(content))
}

func TestLocalStoreOpenMissing(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir(), "http://localhost:3003")
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "nope.bin")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLocalStoreRemove(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir(), "http://localhost:3003")
	require.NoError(t, err)

	ctx := context.Background()

	_, err = store.Save(ctx, "doc.pdf", strings.NewReader("pdf"), "application/pdf")
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, "doc.pdf"))

	_, err = store.Open(ctx, "doc.pdf")
	assert.ErrorIs(t, err, ErrFileNotFound)

	// Removing a file that is already gone is not an error
	assert.NoError(t, store.Remove(ctx, "doc.pdf"))
}

func TestLocalStoreCreatesDirectory(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewLocalStore(base, "http://localhost:3003")
	require.NoError(t, err)
}

func TestGenerateFilename(t *testing.T) {
	t.Parallel()

	first := GenerateFilename("relatório final.PDF")
	second := GenerateFilename("relatório final.PDF")

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, ".PDF"))
	assert.NotContains(t, first, " ")
}
