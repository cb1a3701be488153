package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school_records_backend/internal/config"
	"school_records_backend/internal/util"
)

func TestNewStorageService(t *testing.T) {
	t.Run("LocalProvider", func(t *testing.T) {
		cfg := &config.Config{Storage: config.StorageConfig{
			Type:      util.StorageLocal,
			LocalPath: t.TempDir(),
		}}
		svc := NewStorageService(cfg)
		_, ok := svc.Provider.(*LocalStorageProvider)
		assert.True(t, ok)
	})

	t.Run("MinioInitFailureFallsBackToLocal", func(t *testing.T) {
		cfg := &config.Config{Storage: config.StorageConfig{
			Type:          util.StorageMinio,
			MinioEndpoint: "not a valid endpoint",
			LocalPath:     t.TempDir(),
		}}
		svc := NewStorageService(cfg)
		_, ok := svc.Provider.(*LocalStorageProvider)
		assert.True(t, ok)
	})
}

func TestLocalStorageProviderUpload(t *testing.T) {
	dir := t.TempDir()
	p := &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: dir}}

	url, err := p.Upload(context.Background(), "materials/notes.txt", strings.NewReader("photosynthesis"), 14, "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/materials/notes.txt", url)

	data, err := os.ReadFile(filepath.Join(dir, "materials", "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "photosynthesis", string(data))

	require.NoError(t, p.Delete(context.Background(), "materials/notes.txt"))
}
