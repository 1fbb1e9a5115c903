package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTemp(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	storage := NewStorageService(root)
	require.NoError(t, storage.EnsureUploadDir())

	first, cleanupFirst, err := storage.SaveTemp("../../etc/Resume.PDF", []byte("one"))
	require.NoError(t, err)
	second, cleanupSecond, err := storage.SaveTemp("Resume.PDF", []byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, filepath.Dir(first), filepath.Dir(second))
	assert.Equal(t, ".pdf", filepath.Ext(first))
	assert.Equal(t, root, filepath.Dir(filepath.Dir(first)))

	content, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "one", string(content))

	// pages rendered next to the upload go away with it
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(first), "page-1.png"), []byte("png"), 0600))

	cleanupFirst()
	_, err = os.Stat(filepath.Dir(first))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(second)
	assert.NoError(t, err)
	cleanupSecond()
}
