package filestorage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)

	url, err := storage.Upload(context.Background(), []byte("certificate"), "application/pdf")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/"))

	name := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.Equal(t, "certificate", string(data))

	removed, err := storage.Delete(context.Background(), url)
	require.NoError(t, err)
	require.True(t, removed)

	_, err = os.Stat(filepath.Join(dir, name))
	require.True(t, os.IsNotExist(err))
}

func TestLocalStorage_DeleteUnknownURL(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	removed, err := storage.Delete(context.Background(), "/uploads/missing.pdf")
	require.NoError(t, err)
	require.False(t, removed)

	// URLs outside the storage root are ignored, never treated as paths
	removed, err = storage.Delete(context.Background(), "/elsewhere/../../etc/passwd")
	require.NoError(t, err)
	require.False(t, removed)

	removed, err = storage.Delete(context.Background(), "")
	require.NoError(t, err)
	require.False(t, removed)
}

func TestExtensionFor(t *testing.T) {
	require.Equal(t, ".pdf", extensionFor("application/pdf"))
	require.Equal(t, ".bin", extensionFor("not-a-mime-type"))
	require.Equal(t, ".bin", extensionFor(""))
}
