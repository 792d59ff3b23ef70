package filestorage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/shecodes/community-api/internal/pkg/logger"
)

// LocalStorage stores blobs on the local filesystem and serves them under a
// base URL. It stands in for the hosted object-storage service in
// development and tests.
type LocalStorage struct {
	basePath string // root directory where blobs are written
	baseURL  string // public URL prefix mapped to basePath
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload writes the blob under a generated name and returns its public URL.
func (ls *LocalStorage) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	name := uuid.New().String() + extensionFor(contentType)
	dstPath := filepath.Join(ls.basePath, name)

	if err := os.WriteFile(dstPath, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write blob")
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	publicURL := ls.baseURL + "/" + name
	logger.Info().Str("saved_as", name).Str("url", publicURL).Msg("Blob stored")
	return publicURL, nil
}

// Delete removes a blob by its public URL. Unknown URLs are not an error;
// the bool result reports whether anything was removed.
func (ls *LocalStorage) Delete(ctx context.Context, publicURL string) (bool, error) {
	if publicURL == "" {
		return false, nil
	}

	name := strings.TrimPrefix(publicURL, ls.baseURL+"/")
	if name == publicURL || strings.Contains(name, "/") {
		// URL does not belong to this storage root
		return false, nil
	}

	dstPath := filepath.Join(ls.basePath, name)
	if err := os.Remove(dstPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete blob: %w", err)
	}

	return true, nil
}

// extensionFor maps a MIME type to a file extension, defaulting to .bin
func extensionFor(contentType string) string {
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ".bin"
	}
	return exts[0]
}
