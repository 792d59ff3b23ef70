package filestorage

import "context"

// Storage defines the object-storage collaborator contract. The API stores
// media (participant certificates) through it and persists only the
// returned public URL.
type Storage interface {
	// Upload stores a blob and returns its public URL
	Upload(ctx context.Context, data []byte, contentType string) (string, error)

	// Delete removes a previously uploaded blob by its public URL.
	// It reports whether a blob was actually removed.
	Delete(ctx context.Context, publicURL string) (bool, error)
}
