package repositories

import (
	"context"

	"lectern/internal/domain/models"
)

// FileRepository defines data access for file metadata rows. Tenant
// filtering mirrors FolderRepository.
type FileRepository interface {
	// Create persists a committed file row (phase 2 of the upload).
	Create(ctx context.Context, file *models.File) error

	// GetByID retrieves a file by (id, tenant).
	GetByID(ctx context.Context, id, tenantID string) (*models.File, error)

	// Rename updates a file's display name by (id, tenant).
	Rename(ctx context.Context, id, tenantID, name string) (*models.File, error)

	// UpdateDownloadURL refreshes the cached signed URL on a row.
	UpdateDownloadURL(ctx context.Context, file *models.File) error

	// Delete removes a file row by (id, tenant).
	Delete(ctx context.Context, id, tenantID string) error

	// ListByFolder lists files directly in a folder, name-ordered.
	// A nil folderID lists root-level files.
	ListByFolder(ctx context.Context, folderID *string, tenantID string) ([]models.File, error)

	// ListStoragePathsByFolders returns the storage paths of every file
	// parented under any of the given folders, for blob cleanup after a
	// cascading delete.
	ListStoragePathsByFolders(ctx context.Context, folderIDs []string, tenantID string) ([]string, error)
}
