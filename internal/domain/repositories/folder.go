package repositories

import (
	"context"

	"lectern/internal/domain/models"
)

// FolderRepository defines data access for folder nodes. Every lookup and
// mutation is filtered by tenant ID so a guessed ID from another tenant
// behaves exactly like a missing row.
type FolderRepository interface {
	// Create persists a new folder with a pre-minted ID.
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by (id, tenant).
	GetByID(ctx context.Context, id, tenantID string) (*models.Folder, error)

	// Rename updates a folder's name by (id, tenant).
	Rename(ctx context.Context, id, tenantID, name string) (*models.Folder, error)

	// Delete removes a folder row. The relational layer cascades the
	// delete to descendant folders and their files.
	Delete(ctx context.Context, id, tenantID string) error

	// ListChildren lists immediate child folders, name-ordered.
	// A nil folderID lists root-level folders.
	ListChildren(ctx context.Context, folderID *string, tenantID string) ([]models.Folder, error)

	// GetAllByTenant retrieves every folder in a tenant as a flat list,
	// the adjacency input for descendant computation.
	GetAllByTenant(ctx context.Context, tenantID string) ([]models.Folder, error)
}
