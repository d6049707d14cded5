package services

import (
	"context"

	"lectern/internal/domain/models"
)

// FolderService handles folder business logic within an already-resolved
// tenant scope.
type FolderService interface {
	// Create creates a folder, verifying any parent belongs to the tenant.
	Create(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// Rename renames a folder by (id, tenant).
	Rename(ctx context.Context, id string, req *RenameFolderRequest) (*models.Folder, error)

	// Delete removes a folder, its descendant folders and their files,
	// then best-effort deletes the files' blob objects.
	Delete(ctx context.Context, id, tenantID string) error

	// Contents lists a folder's direct children plus its breadcrumb.
	// A nil folderID addresses the tenant root.
	Contents(ctx context.Context, folderID *string, tenantID string) (*FolderContents, error)
}

// CreateFolderRequest represents a folder creation request.
type CreateFolderRequest struct {
	TeacherID string  `json:"teacher_id,omitempty"` // student scope hint
	Name      string  `json:"name"`
	ParentID  *string `json:"parent_folder_id,omitempty"`
	TenantID  string  `json:"-"`
	ActorID   string  `json:"-"`
}

// RenameFolderRequest represents a folder rename request.
type RenameFolderRequest struct {
	TeacherID string `json:"teacher_id,omitempty"`
	Name      string `json:"name"`
	TenantID  string `json:"-"`
}

// FolderContents is a folder's direct children and its ancestor chain.
type FolderContents struct {
	Folders    []models.Folder          `json:"folders"`
	Files      []models.File            `json:"files"`
	Breadcrumb []models.BreadcrumbEntry `json:"breadcrumb"`
}
