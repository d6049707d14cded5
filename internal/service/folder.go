package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"lectern/internal/blobstore"
	"lectern/internal/config"
	"lectern/internal/domain"
	"lectern/internal/domain/models"
	"lectern/internal/domain/repositories"
	"lectern/internal/domain/services"
	"lectern/internal/tree"
)

// rootFolderLabel is the display name of the synthetic breadcrumb root.
const rootFolderLabel = "Documents"

type folderService struct {
	folders repositories.FolderRepository
	files   repositories.FileRepository
	blobs   blobstore.BlobStore
	tx      repositories.TransactionManager
	logger  *slog.Logger
}

// NewFolderService creates a new folder service.
func NewFolderService(
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	blobs blobstore.BlobStore,
	tx repositories.TransactionManager,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folders: folders,
		files:   files,
		blobs:   blobs,
		tx:      tx,
		logger:  logger,
	}
}

// Create creates a new folder.
func (s *folderService) Create(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	// If a parent is specified it must exist in this tenant.
	if req.ParentID != nil {
		if _, err := s.folders.GetByID(ctx, *req.ParentID, req.TenantID); err != nil {
			return nil, err
		}
	}

	folder := &models.Folder{
		ID:        uuid.NewString(),
		TenantID:  req.TenantID,
		ParentID:  req.ParentID,
		Name:      req.Name,
		CreatedBy: req.ActorID,
		CreatedAt: time.Now(),
	}

	if err := s.folders.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"teacher_id", folder.TenantID,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// Rename renames a folder by (id, tenant).
func (s *folderService) Rename(ctx context.Context, id string, req *services.RenameFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folders.Rename(ctx, id, req.TenantID, req.Name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder renamed", "id", id, "name", req.Name, "teacher_id", req.TenantID)

	return folder, nil
}

// Delete removes a folder, every transitive descendant folder and the files
// parented anywhere in that set, then best-effort deletes the files' blob
// objects. The metadata side runs in one transaction so the collected
// storage paths and the cascaded rows describe the same snapshot; the blob
// side runs after commit and never rolls it back.
func (s *folderService) Delete(ctx context.Context, id, tenantID string) error {
	var paths []string

	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.folders.GetByID(ctx, id, tenantID); err != nil {
			return err
		}

		all, err := s.folders.GetAllByTenant(ctx, tenantID)
		if err != nil {
			return err
		}

		nodes := make([]tree.Node, len(all))
		for i, f := range all {
			nodes[i] = tree.Node{ID: f.ID, ParentID: f.ParentID}
		}
		descendants := tree.NewIndex(nodes).Descendants(id)

		paths, err = s.files.ListStoragePathsByFolders(ctx, descendants, tenantID)
		if err != nil {
			return err
		}

		// Relational cascade removes descendant folders and file rows.
		return s.folders.Delete(ctx, id, tenantID)
	})
	if err != nil {
		return err
	}

	// Best-effort blob cleanup. A failing object store must not resurrect
	// already-deleted metadata, so failures are logged and accepted.
	failed := 0
	for _, path := range paths {
		if err := s.blobs.Delete(ctx, path); err != nil {
			failed++
			s.logger.Warn("object cleanup failed", "storage_path", path, "error", err)
		}
	}

	s.logger.Info("folder deleted",
		"id", id,
		"teacher_id", tenantID,
		"objects", len(paths),
		"cleanup_failures", failed,
	)

	return nil
}

// Contents lists a folder's direct children plus its breadcrumb.
func (s *folderService) Contents(ctx context.Context, folderID *string, tenantID string) (*services.FolderContents, error) {
	if folderID != nil && *folderID == "" {
		folderID = nil
	}

	breadcrumb, err := s.breadcrumb(ctx, folderID, tenantID)
	if err != nil {
		return nil, err
	}

	folders, err := s.folders.ListChildren(ctx, folderID, tenantID)
	if err != nil {
		return nil, err
	}

	files, err := s.files.ListByFolder(ctx, folderID, tenantID)
	if err != nil {
		return nil, err
	}

	return &services.FolderContents{
		Folders:    folders,
		Files:      files,
		Breadcrumb: breadcrumb,
	}, nil
}

// breadcrumb walks the parent chain upward from folderID, O(depth) lookups.
// The synthetic root entry always comes first. For a folder at depth d the
// result has exactly d+1 entries.
func (s *folderService) breadcrumb(ctx context.Context, folderID *string, tenantID string) ([]models.BreadcrumbEntry, error) {
	root := models.BreadcrumbEntry{FolderID: nil, Name: rootFolderLabel}
	if folderID == nil {
		return []models.BreadcrumbEntry{root}, nil
	}

	var chain []models.BreadcrumbEntry
	current := folderID
	for current != nil {
		folder, err := s.folders.GetByID(ctx, *current, tenantID)
		if err != nil {
			return nil, err
		}
		id := folder.ID
		chain = append(chain, models.BreadcrumbEntry{FolderID: &id, Name: folder.Name})
		current = folder.ParentID
	}

	// chain is leaf-to-root; reverse it behind the synthetic root.
	out := make([]models.BreadcrumbEntry, 0, len(chain)+1)
	out = append(out, root)
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, chain[i])
	}
	return out, nil
}

func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.TenantID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
		),
	)
}

func validateName(name string) error {
	return validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxFolderNameLength),
	)
}
