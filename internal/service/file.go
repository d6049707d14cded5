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
)

// urlExpiryMargin keeps us from serving a cached URL that would expire
// mid-download.
const urlExpiryMargin = time.Minute

type fileService struct {
	files       repositories.FileRepository
	folders     repositories.FolderRepository
	blobs       blobstore.BlobStore
	policy      *config.UploadPolicy
	uploadTTL   time.Duration
	downloadTTL time.Duration
	logger      *slog.Logger
}

// NewFileService creates a new file service.
func NewFileService(
	files repositories.FileRepository,
	folders repositories.FolderRepository,
	blobs blobstore.BlobStore,
	policy *config.UploadPolicy,
	uploadTTL, downloadTTL time.Duration,
	logger *slog.Logger,
) services.FileService {
	return &fileService{
		files:       files,
		folders:     folders,
		blobs:       blobs,
		policy:      policy,
		uploadTTL:   uploadTTL,
		downloadTTL: downloadTTL,
		logger:      logger,
	}
}

// RequestUpload is phase 1 of the transfer protocol. It mints the file ID
// and signs an upload URL but creates no metadata row; the file stays
// invisible to listings until Save commits it.
func (s *fileService) RequestUpload(ctx context.Context, req *services.RequestUploadRequest) (*services.UploadTicket, error) {
	if err := s.validateUploadRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if !s.policy.Allows(req.MimeType) {
		return nil, fmt.Errorf("%w: file type %q is not allowed", domain.ErrValidation, req.MimeType)
	}
	if req.SizeBytes > s.policy.MaxSizeBytes {
		return nil, fmt.Errorf("%w: file exceeds the %d byte upload limit", domain.ErrValidation, s.policy.MaxSizeBytes)
	}

	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}
	if req.FolderID != nil {
		if _, err := s.folders.GetByID(ctx, *req.FolderID, req.TenantID); err != nil {
			return nil, err
		}
	}

	fileID := uuid.NewString()
	storagePath := StoragePath(req.TenantID, req.FolderID, fileID, req.Filename)

	url, err := s.blobs.UploadURL(ctx, storagePath, req.MimeType, s.uploadTTL)
	if err != nil {
		s.logger.Error("sign upload url failed", "storage_path", storagePath, "error", err)
		return nil, fmt.Errorf("%w: sign upload url", domain.ErrUpstream)
	}

	s.logger.Info("upload url issued",
		"file_id", fileID,
		"teacher_id", req.TenantID,
		"storage_path", storagePath,
		"mime_type", req.MimeType,
		"size_bytes", req.SizeBytes,
	)

	return &services.UploadTicket{
		FileID:      fileID,
		UploadURL:   url,
		StoragePath: storagePath,
	}, nil
}

// Save is phase 2: it persists the metadata row. This is the point the
// file becomes visible to folder listings.
func (s *fileService) Save(ctx context.Context, req *services.SaveFileRequest) (*models.File, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateSaveRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}
	if req.FolderID != nil {
		if _, err := s.folders.GetByID(ctx, *req.FolderID, req.TenantID); err != nil {
			return nil, err
		}
	}

	// Cache a long-lived download URL so reads don't re-sign every time.
	// A fresh URL can always be regenerated from the storage path.
	url, err := s.blobs.DownloadURL(ctx, req.StoragePath, s.downloadTTL)
	if err != nil {
		s.logger.Error("sign download url failed", "storage_path", req.StoragePath, "error", err)
		return nil, fmt.Errorf("%w: sign download url", domain.ErrUpstream)
	}

	fileID := req.FileID
	if fileID == "" {
		fileID = uuid.NewString()
	}

	file := &models.File{
		ID:               fileID,
		TenantID:         req.TenantID,
		FolderID:         req.FolderID,
		Name:             req.Name,
		OriginalFilename: req.OriginalFilename,
		MimeType:         req.MimeType,
		SizeBytes:        req.SizeBytes,
		StoragePath:      req.StoragePath,
		DownloadURL:      url,
		URLExpiresAt:     time.Now().Add(s.downloadTTL),
		UploadedBy:       req.ActorID,
		CreatedAt:        time.Now(),
	}

	if err := s.files.Create(ctx, file); err != nil {
		return nil, err
	}

	s.logger.Info("file saved",
		"id", file.ID,
		"name", file.Name,
		"teacher_id", file.TenantID,
		"folder_id", file.FolderID,
		"size_bytes", file.SizeBytes,
	)

	return file, nil
}

// DownloadURL returns a signed download URL plus the original filename.
// The cached URL is served while still inside its validity window.
func (s *fileService) DownloadURL(ctx context.Context, id, tenantID string) (*services.DownloadInfo, error) {
	file, err := s.files.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	if file.DownloadURL != "" && time.Now().Add(urlExpiryMargin).Before(file.URLExpiresAt) {
		return &services.DownloadInfo{URL: file.DownloadURL, Filename: file.OriginalFilename}, nil
	}

	url, err := s.blobs.DownloadURL(ctx, file.StoragePath, s.downloadTTL)
	if err != nil {
		s.logger.Error("sign download url failed", "storage_path", file.StoragePath, "error", err)
		return nil, fmt.Errorf("%w: sign download url", domain.ErrUpstream)
	}

	// Refresh the cache best-effort; the caller gets the fresh URL anyway.
	file.DownloadURL = url
	file.URLExpiresAt = time.Now().Add(s.downloadTTL)
	if err := s.files.UpdateDownloadURL(ctx, file); err != nil {
		s.logger.Warn("cache download url failed", "file_id", id, "error", err)
	}

	return &services.DownloadInfo{URL: url, Filename: file.OriginalFilename}, nil
}

// Rename renames a file by (id, tenant).
func (s *fileService) Rename(ctx context.Context, id string, req *services.RenameFileRequest) (*models.File, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	file, err := s.files.Rename(ctx, id, req.TenantID, req.Name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("file renamed", "id", id, "name", req.Name, "teacher_id", req.TenantID)

	return file, nil
}

// Delete removes the metadata row then the blob object. A file has no
// descendants, so there is no cascade; unlike the folder cascade, a blob
// failure here surfaces to the caller.
func (s *fileService) Delete(ctx context.Context, id, tenantID string) error {
	file, err := s.files.GetByID(ctx, id, tenantID)
	if err != nil {
		return err
	}

	if err := s.files.Delete(ctx, id, tenantID); err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, file.StoragePath); err != nil {
		s.logger.Error("object delete failed", "storage_path", file.StoragePath, "error", err)
		return fmt.Errorf("%w: delete object", domain.ErrUpstream)
	}

	s.logger.Info("file deleted", "id", id, "teacher_id", tenantID)

	return nil
}

func (s *fileService) validateUploadRequest(req *services.RequestUploadRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.TenantID, validation.Required),
		validation.Field(&req.Filename, validation.Required, validation.Length(1, config.MaxFileNameLength)),
		validation.Field(&req.MimeType, validation.Required),
		validation.Field(&req.SizeBytes, validation.Required, validation.Min(1)),
	)
}

func (s *fileService) validateSaveRequest(req *services.SaveFileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.TenantID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxFileNameLength)),
		validation.Field(&req.OriginalFilename, validation.Required, validation.Length(1, config.MaxFileNameLength)),
		validation.Field(&req.MimeType, validation.Required),
		validation.Field(&req.StoragePath, validation.Required),
	)
}

// StoragePath builds the deterministic object key for a file:
// documents/{tenant}/{folder|root}/{fileID}/{sanitized filename}. The
// minted file ID keeps keys collision-free; the rest keeps them
// self-describing.
func StoragePath(tenantID string, folderID *string, fileID, filename string) string {
	folderSegment := "root"
	if folderID != nil && *folderID != "" {
		folderSegment = *folderID
	}
	return fmt.Sprintf("documents/%s/%s/%s/%s", tenantID, folderSegment, fileID, sanitizeFilename(filename))
}

// sanitizeFilename keeps object keys to a safe character set.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
