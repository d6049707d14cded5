package services

import (
	"context"

	"lectern/internal/domain/models"
)

// FileService drives the two-phase transfer protocol and file metadata CRUD
// within an already-resolved tenant scope. Bytes never pass through this
// service; clients talk to the blob store directly via signed URLs.
type FileService interface {
	// RequestUpload is phase 1: mint a file ID, build the storage path and
	// sign a short-lived upload URL. No metadata row is created.
	RequestUpload(ctx context.Context, req *RequestUploadRequest) (*UploadTicket, error)

	// Save is phase 2: persist the metadata row with a cached long-lived
	// download URL. The file becomes visible to listings here.
	Save(ctx context.Context, req *SaveFileRequest) (*models.File, error)

	// DownloadURL returns a signed download URL plus the original filename,
	// serving the cached URL while it is still valid.
	DownloadURL(ctx context.Context, id, tenantID string) (*DownloadInfo, error)

	// Rename renames a file by (id, tenant).
	Rename(ctx context.Context, id string, req *RenameFileRequest) (*models.File, error)

	// Delete removes the metadata row then the single blob object.
	Delete(ctx context.Context, id, tenantID string) error
}

// RequestUploadRequest represents phase 1 of the upload protocol.
type RequestUploadRequest struct {
	TeacherID string  `json:"teacher_id,omitempty"`
	Filename  string  `json:"filename"`
	MimeType  string  `json:"mime_type"`
	SizeBytes int64   `json:"size_bytes"`
	FolderID  *string `json:"folder_id,omitempty"`
	TenantID  string  `json:"-"`
	ActorID   string  `json:"-"`
}

// UploadTicket is the phase 1 result the client uploads against.
type UploadTicket struct {
	FileID      string `json:"file_id"`
	UploadURL   string `json:"upload_url"`
	StoragePath string `json:"storage_path"`
}

// SaveFileRequest represents phase 2 of the upload protocol.
type SaveFileRequest struct {
	TeacherID        string  `json:"teacher_id,omitempty"`
	FileID           string  `json:"file_id"`
	Name             string  `json:"filename"`
	OriginalFilename string  `json:"original_filename"`
	MimeType         string  `json:"mime_type"`
	SizeBytes        int64   `json:"size_bytes"`
	FolderID         *string `json:"folder_id,omitempty"`
	StoragePath      string  `json:"storage_path"`
	TenantID         string  `json:"-"`
	ActorID          string  `json:"-"`
}

// RenameFileRequest represents a file rename request.
type RenameFileRequest struct {
	TeacherID string `json:"teacher_id,omitempty"`
	Name      string `json:"name"`
	TenantID  string `json:"-"`
}

// DownloadInfo carries a signed download URL and the original filename for
// client-side "save as".
type DownloadInfo struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}
