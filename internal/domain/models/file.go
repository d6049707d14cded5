package models

import "time"

// File is document metadata. The bytes live in the blob store under
// StoragePath; clients reach them through signed URLs, never through
// this service. The ID is minted before the row exists - phase 1 of the
// upload protocol hands it out and only phase 2 persists the row.
type File struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"teacher_id"`
	FolderID         *string   `json:"folder_id"` // NULL = tenant root
	Name             string    `json:"name"`
	OriginalFilename string    `json:"original_filename"`
	MimeType         string    `json:"mime_type"`
	SizeBytes        int64     `json:"size_bytes"`
	StoragePath      string    `json:"-"`
	DownloadURL      string    `json:"download_url"`
	URLExpiresAt     time.Time `json:"-"`
	UploadedBy       string    `json:"uploaded_by"`
	CreatedAt        time.Time `json:"created_at"`
}
