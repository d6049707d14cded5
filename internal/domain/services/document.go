package services

import (
	"context"

	"lectern/internal/domain/models"
)

// DocumentService is the actor-facing composition layer: it resolves the
// tenant scope once per call, then delegates to the folder and file
// services with the resolved tenant threaded through.
type DocumentService interface {
	// AccessibleTeachers lists the teachers a student may browse documents
	// for. Teacher actors are rejected with forbidden.
	AccessibleTeachers(ctx context.Context, actor models.Actor) ([]models.TeacherRef, error)

	// Contents lists a folder's children and breadcrumb within the actor's
	// resolved scope.
	Contents(ctx context.Context, actor models.Actor, teacherHint string, folderID *string) (*FolderContents, error)

	CreateFolder(ctx context.Context, actor models.Actor, req *CreateFolderRequest) (*models.Folder, error)
	RenameFolder(ctx context.Context, actor models.Actor, id string, req *RenameFolderRequest) (*models.Folder, error)
	DeleteFolder(ctx context.Context, actor models.Actor, id, teacherHint string) error

	RequestUpload(ctx context.Context, actor models.Actor, req *RequestUploadRequest) (*UploadTicket, error)
	SaveFile(ctx context.Context, actor models.Actor, req *SaveFileRequest) (*models.File, error)
	FileDownload(ctx context.Context, actor models.Actor, id, teacherHint string) (*DownloadInfo, error)
	RenameFile(ctx context.Context, actor models.Actor, id string, req *RenameFileRequest) (*models.File, error)
	DeleteFile(ctx context.Context, actor models.Actor, id, teacherHint string) error
}
