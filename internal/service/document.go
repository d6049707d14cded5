package service

import (
	"context"
	"fmt"
	"log/slog"

	"lectern/internal/domain"
	"lectern/internal/domain/models"
	"lectern/internal/domain/repositories"
	"lectern/internal/domain/services"
)

type documentService struct {
	scope       services.ScopeResolver
	folders     services.FolderService
	files       services.FileService
	enrollments repositories.EnrollmentRepository
	logger      *slog.Logger
}

// NewDocumentService creates the actor-facing document service. It resolves
// the tenant scope exactly once per call and threads the tenant ID into the
// folder and file services, which never re-derive it.
func NewDocumentService(
	scope services.ScopeResolver,
	folders services.FolderService,
	files services.FileService,
	enrollments repositories.EnrollmentRepository,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		scope:       scope,
		folders:     folders,
		files:       files,
		enrollments: enrollments,
		logger:      logger,
	}
}

// AccessibleTeachers lists the teachers a student may browse documents for.
func (s *documentService) AccessibleTeachers(ctx context.Context, actor models.Actor) ([]models.TeacherRef, error) {
	if actor.Role != models.RoleStudent {
		return nil, fmt.Errorf("%w: students only", domain.ErrForbidden)
	}
	return s.enrollments.ListTeachers(ctx, actor.ID)
}

// Contents lists folder children and breadcrumb within the resolved scope.
func (s *documentService) Contents(ctx context.Context, actor models.Actor, teacherHint string, folderID *string) (*services.FolderContents, error) {
	scope, err := s.scope.Resolve(ctx, actor, teacherHint)
	if err != nil {
		return nil, err
	}
	return s.folders.Contents(ctx, folderID, scope.TenantID)
}

func (s *documentService) CreateFolder(ctx context.Context, actor models.Actor, req *services.CreateFolderRequest) (*models.Folder, error) {
	scope, err := s.scope.Resolve(ctx, actor, req.TeacherID)
	if err != nil {
		return nil, err
	}
	req.TenantID = scope.TenantID
	req.ActorID = scope.ActorID
	return s.folders.Create(ctx, req)
}

func (s *documentService) RenameFolder(ctx context.Context, actor models.Actor, id string, req *services.RenameFolderRequest) (*models.Folder, error) {
	scope, err := s.scope.Resolve(ctx, actor, req.TeacherID)
	if err != nil {
		return nil, err
	}
	req.TenantID = scope.TenantID
	return s.folders.Rename(ctx, id, req)
}

func (s *documentService) DeleteFolder(ctx context.Context, actor models.Actor, id, teacherHint string) error {
	scope, err := s.scope.Resolve(ctx, actor, teacherHint)
	if err != nil {
		return err
	}
	return s.folders.Delete(ctx, id, scope.TenantID)
}

func (s *documentService) RequestUpload(ctx context.Context, actor models.Actor, req *services.RequestUploadRequest) (*services.UploadTicket, error) {
	scope, err := s.scope.Resolve(ctx, actor, req.TeacherID)
	if err != nil {
		return nil, err
	}
	req.TenantID = scope.TenantID
	req.ActorID = scope.ActorID
	return s.files.RequestUpload(ctx, req)
}

func (s *documentService) SaveFile(ctx context.Context, actor models.Actor, req *services.SaveFileRequest) (*models.File, error) {
	scope, err := s.scope.Resolve(ctx, actor, req.TeacherID)
	if err != nil {
		return nil, err
	}
	req.TenantID = scope.TenantID
	req.ActorID = scope.ActorID
	return s.files.Save(ctx, req)
}

func (s *documentService) FileDownload(ctx context.Context, actor models.Actor, id, teacherHint string) (*services.DownloadInfo, error) {
	scope, err := s.scope.Resolve(ctx, actor, teacherHint)
	if err != nil {
		return nil, err
	}
	return s.files.DownloadURL(ctx, id, scope.TenantID)
}

func (s *documentService) RenameFile(ctx context.Context, actor models.Actor, id string, req *services.RenameFileRequest) (*models.File, error) {
	scope, err := s.scope.Resolve(ctx, actor, req.TeacherID)
	if err != nil {
		return nil, err
	}
	req.TenantID = scope.TenantID
	return s.files.Rename(ctx, id, req)
}

func (s *documentService) DeleteFile(ctx context.Context, actor models.Actor, id, teacherHint string) error {
	scope, err := s.scope.Resolve(ctx, actor, teacherHint)
	if err != nil {
		return err
	}
	return s.files.Delete(ctx, id, scope.TenantID)
}
