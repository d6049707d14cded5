package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"lectern/internal/domain"
	"lectern/internal/domain/models"
	"lectern/internal/domain/repositories"
)

// In-memory fakes for the repository and blob store interfaces. They
// emulate the same tenant filtering and relational cascade the postgres
// layer provides.

type fakeStore struct {
	mu      sync.Mutex
	folders map[string]*models.Folder
	files   map[string]*models.File
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		folders: make(map[string]*models.Folder),
		files:   make(map[string]*models.File),
	}
}

// --- FolderRepository ---

type fakeFolderRepo struct{ store *fakeStore }

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f := *folder
	r.store.folders[f.ID] = &f
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id, tenantID string) (*models.Folder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f, ok := r.store.folders[id]
	if !ok || f.TenantID != tenantID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	out := *f
	return &out, nil
}

func (r *fakeFolderRepo) Rename(ctx context.Context, id, tenantID, name string) (*models.Folder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f, ok := r.store.folders[id]
	if !ok || f.TenantID != tenantID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	f.Name = name
	out := *f
	return &out, nil
}

// Delete emulates the relational ON DELETE CASCADE: the folder, its
// transitive descendants and their files all go.
func (r *fakeFolderRepo) Delete(ctx context.Context, id, tenantID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f, ok := r.store.folders[id]
	if !ok || f.TenantID != tenantID {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	doomed := map[string]bool{id: true}
	for changed := true; changed; {
		changed = false
		for fid, folder := range r.store.folders {
			if doomed[fid] || folder.ParentID == nil {
				continue
			}
			if doomed[*folder.ParentID] {
				doomed[fid] = true
				changed = true
			}
		}
	}

	for fid := range doomed {
		delete(r.store.folders, fid)
	}
	for fileID, file := range r.store.files {
		if file.FolderID != nil && doomed[*file.FolderID] {
			delete(r.store.files, fileID)
		}
	}
	return nil
}

func (r *fakeFolderRepo) ListChildren(ctx context.Context, folderID *string, tenantID string) ([]models.Folder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Folder
	for _, f := range r.store.folders {
		if f.TenantID != tenantID {
			continue
		}
		if sameParent(f.ParentID, folderID) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeFolderRepo) GetAllByTenant(ctx context.Context, tenantID string) ([]models.Folder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.Folder
	for _, f := range r.store.folders {
		if f.TenantID == tenantID {
			out = append(out, *f)
		}
	}
	return out, nil
}

// --- FileRepository ---

type fakeFileRepo struct{ store *fakeStore }

func (r *fakeFileRepo) Create(ctx context.Context, file *models.File) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f := *file
	r.store.files[f.ID] = &f
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, id, tenantID string) (*models.File, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f, ok := r.store.files[id]
	if !ok || f.TenantID != tenantID {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	out := *f
	return &out, nil
}

func (r *fakeFileRepo) Rename(ctx context.Context, id, tenantID, name string) (*models.File, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f, ok := r.store.files[id]
	if !ok || f.TenantID != tenantID {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	f.Name = name
	out := *f
	return &out, nil
}

func (r *fakeFileRepo) UpdateDownloadURL(ctx context.Context, file *models.File) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f, ok := r.store.files[file.ID]
	if !ok || f.TenantID != file.TenantID {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}
	f.DownloadURL = file.DownloadURL
	f.URLExpiresAt = file.URLExpiresAt
	return nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id, tenantID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f, ok := r.store.files[id]
	if !ok || f.TenantID != tenantID {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.files, id)
	return nil
}

func (r *fakeFileRepo) ListByFolder(ctx context.Context, folderID *string, tenantID string) ([]models.File, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.File
	for _, f := range r.store.files {
		if f.TenantID != tenantID {
			continue
		}
		if sameParent(f.FolderID, folderID) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeFileRepo) ListStoragePathsByFolders(ctx context.Context, folderIDs []string, tenantID string) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	in := make(map[string]bool, len(folderIDs))
	for _, id := range folderIDs {
		in[id] = true
	}
	var out []string
	for _, f := range r.store.files {
		if f.TenantID == tenantID && f.FolderID != nil && in[*f.FolderID] {
			out = append(out, f.StoragePath)
		}
	}
	return out, nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// --- TransactionManager ---

type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// --- BlobStore ---

type fakeBlobStore struct {
	mu          sync.Mutex
	deleted     []string
	failDeletes map[string]bool
	failSign    bool
	expires     time.Time // stamped into signed URLs for inspection
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{failDeletes: make(map[string]bool)}
}

func (b *fakeBlobStore) UploadURL(ctx context.Context, path, contentType string, ttl time.Duration) (string, error) {
	if b.failSign {
		return "", fmt.Errorf("blob store down")
	}
	return "https://blobs.test/upload/" + path, nil
}

func (b *fakeBlobStore) DownloadURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	if b.failSign {
		return "", fmt.Errorf("blob store down")
	}
	return "https://blobs.test/download/" + path + "?ttl=" + ttl.String(), nil
}

func (b *fakeBlobStore) Delete(ctx context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failDeletes[path] {
		return fmt.Errorf("blob store down")
	}
	b.deleted = append(b.deleted, path)
	return nil
}

func (b *fakeBlobStore) deleteCount(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, p := range b.deleted {
		if p == path {
			n++
		}
	}
	return n
}

// --- Enrollment / profile collaborators ---

type fakeEnrollmentRepo struct {
	enrolled map[string]bool // "student|teacher"
	teachers map[string][]models.TeacherRef
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{
		enrolled: make(map[string]bool),
		teachers: make(map[string][]models.TeacherRef),
	}
}

func (r *fakeEnrollmentRepo) enroll(studentID, teacherID, teacherName string) {
	r.enrolled[studentID+"|"+teacherID] = true
	r.teachers[studentID] = append(r.teachers[studentID], models.TeacherRef{ID: teacherID, Name: teacherName})
}

func (r *fakeEnrollmentRepo) IsEnrolled(ctx context.Context, studentID, teacherID string) (bool, error) {
	return r.enrolled[studentID+"|"+teacherID], nil
}

func (r *fakeEnrollmentRepo) ListTeachers(ctx context.Context, studentID string) ([]models.TeacherRef, error) {
	return r.teachers[studentID], nil
}

type fakeProfileRepo struct {
	profiles map[string]string // user ID -> teacher profile ID
}

func (r *fakeProfileRepo) TeacherProfileID(ctx context.Context, userID string) (string, error) {
	id, ok := r.profiles[userID]
	if !ok {
		return "", fmt.Errorf("teacher profile for user %s: %w", userID, domain.ErrNotFound)
	}
	return id, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
