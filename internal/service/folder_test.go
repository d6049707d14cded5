package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"lectern/internal/domain"
	"lectern/internal/domain/models"
	"lectern/internal/domain/services"
)

type folderFixture struct {
	store   *fakeStore
	folders *fakeFolderRepo
	files   *fakeFileRepo
	blobs   *fakeBlobStore
	svc     services.FolderService
}

func newFolderFixture() *folderFixture {
	store := newFakeStore()
	folders := &fakeFolderRepo{store: store}
	files := &fakeFileRepo{store: store}
	blobs := newFakeBlobStore()
	svc := NewFolderService(folders, files, blobs, fakeTxManager{}, discardLogger())
	return &folderFixture{store: store, folders: folders, files: files, blobs: blobs, svc: svc}
}

func (fx *folderFixture) mustCreate(t *testing.T, tenant, name string, parentID *string) *models.Folder {
	t.Helper()
	folder, err := fx.svc.Create(context.Background(), &services.CreateFolderRequest{
		TenantID: tenant,
		Name:     name,
		ParentID: parentID,
		ActorID:  "actor-1",
	})
	if err != nil {
		t.Fatalf("create folder %q: %v", name, err)
	}
	return folder
}

func (fx *folderFixture) addFile(id, tenant string, folderID *string, name string) {
	fx.store.files[id] = &models.File{
		ID:          id,
		TenantID:    tenant,
		FolderID:    folderID,
		Name:        name,
		StoragePath: "documents/" + tenant + "/" + id,
		CreatedAt:   time.Now(),
	}
}

func TestCreateFolderValidation(t *testing.T) {
	fx := newFolderFixture()

	tests := []struct {
		name       string
		folderName string
	}{
		{name: "empty name", folderName: ""},
		{name: "whitespace only", folderName: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.svc.Create(context.Background(), &services.CreateFolderRequest{
				TenantID: "tenant-1",
				Name:     tt.folderName,
			})
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateFolderParentChecks(t *testing.T) {
	fx := newFolderFixture()
	other := fx.mustCreate(t, "tenant-2", "Not yours", nil)

	t.Run("missing parent", func(t *testing.T) {
		missing := "no-such-folder"
		_, err := fx.svc.Create(context.Background(), &services.CreateFolderRequest{
			TenantID: "tenant-1", Name: "Child", ParentID: &missing,
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("parent in another tenant looks missing", func(t *testing.T) {
		_, err := fx.svc.Create(context.Background(), &services.CreateFolderRequest{
			TenantID: "tenant-1", Name: "Child", ParentID: &other.ID,
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("trims the name", func(t *testing.T) {
		folder := fx.mustCreate(t, "tenant-1", "  Syllabi  ", nil)
		if folder.Name != "Syllabi" {
			t.Errorf("Name = %q, want trimmed", folder.Name)
		}
	})
}

func TestRenameFolder(t *testing.T) {
	fx := newFolderFixture()
	folder := fx.mustCreate(t, "tenant-1", "Old", nil)

	renamed, err := fx.svc.Rename(context.Background(), folder.ID, &services.RenameFolderRequest{TenantID: "tenant-1", Name: "New"})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if renamed.Name != "New" {
		t.Errorf("Name = %q, want New", renamed.Name)
	}

	t.Run("wrong tenant is not found", func(t *testing.T) {
		_, err := fx.svc.Rename(context.Background(), folder.ID, &services.RenameFolderRequest{TenantID: "tenant-2", Name: "X"})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := fx.svc.Rename(context.Background(), folder.ID, &services.RenameFolderRequest{TenantID: "tenant-1", Name: " "})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})
}

func TestDeleteFolderCascade(t *testing.T) {
	fx := newFolderFixture()
	ctx := context.Background()

	// tenant-1: top -> mid -> deep, files at every level plus one at root
	top := fx.mustCreate(t, "tenant-1", "Top", nil)
	mid := fx.mustCreate(t, "tenant-1", "Mid", &top.ID)
	deep := fx.mustCreate(t, "tenant-1", "Deep", &mid.ID)
	fx.addFile("f-top", "tenant-1", &top.ID, "a.pdf")
	fx.addFile("f-mid", "tenant-1", &mid.ID, "b.pdf")
	fx.addFile("f-deep", "tenant-1", &deep.ID, "c.pdf")
	fx.addFile("f-root", "tenant-1", nil, "loose.pdf")

	if err := fx.svc.Delete(ctx, top.ID, "tenant-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// Exactly one blob delete per file in the subtree, none for the root file.
	for _, id := range []string{"f-top", "f-mid", "f-deep"} {
		path := "documents/tenant-1/" + id
		if n := fx.blobs.deleteCount(path); n != 1 {
			t.Errorf("blob delete count for %s = %d, want 1", id, n)
		}
	}
	if n := fx.blobs.deleteCount("documents/tenant-1/f-root"); n != 0 {
		t.Errorf("root-level file was cleaned up by the cascade, want untouched")
	}

	// Folder rows are gone.
	for _, id := range []string{top.ID, mid.ID, deep.ID} {
		if _, err := fx.folders.GetByID(ctx, id, "tenant-1"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("folder %s still present after cascade", id)
		}
	}
	if _, ok := fx.store.files["f-root"]; !ok {
		t.Error("root-level file row removed by cascade, want kept")
	}

	t.Run("contents of a deleted folder is not found", func(t *testing.T) {
		_, err := fx.svc.Contents(ctx, &top.ID, "tenant-1")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestDeleteFolderBlobFailureIsAccepted(t *testing.T) {
	fx := newFolderFixture()
	top := fx.mustCreate(t, "tenant-1", "Top", nil)
	fx.addFile("f-1", "tenant-1", &top.ID, "a.pdf")
	fx.addFile("f-2", "tenant-1", &top.ID, "b.pdf")
	fx.blobs.failDeletes["documents/tenant-1/f-1"] = true

	if err := fx.svc.Delete(context.Background(), top.ID, "tenant-1"); err != nil {
		t.Fatalf("Delete should succeed despite a blob cleanup failure, got %v", err)
	}

	if _, err := fx.folders.GetByID(context.Background(), top.ID, "tenant-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Error("folder row should be gone even when blob cleanup fails")
	}
	if n := fx.blobs.deleteCount("documents/tenant-1/f-2"); n != 1 {
		t.Errorf("healthy object should still be cleaned up, delete count = %d", n)
	}
}

func TestDeleteFolderWrongTenant(t *testing.T) {
	fx := newFolderFixture()
	folder := fx.mustCreate(t, "tenant-1", "Top", nil)

	err := fx.svc.Delete(context.Background(), folder.ID, "tenant-2")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestContents(t *testing.T) {
	fx := newFolderFixture()
	ctx := context.Background()

	top := fx.mustCreate(t, "tenant-1", "Top", nil)
	fx.mustCreate(t, "tenant-1", "Beta", &top.ID)
	fx.mustCreate(t, "tenant-1", "Alpha", &top.ID)
	fx.addFile("f-1", "tenant-1", &top.ID, "week1.pdf")

	contents, err := fx.svc.Contents(ctx, &top.ID, "tenant-1")
	if err != nil {
		t.Fatalf("Contents: %v", err)
	}

	if len(contents.Folders) != 2 || contents.Folders[0].Name != "Alpha" || contents.Folders[1].Name != "Beta" {
		t.Errorf("child folders = %v, want [Alpha Beta] name-ordered", contents.Folders)
	}
	if len(contents.Files) != 1 || contents.Files[0].ID != "f-1" {
		t.Errorf("files = %v, want [f-1]", contents.Files)
	}
}

func TestBreadcrumbLength(t *testing.T) {
	fx := newFolderFixture()
	ctx := context.Background()

	// depth 0 (root listing) -> 1 entry
	contents, err := fx.svc.Contents(ctx, nil, "tenant-1")
	if err != nil {
		t.Fatalf("Contents(root): %v", err)
	}
	if len(contents.Breadcrumb) != 1 || contents.Breadcrumb[0].FolderID != nil {
		t.Fatalf("root breadcrumb = %v, want single synthetic root", contents.Breadcrumb)
	}

	// depth d -> d+1 entries, root first
	a := fx.mustCreate(t, "tenant-1", "A", nil)
	b := fx.mustCreate(t, "tenant-1", "B", &a.ID)
	c := fx.mustCreate(t, "tenant-1", "C", &b.ID)

	contents, err = fx.svc.Contents(ctx, &c.ID, "tenant-1")
	if err != nil {
		t.Fatalf("Contents(C): %v", err)
	}
	crumb := contents.Breadcrumb
	if len(crumb) != 4 {
		t.Fatalf("breadcrumb length = %d, want 4 (depth 3 + root)", len(crumb))
	}
	if crumb[0].FolderID != nil {
		t.Error("breadcrumb should start with the synthetic root")
	}
	wantNames := []string{crumb[0].Name, "A", "B", "C"}
	for i, want := range wantNames {
		if crumb[i].Name != want {
			t.Errorf("breadcrumb[%d].Name = %q, want %q", i, crumb[i].Name, want)
		}
	}
}
