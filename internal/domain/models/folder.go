package models

import "time"

// Folder is a node in a teacher's document tree. ParentID is fixed at
// creation (there is no move operation), so the structure is a forest
// rooted at nil per tenant and cycles are structurally unreachable.
type Folder struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"teacher_id"`
	ParentID  *string   `json:"parent_folder_id"` // NULL = root level
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// BreadcrumbEntry is one step of the ancestor chain from root to a folder.
// Derived, never stored. A nil FolderID is the synthetic root.
type BreadcrumbEntry struct {
	FolderID *string `json:"folder_id"`
	Name     string  `json:"name"`
}
