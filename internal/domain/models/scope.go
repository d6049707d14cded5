package models

// ScopeKind tags how a request's tenant was resolved.
type ScopeKind string

const (
	// ScopeTeacher means the tenant is the actor's own teacher profile.
	ScopeTeacher ScopeKind = "teacher"
	// ScopeStudent means the tenant is a teacher the student proved
	// enrollment under.
	ScopeStudent ScopeKind = "student"
)

// Scope is the single tenant namespace a request operates within.
// It is resolved once at the entry point and threaded explicitly through
// every subsequent call - never re-derived mid-request.
type Scope struct {
	Kind     ScopeKind
	TenantID string // teacher profile ID owning the document namespace
	ActorID  string
}

// TeacherRef is a browsable teacher as surfaced to students.
type TeacherRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
