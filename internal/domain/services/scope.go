package services

import (
	"context"

	"lectern/internal/domain/models"
)

// ScopeResolver determines the single tenant namespace a request operates
// within. Teacher actors always land in their own namespace; student actors
// must name a teacher and prove enrollment under them.
type ScopeResolver interface {
	Resolve(ctx context.Context, actor models.Actor, teacherHint string) (models.Scope, error)
}
