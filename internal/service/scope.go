package service

import (
	"errors"
	"fmt"
	"log/slog"

	"context"

	"lectern/internal/domain"
	"lectern/internal/domain/models"
	"lectern/internal/domain/repositories"
	"lectern/internal/domain/services"
)

type scopeResolver struct {
	profiles    repositories.ProfileRepository
	enrollments repositories.EnrollmentRepository
	logger      *slog.Logger
}

// NewScopeResolver creates the tenant scope resolver. Teacher actors always
// resolve to their own namespace; student actors must name a teacher and
// prove enrollment under them.
func NewScopeResolver(
	profiles repositories.ProfileRepository,
	enrollments repositories.EnrollmentRepository,
	logger *slog.Logger,
) services.ScopeResolver {
	return &scopeResolver{
		profiles:    profiles,
		enrollments: enrollments,
		logger:      logger,
	}
}

// Resolve determines the tenant for the request. The hint is ignored for
// teachers so a teacher can never operate outside their own namespace.
func (s *scopeResolver) Resolve(ctx context.Context, actor models.Actor, teacherHint string) (models.Scope, error) {
	switch actor.Role {
	case models.RoleTeacher:
		profileID, err := s.profiles.TeacherProfileID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return models.Scope{}, fmt.Errorf("%w: no teacher profile", domain.ErrForbidden)
			}
			return models.Scope{}, err
		}
		return models.Scope{Kind: models.ScopeTeacher, TenantID: profileID, ActorID: actor.ID}, nil

	case models.RoleStudent:
		if teacherHint == "" {
			return models.Scope{}, fmt.Errorf("%w: teacher_id is required", domain.ErrValidation)
		}

		enrolled, err := s.enrollments.IsEnrolled(ctx, actor.ID, teacherHint)
		if err != nil {
			return models.Scope{}, err
		}
		if !enrolled {
			return models.Scope{}, fmt.Errorf("%w: not enrolled under this teacher", domain.ErrForbidden)
		}

		return models.Scope{Kind: models.ScopeStudent, TenantID: teacherHint, ActorID: actor.ID}, nil

	default:
		return models.Scope{}, fmt.Errorf("%w: unknown role %q", domain.ErrForbidden, actor.Role)
	}
}
