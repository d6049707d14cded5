package repositories

import (
	"context"

	"lectern/internal/domain/models"
)

// EnrollmentRepository is the read-only view of the enrollment subsystem
// this core needs: the yes/no enrollment fact that gates student scopes,
// and the distinct teachers a student may browse.
type EnrollmentRepository interface {
	// IsEnrolled reports whether the student holds at least one active or
	// completed enrollment in a course owned by the teacher.
	IsEnrolled(ctx context.Context, studentID, teacherID string) (bool, error)

	// ListTeachers returns the distinct teachers the student is enrolled
	// under, name-ordered.
	ListTeachers(ctx context.Context, studentID string) ([]models.TeacherRef, error)
}

// ProfileRepository resolves a teacher actor to their teacher profile,
// which is the tenant ID of their document namespace.
type ProfileRepository interface {
	// TeacherProfileID returns the teacher profile ID for a user, or
	// domain.ErrNotFound if the user has no teacher profile.
	TeacherProfileID(ctx context.Context, userID string) (string, error)
}
