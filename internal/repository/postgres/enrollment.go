package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"lectern/internal/domain"
	"lectern/internal/domain/models"
	"lectern/internal/domain/repositories"
)

// PostgresEnrollmentRepository implements the EnrollmentRepository interface
// against the enrollment subsystem's tables. This core only reads them.
type PostgresEnrollmentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewEnrollmentRepository creates a new enrollment repository.
func NewEnrollmentRepository(config *RepositoryConfig) repositories.EnrollmentRepository {
	return &PostgresEnrollmentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// IsEnrolled reports whether the student holds at least one active or
// completed enrollment in a course owned by the teacher.
func (r *PostgresEnrollmentRepository) IsEnrolled(ctx context.Context, studentID, teacherID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1
			FROM %s e
			JOIN %s c ON c.id = e.course_id
			WHERE e.student_id = $1
			  AND c.teacher_id = $2
			  AND e.status IN ('active', 'completed')
		)
	`, r.tables.Enrollments, r.tables.Courses)

	var enrolled bool
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, studentID, teacherID).Scan(&enrolled)
	if err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}

	return enrolled, nil
}

// ListTeachers returns the distinct teachers the student is enrolled under.
func (r *PostgresEnrollmentRepository) ListTeachers(ctx context.Context, studentID string) ([]models.TeacherRef, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT p.id, p.display_name
		FROM %s p
		JOIN %s c ON c.teacher_id = p.id
		JOIN %s e ON e.course_id = c.id
		WHERE e.student_id = $1
		  AND e.status IN ('active', 'completed')
		ORDER BY p.display_name ASC
	`, r.tables.TeacherProfiles, r.tables.Courses, r.tables.Enrollments)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	var teachers []models.TeacherRef
	for rows.Next() {
		var t models.TeacherRef
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teachers: %w", err)
	}

	return teachers, nil
}

// PostgresProfileRepository implements the ProfileRepository interface.
type PostgresProfileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(config *RepositoryConfig) repositories.ProfileRepository {
	return &PostgresProfileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// TeacherProfileID returns the teacher profile ID for a user.
func (r *PostgresProfileRepository) TeacherProfileID(ctx context.Context, userID string) (string, error) {
	query := fmt.Sprintf(`
		SELECT id
		FROM %s
		WHERE user_id = $1
	`, r.tables.TeacherProfiles)

	var id string
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, userID).Scan(&id)
	if err != nil {
		if isPgNoRowsError(err) {
			return "", fmt.Errorf("teacher profile for user %s: %w", userID, domain.ErrNotFound)
		}
		return "", fmt.Errorf("get teacher profile: %w", err)
	}

	return id, nil
}
