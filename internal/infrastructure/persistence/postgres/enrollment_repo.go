package postgres

import (
	"context"
	"fmt"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
	"github.com/campus-hub/campus-registry/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENROLLMENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// EnrollmentRepository implements roster.EnrollmentRepository for PostgreSQL.
type EnrollmentRepository struct {
	conn *Connection
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(conn *Connection) *EnrollmentRepository {
	return &EnrollmentRepository{conn: conn}
}

// Enroll inserts a join row and commits. ON CONFLICT DO NOTHING keeps
// the at-most-once pair invariant even under a racing writer; zero
// affected rows means the pair already existed.
func (r *EnrollmentRepository) Enroll(ctx context.Context, studentID, courseID string) error {
	query := `
		INSERT INTO student_course (student_id, course_id)
		VALUES ($1, $2)
		ON CONFLICT (student_id, course_id) DO NOTHING
	`

	result, err := r.conn.Exec(ctx, query, studentID, courseID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.NewDomainError("enrollment", "Enroll", shared.ErrNotFound,
				"student or course not found")
		}
		return fmt.Errorf("failed to enroll student: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrEnrollmentDuplicate
	}

	return nil
}

// IsEnrolled reports whether the (student, course) pair has a join row.
func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM student_course WHERE student_id = $1 AND course_id = $2)",
		studentID, courseID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return exists, nil
}

// ListAll returns the joined enrollment view in insertion order.
func (r *EnrollmentRepository) ListAll(ctx context.Context) ([]roster.Enrollment, error) {
	query := `
		SELECT s.name, s.student_id, c.course_name, c.course_id
		FROM student_course sc
		JOIN students s ON s.id = sc.student_id
		JOIN courses c ON c.id = sc.course_id
		ORDER BY sc.enrolled_at
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := make([]roster.Enrollment, 0)
	for rows.Next() {
		var e roster.Enrollment
		if err := rows.Scan(&e.StudentName, &e.StudentID, &e.CourseName, &e.CourseID); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, e)
	}

	return enrollments, rows.Err()
}
