package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
	"github.com/campus-hub/campus-registry/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// StudentRepository implements roster.StudentRepository for PostgreSQL.
type StudentRepository struct {
	conn *Connection
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(conn *Connection) *StudentRepository {
	return &StudentRepository{conn: conn}
}

// selectStudent aggregates the registered course ids from the join
// table so the entity view is always rebuilt from the store.
const selectStudent = `
	SELECT s.id, s.name, s.age, s.email, s.student_id,
		   COALESCE(ARRAY_AGG(c.course_id ORDER BY sc.enrolled_at)
		            FILTER (WHERE c.course_id IS NOT NULL), '{}')
	FROM students s
	LEFT JOIN student_course sc ON sc.student_id = s.id
	LEFT JOIN courses c ON c.id = sc.course_id
`

const groupStudent = ` GROUP BY s.id, s.name, s.age, s.email, s.student_id`

// Create persists a new student. The statement commits immediately.
func (r *StudentRepository) Create(ctx context.Context, s *roster.Student) error {
	query := `
		INSERT INTO students (id, name, age, email, student_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now().UTC()
	_, err := r.conn.Exec(ctx, query, s.ID, s.Name, s.Age, s.Email, s.StudentID, now, now)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrStudentExists
		}
		return fmt.Errorf("failed to create student: %w", err)
	}

	return nil
}

// GetAll returns all students ordered by name.
func (r *StudentRepository) GetAll(ctx context.Context) ([]*roster.Student, error) {
	query := selectStudent + groupStudent + ` ORDER BY s.name`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// GetByID returns a student by internal ID.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*roster.Student, error) {
	query := selectStudent + ` WHERE s.id = $1` + groupStudent
	return r.getOne(ctx, query, id)
}

// GetByStudentID returns a student by natural key.
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*roster.Student, error) {
	query := selectStudent + ` WHERE s.student_id = $1` + groupStudent
	return r.getOne(ctx, query, studentID)
}

// GetByName returns the first student with the exact name.
func (r *StudentRepository) GetByName(ctx context.Context, name string) (*roster.Student, error) {
	query := selectStudent + ` WHERE s.name = $1` + groupStudent + ` ORDER BY s.student_id LIMIT 1`
	return r.getOne(ctx, query, name)
}

func (r *StudentRepository) getOne(ctx context.Context, query string, arg any) (*roster.Student, error) {
	rows, err := r.conn.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query student: %w", err)
	}
	defer rows.Close()

	students, err := scanStudents(rows)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, shared.ErrStudentNotFound
	}
	return students[0], nil
}

// Update overwrites the student's mutable fields.
func (r *StudentRepository) Update(ctx context.Context, s *roster.Student) error {
	query := `
		UPDATE students SET name = $1, age = $2, email = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.conn.Exec(ctx, query, s.Name, s.Age, s.Email, time.Now().UTC(), s.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrStudentExists
		}
		return fmt.Errorf("failed to update student: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrStudentNotFound
	}

	return nil
}

// Delete removes the student row; enrollments cascade.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn.Exec(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrStudentNotFound
	}

	return nil
}

// Search matches name substring OR student id exact, case-sensitive.
func (r *StudentRepository) Search(ctx context.Context, term string) ([]*roster.Student, error) {
	query := selectStudent +
		` WHERE s.name LIKE '%' || $1 || '%' OR s.student_id = $1` +
		groupStudent + ` ORDER BY s.name`

	rows, err := r.conn.Query(ctx, query, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search students: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// ExistsByKeyOrEmail checks the duplicate contract: natural id OR email.
func (r *StudentRepository) ExistsByKeyOrEmail(ctx context.Context, studentID, email string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM students WHERE student_id = $1 OR email = $2)",
		studentID, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check student existence: %w", err)
	}
	return exists, nil
}

// scanStudents scans all rows into student entities.
func scanStudents(rows pgx.Rows) ([]*roster.Student, error) {
	students := make([]*roster.Student, 0)
	for rows.Next() {
		var s roster.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Age, &s.Email, &s.StudentID, &s.RegisteredCourses); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		if s.RegisteredCourses == nil {
			s.RegisteredCourses = make([]string, 0)
		}
		students = append(students, &s)
	}
	return students, rows.Err()
}
