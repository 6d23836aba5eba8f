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
// INSTRUCTOR REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// InstructorRepository implements roster.InstructorRepository for PostgreSQL.
type InstructorRepository struct {
	conn *Connection
}

// NewInstructorRepository creates a new InstructorRepository.
func NewInstructorRepository(conn *Connection) *InstructorRepository {
	return &InstructorRepository{conn: conn}
}

// selectInstructor aggregates assigned course ids from the courses FK.
const selectInstructor = `
	SELECT i.id, i.name, i.age, i.email, i.instructor_id,
		   COALESCE(ARRAY_AGG(c.course_id ORDER BY c.created_at)
		            FILTER (WHERE c.course_id IS NOT NULL), '{}')
	FROM instructors i
	LEFT JOIN courses c ON c.instructor_id = i.id
`

const groupInstructor = ` GROUP BY i.id, i.name, i.age, i.email, i.instructor_id`

// Create persists a new instructor. The statement commits immediately.
func (r *InstructorRepository) Create(ctx context.Context, i *roster.Instructor) error {
	query := `
		INSERT INTO instructors (id, name, age, email, instructor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now().UTC()
	_, err := r.conn.Exec(ctx, query, i.ID, i.Name, i.Age, i.Email, i.InstructorID, now, now)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrInstructorExists
		}
		return fmt.Errorf("failed to create instructor: %w", err)
	}

	return nil
}

// GetAll returns all instructors ordered by name.
func (r *InstructorRepository) GetAll(ctx context.Context) ([]*roster.Instructor, error) {
	query := selectInstructor + groupInstructor + ` ORDER BY i.name`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query instructors: %w", err)
	}
	defer rows.Close()

	return scanInstructors(rows)
}

// GetByID returns an instructor by internal ID.
func (r *InstructorRepository) GetByID(ctx context.Context, id string) (*roster.Instructor, error) {
	query := selectInstructor + ` WHERE i.id = $1` + groupInstructor
	return r.getOne(ctx, query, id)
}

// GetByInstructorID returns an instructor by natural key.
func (r *InstructorRepository) GetByInstructorID(ctx context.Context, instructorID string) (*roster.Instructor, error) {
	query := selectInstructor + ` WHERE i.instructor_id = $1` + groupInstructor
	return r.getOne(ctx, query, instructorID)
}

// GetByName returns the first instructor with the exact name.
func (r *InstructorRepository) GetByName(ctx context.Context, name string) (*roster.Instructor, error) {
	query := selectInstructor + ` WHERE i.name = $1` + groupInstructor + ` ORDER BY i.instructor_id LIMIT 1`
	return r.getOne(ctx, query, name)
}

func (r *InstructorRepository) getOne(ctx context.Context, query string, arg any) (*roster.Instructor, error) {
	rows, err := r.conn.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query instructor: %w", err)
	}
	defer rows.Close()

	instructors, err := scanInstructors(rows)
	if err != nil {
		return nil, err
	}
	if len(instructors) == 0 {
		return nil, shared.ErrInstructorNotFound
	}
	return instructors[0], nil
}

// Update overwrites the instructor's mutable fields.
func (r *InstructorRepository) Update(ctx context.Context, i *roster.Instructor) error {
	query := `
		UPDATE instructors SET name = $1, age = $2, email = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.conn.Exec(ctx, query, i.Name, i.Age, i.Email, time.Now().UTC(), i.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrInstructorExists
		}
		return fmt.Errorf("failed to update instructor: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrInstructorNotFound
	}

	return nil
}

// Delete removes the instructor row; assigned courses keep a null
// instructor reference.
func (r *InstructorRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn.Exec(ctx, "DELETE FROM instructors WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete instructor: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrInstructorNotFound
	}

	return nil
}

// Search matches name substring OR instructor id exact, case-sensitive.
func (r *InstructorRepository) Search(ctx context.Context, term string) ([]*roster.Instructor, error) {
	query := selectInstructor +
		` WHERE i.name LIKE '%' || $1 || '%' OR i.instructor_id = $1` +
		groupInstructor + ` ORDER BY i.name`

	rows, err := r.conn.Query(ctx, query, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search instructors: %w", err)
	}
	defer rows.Close()

	return scanInstructors(rows)
}

// ExistsByKeyOrEmail checks the duplicate contract: natural id OR email.
func (r *InstructorRepository) ExistsByKeyOrEmail(ctx context.Context, instructorID, email string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM instructors WHERE instructor_id = $1 OR email = $2)",
		instructorID, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check instructor existence: %w", err)
	}
	return exists, nil
}

// scanInstructors scans all rows into instructor entities.
func scanInstructors(rows pgx.Rows) ([]*roster.Instructor, error) {
	instructors := make([]*roster.Instructor, 0)
	for rows.Next() {
		var i roster.Instructor
		if err := rows.Scan(&i.ID, &i.Name, &i.Age, &i.Email, &i.InstructorID, &i.AssignedCourses); err != nil {
			return nil, fmt.Errorf("failed to scan instructor: %w", err)
		}
		if i.AssignedCourses == nil {
			i.AssignedCourses = make([]string, 0)
		}
		instructors = append(instructors, &i)
	}
	return instructors, rows.Err()
}
