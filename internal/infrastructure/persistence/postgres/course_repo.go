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
// COURSE REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// CourseRepository implements roster.CourseRepository for PostgreSQL.
type CourseRepository struct {
	conn *Connection
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(conn *Connection) *CourseRepository {
	return &CourseRepository{conn: conn}
}

// selectCourse resolves the instructor reference to its natural id and
// aggregates the enrolled student ids from the join table.
const selectCourse = `
	SELECT c.id, c.course_id, c.course_name, COALESCE(i.instructor_id, ''),
		   COALESCE(ARRAY_AGG(s.student_id ORDER BY sc.enrolled_at)
		            FILTER (WHERE s.student_id IS NOT NULL), '{}')
	FROM courses c
	LEFT JOIN instructors i ON i.id = c.instructor_id
	LEFT JOIN student_course sc ON sc.course_id = c.id
	LEFT JOIN students s ON s.id = sc.student_id
`

const groupCourse = ` GROUP BY c.id, c.course_id, c.course_name, i.instructor_id`

// Create persists a new course. The instructor reference, when set,
// must already be resolved to an internal instructor row id by the
// caller; it is stored via a scalar subquery on the natural key.
func (r *CourseRepository) Create(ctx context.Context, c *roster.Course) error {
	query := `
		INSERT INTO courses (id, course_name, course_id, instructor_id, created_at, updated_at)
		VALUES ($1, $2, $3,
		        (SELECT id FROM instructors WHERE instructor_id = $4),
		        $5, $6)
	`

	var instructorID any
	if c.HasInstructor() {
		instructorID = c.InstructorID
	}

	now := time.Now().UTC()
	_, err := r.conn.Exec(ctx, query, c.ID, c.CourseName, c.CourseID, instructorID, now, now)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrCourseExists
		}
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

// GetAll returns all courses ordered by name.
func (r *CourseRepository) GetAll(ctx context.Context) ([]*roster.Course, error) {
	query := selectCourse + groupCourse + ` ORDER BY c.course_name`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	return scanCourses(rows)
}

// GetByID returns a course by internal ID.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*roster.Course, error) {
	query := selectCourse + ` WHERE c.id = $1` + groupCourse
	return r.getOne(ctx, query, id)
}

// GetByCourseID returns a course by natural key.
func (r *CourseRepository) GetByCourseID(ctx context.Context, courseID string) (*roster.Course, error) {
	query := selectCourse + ` WHERE c.course_id = $1` + groupCourse
	return r.getOne(ctx, query, courseID)
}

// GetByName returns the first course with the exact name.
func (r *CourseRepository) GetByName(ctx context.Context, name string) (*roster.Course, error) {
	query := selectCourse + ` WHERE c.course_name = $1` + groupCourse + ` ORDER BY c.course_id LIMIT 1`
	return r.getOne(ctx, query, name)
}

func (r *CourseRepository) getOne(ctx context.Context, query string, arg any) (*roster.Course, error) {
	rows, err := r.conn.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query course: %w", err)
	}
	defer rows.Close()

	courses, err := scanCourses(rows)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, shared.ErrCourseNotFound
	}
	return courses[0], nil
}

// Update overwrites the course's mutable fields.
func (r *CourseRepository) Update(ctx context.Context, c *roster.Course) error {
	query := `
		UPDATE courses SET course_name = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.conn.Exec(ctx, query, c.CourseName, time.Now().UTC(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrCourseNotFound
	}

	return nil
}

// Delete removes the course row; enrollments cascade.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn.Exec(ctx, "DELETE FROM courses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrCourseNotFound
	}

	return nil
}

// Search matches course name substring OR course id exact, case-sensitive.
func (r *CourseRepository) Search(ctx context.Context, term string) ([]*roster.Course, error) {
	query := selectCourse +
		` WHERE c.course_name LIKE '%' || $1 || '%' OR c.course_id = $1` +
		groupCourse + ` ORDER BY c.course_name`

	rows, err := r.conn.Query(ctx, query, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search courses: %w", err)
	}
	defer rows.Close()

	return scanCourses(rows)
}

// ExistsByCourseID checks the duplicate contract for courses: natural
// key only, name collisions are permitted.
func (r *CourseRepository) ExistsByCourseID(ctx context.Context, courseID string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM courses WHERE course_id = $1)",
		courseID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}
	return exists, nil
}

// AssignInstructor sets or replaces the course's instructor reference.
func (r *CourseRepository) AssignInstructor(ctx context.Context, courseID, instructorID string) error {
	query := `
		UPDATE courses SET instructor_id = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.conn.Exec(ctx, query, instructorID, time.Now().UTC(), courseID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.ErrInstructorNotFound
		}
		return fmt.Errorf("failed to assign instructor: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrCourseNotFound
	}

	return nil
}

// scanCourses scans all rows into course entities.
func scanCourses(rows pgx.Rows) ([]*roster.Course, error) {
	courses := make([]*roster.Course, 0)
	for rows.Next() {
		var c roster.Course
		if err := rows.Scan(&c.ID, &c.CourseID, &c.CourseName, &c.InstructorID, &c.EnrolledStudents); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		if c.EnrolledStudents == nil {
			c.EnrolledStudents = make([]string, 0)
		}
		courses = append(courses, &c)
	}
	return courses, rows.Err()
}
