package roster

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// These interfaces define the persistence contract. Implementations live
// in infrastructure/persistence. The repository is the sole source of
// truth; in-memory entities are views rebuilt from it.
// ══════════════════════════════════════════════════════════════════════════════

// StudentRepository defines persistence operations for students.
type StudentRepository interface {
	// Create persists a new student. Every write commits immediately.
	// Returns a DuplicateKey error when StudentID or Email collide.
	Create(ctx context.Context, s *Student) error

	// GetAll returns all students with their registered course ids.
	GetAll(ctx context.Context) ([]*Student, error)

	// GetByID returns a student by internal ID.
	// Returns ErrStudentNotFound when absent.
	GetByID(ctx context.Context, id string) (*Student, error)

	// GetByStudentID returns a student by natural key.
	GetByStudentID(ctx context.Context, studentID string) (*Student, error)

	// GetByName returns the first student with the exact name.
	GetByName(ctx context.Context, name string) (*Student, error)

	// Update overwrites the student's mutable fields.
	Update(ctx context.Context, s *Student) error

	// Delete removes the student row and its enrollments.
	Delete(ctx context.Context, id string) error

	// Search returns students whose name contains term as a substring
	// or whose student id equals term exactly (case-sensitive). An
	// empty result is a valid empty slice, not an error.
	Search(ctx context.Context, term string) ([]*Student, error)

	// ExistsByKeyOrEmail reports whether any student shares the given
	// natural id OR email. Used for duplicate detection before Create.
	ExistsByKeyOrEmail(ctx context.Context, studentID, email string) (bool, error)
}

// InstructorRepository defines persistence operations for instructors.
type InstructorRepository interface {
	Create(ctx context.Context, i *Instructor) error
	GetAll(ctx context.Context) ([]*Instructor, error)
	GetByID(ctx context.Context, id string) (*Instructor, error)
	GetByInstructorID(ctx context.Context, instructorID string) (*Instructor, error)
	GetByName(ctx context.Context, name string) (*Instructor, error)
	Update(ctx context.Context, i *Instructor) error
	Delete(ctx context.Context, id string) error

	// Search matches name substring OR instructor id exact.
	Search(ctx context.Context, term string) ([]*Instructor, error)

	// ExistsByKeyOrEmail reports whether any instructor shares the
	// given natural id OR email.
	ExistsByKeyOrEmail(ctx context.Context, instructorID, email string) (bool, error)
}

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	Create(ctx context.Context, c *Course) error
	GetAll(ctx context.Context) ([]*Course, error)
	GetByID(ctx context.Context, id string) (*Course, error)
	GetByCourseID(ctx context.Context, courseID string) (*Course, error)
	GetByName(ctx context.Context, name string) (*Course, error)
	Update(ctx context.Context, c *Course) error
	Delete(ctx context.Context, id string) error

	// Search matches course name substring OR course id exact.
	Search(ctx context.Context, term string) ([]*Course, error)

	// ExistsByCourseID reports whether the natural key is taken.
	// Course names are NOT checked - name collisions are permitted.
	ExistsByCourseID(ctx context.Context, courseID string) (bool, error)

	// AssignInstructor sets or replaces the course's instructor
	// reference. Both arguments are internal row ids.
	AssignInstructor(ctx context.Context, courseID, instructorID string) error
}

// Enrollment is the joined many-to-many view of a registration,
// shaped for display and export surfaces.
type Enrollment struct {
	StudentName string
	StudentID   string
	CourseName  string
	CourseID    string
}

// EnrollmentRepository manages the student-course join.
type EnrollmentRepository interface {
	// Enroll inserts a join row and commits. Returns an AlreadyEnrolled
	// error when the (student, course) pair already exists; the join
	// table never holds more than one row per pair.
	Enroll(ctx context.Context, studentID, courseID string) error

	// IsEnrolled reports whether the pair already has a join row.
	IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error)

	// ListAll returns the joined enrollment view in insertion order.
	ListAll(ctx context.Context) ([]Enrollment, error)
}

// Repositories bundles the four persistence contracts a backing store
// must provide. Both the postgres and the jsonfile variants satisfy it.
type Repositories struct {
	Students    StudentRepository
	Instructors InstructorRepository
	Courses     CourseRepository
	Enrollments EnrollmentRepository
}
