package roster

import (
	"encoding/json"

	"github.com/campus-hub/campus-registry/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// COURSE ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Course represents a course record. A course has zero or one
// instructor, referenced by instructor id.
type Course struct {
	// ID is the internal row identifier, excluded from canonical JSON.
	ID string `json:"-"`

	// CourseID is the caller-supplied natural key, unique across the
	// registry. Course names are NOT unique.
	CourseID string `json:"course_id"`

	// CourseName is the display name. Never empty.
	CourseName string `json:"course_name"`

	// InstructorID is the natural id of the assigned instructor, or
	// empty when the course has none.
	InstructorID string `json:"instructor_id,omitempty"`

	// EnrolledStudents holds student ids in enrollment order. The join
	// table is the source of truth; this slice is a view rebuilt on load.
	EnrolledStudents []string `json:"enrolled_students"`
}

// NewCourseParams contains the fields needed to create a course.
type NewCourseParams struct {
	CourseID   string
	CourseName string

	// InstructorID is optional. Resolution against the instructor
	// repository is the caller's job.
	InstructorID string
}

// NewCourse creates a course with all fields validated.
func NewCourse(params NewCourseParams) (*Course, error) {
	courseID, err := shared.ValidateRequired(params.CourseID, "course_id")
	if err != nil {
		return nil, err
	}

	courseName, err := shared.ValidateRequired(params.CourseName, "course_name")
	if err != nil {
		return nil, err
	}

	return &Course{
		CourseID:         courseID,
		CourseName:       courseName,
		InstructorID:     params.InstructorID,
		EnrolledStudents: make([]string, 0),
	}, nil
}

// AddStudent appends a student id to the course's view of its roster.
// Callers persist the enrollment separately.
func (c *Course) AddStudent(studentID string) {
	c.EnrolledStudents = append(c.EnrolledStudents, studentID)
}

// SetInstructor sets or replaces the assigned instructor.
func (c *Course) SetInstructor(instructorID string) {
	c.InstructorID = instructorID
}

// HasInstructor reports whether the course has an assigned instructor.
func (c *Course) HasInstructor() bool {
	return c.InstructorID != ""
}

// Serialize produces the canonical JSON form:
// {course_id, course_name, instructor_id?, enrolled_students}.
// The instructor key is omitted entirely when unset.
func (c *Course) Serialize() ([]byte, error) {
	return json.Marshal(c)
}

type courseDoc struct {
	CourseID         *string  `json:"course_id"`
	CourseName       *string  `json:"course_name"`
	InstructorID     string   `json:"instructor_id"`
	EnrolledStudents []string `json:"enrolled_students"`
}

// DecodeCourse reconstructs a course from its canonical JSON form.
// Returns ErrMalformedRecord on missing keys or invalid fields.
func DecodeCourse(data []byte) (*Course, error) {
	var doc courseDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, shared.WrapError("course", "Decode", shared.ErrMalformedRecord,
			"not a valid course document", err)
	}

	if doc.CourseID == nil || doc.CourseName == nil {
		return nil, shared.NewDomainError("course", "Decode", shared.ErrMalformedRecord,
			"course document is missing required keys")
	}

	c, err := NewCourse(NewCourseParams{
		CourseID:     *doc.CourseID,
		CourseName:   *doc.CourseName,
		InstructorID: doc.InstructorID,
	})
	if err != nil {
		return nil, shared.WrapError("course", "Decode", shared.ErrMalformedRecord,
			"course document failed validation", err)
	}

	if len(doc.EnrolledStudents) > 0 {
		c.EnrolledStudents = append(c.EnrolledStudents, doc.EnrolledStudents...)
	}

	return c, nil
}

// Clone creates a copy of the course with an independent roster list.
func (c *Course) Clone() *Course {
	if c == nil {
		return nil
	}

	clone := *c
	clone.EnrolledStudents = make([]string, len(c.EnrolledStudents))
	copy(clone.EnrolledStudents, c.EnrolledStudents)
	return &clone
}
