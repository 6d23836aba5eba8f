package roster

import (
	"encoding/json"

	"github.com/campus-hub/campus-registry/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Student represents a student record.
type Student struct {
	Person

	// ID is the internal row identifier (UUID in string form). It is
	// assigned on persistence and excluded from the canonical JSON form.
	ID string `json:"-"`

	// StudentID is the caller-supplied natural key, unique across the
	// registry together with Email.
	StudentID string `json:"student_id"`

	// RegisteredCourses holds course ids in registration order. The
	// repository join table is the source of truth; this slice is a
	// view rebuilt on load. Duplicates are permitted here - uniqueness
	// is enforced at the enrollment level.
	RegisteredCourses []string `json:"registered_courses"`
}

// NewStudentParams contains the fields needed to create a student.
type NewStudentParams struct {
	Name      string
	Age       int
	Email     string
	StudentID string
}

// NewStudent creates a student with all fields validated. Uniqueness of
// StudentID and Email is the repository's job, not the constructor's.
func NewStudent(params NewStudentParams) (*Student, error) {
	person, err := newPerson(params.Name, params.Age, params.Email)
	if err != nil {
		return nil, err
	}

	studentID, err := shared.ValidateRequired(params.StudentID, "student_id")
	if err != nil {
		return nil, err
	}

	return &Student{
		Person:            person,
		StudentID:         studentID,
		RegisteredCourses: make([]string, 0),
	}, nil
}

// RegisterCourse appends a course id to the student's view of their
// registrations. Callers persist the enrollment separately.
func (s *Student) RegisterCourse(courseID string) {
	s.RegisteredCourses = append(s.RegisteredCourses, courseID)
}

// Serialize produces the canonical JSON form:
// {name, age, email, student_id, registered_courses}.
func (s *Student) Serialize() ([]byte, error) {
	return json.Marshal(s)
}

// studentDoc mirrors the canonical form with pointer fields so missing
// keys are distinguishable from zero values.
type studentDoc struct {
	Name              *string  `json:"name"`
	Age               *int     `json:"age"`
	Email             *string  `json:"email"`
	StudentID         *string  `json:"student_id"`
	RegisteredCourses []string `json:"registered_courses"`
}

// DecodeStudent reconstructs a student from its canonical JSON form.
// Returns ErrMalformedRecord if required keys are missing, the document
// is not valid JSON, or any field fails validation.
func DecodeStudent(data []byte) (*Student, error) {
	var doc studentDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, shared.WrapError("student", "Decode", shared.ErrMalformedRecord,
			"not a valid student document", err)
	}

	if doc.Name == nil || doc.Age == nil || doc.Email == nil || doc.StudentID == nil {
		return nil, shared.NewDomainError("student", "Decode", shared.ErrMalformedRecord,
			"student document is missing required keys")
	}

	s, err := NewStudent(NewStudentParams{
		Name:      *doc.Name,
		Age:       *doc.Age,
		Email:     *doc.Email,
		StudentID: *doc.StudentID,
	})
	if err != nil {
		return nil, shared.WrapError("student", "Decode", shared.ErrMalformedRecord,
			"student document failed validation", err)
	}

	if len(doc.RegisteredCourses) > 0 {
		s.RegisteredCourses = append(s.RegisteredCourses, doc.RegisteredCourses...)
	}

	return s, nil
}

// Clone creates a copy of the student with an independent course list.
func (s *Student) Clone() *Student {
	if s == nil {
		return nil
	}

	clone := *s
	clone.RegisteredCourses = make([]string, len(s.RegisteredCourses))
	copy(clone.RegisteredCourses, s.RegisteredCourses)
	return &clone
}
