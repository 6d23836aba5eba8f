package roster

import (
	"encoding/json"

	"github.com/campus-hub/campus-registry/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// INSTRUCTOR ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Instructor represents an instructor record.
type Instructor struct {
	Person

	// ID is the internal row identifier, excluded from canonical JSON.
	ID string `json:"-"`

	// InstructorID is the caller-supplied natural key, unique across
	// the registry together with Email.
	InstructorID string `json:"instructor_id"`

	// AssignedCourses holds course ids in assignment order. Rebuilt
	// from the repository on load.
	AssignedCourses []string `json:"assigned_courses"`
}

// NewInstructorParams contains the fields needed to create an instructor.
type NewInstructorParams struct {
	Name         string
	Age          int
	Email        string
	InstructorID string
}

// NewInstructor creates an instructor with all fields validated.
func NewInstructor(params NewInstructorParams) (*Instructor, error) {
	person, err := newPerson(params.Name, params.Age, params.Email)
	if err != nil {
		return nil, err
	}

	instructorID, err := shared.ValidateRequired(params.InstructorID, "instructor_id")
	if err != nil {
		return nil, err
	}

	return &Instructor{
		Person:          person,
		InstructorID:    instructorID,
		AssignedCourses: make([]string, 0),
	}, nil
}

// AssignCourse appends a course id to the instructor's assignments.
func (i *Instructor) AssignCourse(courseID string) {
	i.AssignedCourses = append(i.AssignedCourses, courseID)
}

// Serialize produces the canonical JSON form:
// {name, age, email, instructor_id, assigned_courses}.
func (i *Instructor) Serialize() ([]byte, error) {
	return json.Marshal(i)
}

type instructorDoc struct {
	Name            *string  `json:"name"`
	Age             *int     `json:"age"`
	Email           *string  `json:"email"`
	InstructorID    *string  `json:"instructor_id"`
	AssignedCourses []string `json:"assigned_courses"`
}

// DecodeInstructor reconstructs an instructor from its canonical JSON
// form. Returns ErrMalformedRecord on missing keys or invalid fields.
func DecodeInstructor(data []byte) (*Instructor, error) {
	var doc instructorDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, shared.WrapError("instructor", "Decode", shared.ErrMalformedRecord,
			"not a valid instructor document", err)
	}

	if doc.Name == nil || doc.Age == nil || doc.Email == nil || doc.InstructorID == nil {
		return nil, shared.NewDomainError("instructor", "Decode", shared.ErrMalformedRecord,
			"instructor document is missing required keys")
	}

	i, err := NewInstructor(NewInstructorParams{
		Name:         *doc.Name,
		Age:          *doc.Age,
		Email:        *doc.Email,
		InstructorID: *doc.InstructorID,
	})
	if err != nil {
		return nil, shared.WrapError("instructor", "Decode", shared.ErrMalformedRecord,
			"instructor document failed validation", err)
	}

	if len(doc.AssignedCourses) > 0 {
		i.AssignedCourses = append(i.AssignedCourses, doc.AssignedCourses...)
	}

	return i, nil
}

// Clone creates a copy of the instructor with an independent course list.
func (i *Instructor) Clone() *Instructor {
	if i == nil {
		return nil
	}

	clone := *i
	clone.AssignedCourses = make([]string, len(i.AssignedCourses))
	copy(clone.AssignedCourses, i.AssignedCourses)
	return &clone
}
