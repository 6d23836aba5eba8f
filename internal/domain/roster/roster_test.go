package roster

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-hub/campus-registry/internal/domain/shared"
)

func TestNewStudent(t *testing.T) {
	s, err := NewStudent(NewStudentParams{
		Name:      "Alice",
		Age:       20,
		Email:     "alice@x.com",
		StudentID: "S1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", s.Name)
	assert.Equal(t, 20, s.Age)
	assert.Equal(t, "alice@x.com", s.Email)
	assert.Equal(t, "S1", s.StudentID)
	assert.Empty(t, s.RegisteredCourses)
	assert.NotNil(t, s.RegisteredCourses)
}

func TestNewStudent_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params NewStudentParams
		want   error
	}{
		{
			name:   "empty name",
			params: NewStudentParams{Name: "", Age: 20, Email: "a@x.com", StudentID: "S1"},
			want:   shared.ErrMissingField,
		},
		{
			name:   "negative age",
			params: NewStudentParams{Name: "Alice", Age: -3, Email: "a@x.com", StudentID: "S1"},
			want:   shared.ErrNegativeValue,
		},
		{
			name:   "bad email",
			params: NewStudentParams{Name: "Alice", Age: 20, Email: "not-an-email", StudentID: "S1"},
			want:   shared.ErrInvalidFormat,
		},
		{
			name:   "missing student id",
			params: NewStudentParams{Name: "Alice", Age: 20, Email: "a@x.com", StudentID: " "},
			want:   shared.ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStudent(tt.params)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStudentsDoNotShareCourseLists(t *testing.T) {
	// Each instance must get a fresh slice; mutating one student's
	// registrations must never leak into another's.
	a, err := NewStudent(NewStudentParams{Name: "A", Age: 20, Email: "a@x.com", StudentID: "S1"})
	require.NoError(t, err)
	b, err := NewStudent(NewStudentParams{Name: "B", Age: 21, Email: "b@x.com", StudentID: "S2"})
	require.NoError(t, err)

	a.RegisterCourse("C1")

	assert.Equal(t, []string{"C1"}, a.RegisteredCourses)
	assert.Empty(t, b.RegisteredCourses)
}

func TestStudentSerializeRoundTrip(t *testing.T) {
	s, err := NewStudent(NewStudentParams{
		Name:      "Alice",
		Age:       20,
		Email:     "alice@x.com",
		StudentID: "S1",
	})
	require.NoError(t, err)
	s.RegisterCourse("C1")
	s.RegisterCourse("C2")

	data, err := s.Serialize()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "alice@x.com", raw["email"])
	assert.Equal(t, "S1", raw["student_id"])
	assert.NotContains(t, raw, "id")

	got, err := DecodeStudent(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestDecodeStudent_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{{`},
		{"missing email", `{"name":"Alice","age":20,"student_id":"S1"}`},
		{"missing name", `{"age":20,"email":"a@x.com","student_id":"S1"}`},
		{"invalid email", `{"name":"Alice","age":20,"email":"nope","student_id":"S1"}`},
		{"negative age", `{"name":"Alice","age":-1,"email":"a@x.com","student_id":"S1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeStudent([]byte(tt.data))
			assert.ErrorIs(t, err, shared.ErrMalformedRecord)
		})
	}
}

func TestInstructorSerializeRoundTrip(t *testing.T) {
	i, err := NewInstructor(NewInstructorParams{
		Name:         "Bob",
		Age:          45,
		Email:        "bob@uni.edu",
		InstructorID: "I1",
	})
	require.NoError(t, err)
	i.AssignCourse("C1")

	data, err := i.Serialize()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "bob@uni.edu", raw["email"])
	assert.Equal(t, "I1", raw["instructor_id"])

	got, err := DecodeInstructor(data)
	require.NoError(t, err)
	assert.Equal(t, i, got)
}

func TestDecodeInstructor_MissingKeys(t *testing.T) {
	_, err := DecodeInstructor([]byte(`{"name":"Bob","age":45,"email":"bob@uni.edu"}`))
	assert.ErrorIs(t, err, shared.ErrMalformedRecord)
}

func TestCourseSerializeRoundTrip(t *testing.T) {
	c, err := NewCourse(NewCourseParams{
		CourseID:   "C1",
		CourseName: "CS101",
	})
	require.NoError(t, err)
	c.AddStudent("S1")

	data, err := c.Serialize()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "CS101", raw["course_name"])
	// No instructor assigned: the key must be absent, not empty.
	assert.NotContains(t, raw, "instructor_id")

	got, err := DecodeCourse(data)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestCourseWithInstructorRoundTrip(t *testing.T) {
	c, err := NewCourse(NewCourseParams{
		CourseID:     "C2",
		CourseName:   "Databases",
		InstructorID: "I1",
	})
	require.NoError(t, err)

	data, err := c.Serialize()
	require.NoError(t, err)

	got, err := DecodeCourse(data)
	require.NoError(t, err)
	assert.Equal(t, "I1", got.InstructorID)
	assert.True(t, got.HasInstructor())
	assert.Equal(t, c, got)
}

func TestDecodeCourse_Malformed(t *testing.T) {
	_, err := DecodeCourse([]byte(`{"course_name":"CS101"}`))
	assert.ErrorIs(t, err, shared.ErrMalformedRecord)

	_, err = DecodeCourse([]byte(`{"course_id":"C1","course_name":""}`))
	assert.ErrorIs(t, err, shared.ErrMalformedRecord)
}

func TestCourseSetInstructor(t *testing.T) {
	c, err := NewCourse(NewCourseParams{CourseID: "C1", CourseName: "CS101"})
	require.NoError(t, err)
	assert.False(t, c.HasInstructor())

	c.SetInstructor("I1")
	assert.Equal(t, "I1", c.InstructorID)

	// Assignment overwrites, it does not accumulate.
	c.SetInstructor("I2")
	assert.Equal(t, "I2", c.InstructorID)
}

func TestClonesAreIndependent(t *testing.T) {
	s, err := NewStudent(NewStudentParams{Name: "Alice", Age: 20, Email: "alice@x.com", StudentID: "S1"})
	require.NoError(t, err)
	s.RegisterCourse("C1")

	clone := s.Clone()
	clone.RegisterCourse("C2")

	assert.Equal(t, []string{"C1"}, s.RegisteredCourses)
	assert.Equal(t, []string{"C1", "C2"}, clone.RegisteredCourses)
}

func TestPersonIntroduce(t *testing.T) {
	p, err := newPerson("Alice", 20, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Hello Alice your age is 20", p.Introduce())
}
