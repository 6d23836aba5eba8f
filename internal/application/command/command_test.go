package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
	"github.com/campus-hub/campus-registry/internal/domain/shared"
	"github.com/campus-hub/campus-registry/internal/infrastructure/persistence/jsonfile"
)

func newTestRepos() roster.Repositories {
	return jsonfile.New("").Repositories()
}

// cacheRecorder counts invalidations per entity class.
type cacheRecorder struct {
	students    int
	instructors int
	courses     int
}

func (c *cacheRecorder) InvalidateStudents(ctx context.Context) error    { c.students++; return nil }
func (c *cacheRecorder) InvalidateInstructors(ctx context.Context) error { c.instructors++; return nil }
func (c *cacheRecorder) InvalidateCourses(ctx context.Context) error     { c.courses++; return nil }

func submitStudent(t *testing.T, repos roster.Repositories, name, studentID, email string) *roster.Student {
	t.Helper()
	res, err := NewSubmitStudentHandler(repos.Students, nil).Handle(context.Background(), SubmitStudentCommand{
		Name:      name,
		Age:       20,
		Email:     email,
		StudentID: studentID,
	})
	require.NoError(t, err)
	return res.Student
}

func submitInstructor(t *testing.T, repos roster.Repositories, name, instructorID, email string) *roster.Instructor {
	t.Helper()
	res, err := NewSubmitInstructorHandler(repos.Instructors, nil).Handle(context.Background(), SubmitInstructorCommand{
		Name:         name,
		Age:          45,
		Email:        email,
		InstructorID: instructorID,
	})
	require.NoError(t, err)
	return res.Instructor
}

func submitCourse(t *testing.T, repos roster.Repositories, name, courseID, instructorID string) *roster.Course {
	t.Helper()
	res, err := NewSubmitCourseHandler(repos.Courses, repos.Instructors, nil).Handle(context.Background(), SubmitCourseCommand{
		CourseID:     courseID,
		CourseName:   name,
		InstructorID: instructorID,
	})
	require.NoError(t, err)
	return res.Course
}

func TestSubmitStudent(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	handler := NewSubmitStudentHandler(repos.Students, nil)

	res, err := handler.Handle(ctx, SubmitStudentCommand{
		Name:      "Alice",
		Age:       20,
		Email:     "alice@example.com",
		StudentID: "S-001",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Student.ID)
	assert.Empty(t, res.Student.RegisteredCourses)

	got, err := repos.Students.GetByStudentID(ctx, "S-001")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
}

func TestSubmitStudent_Validation(t *testing.T) {
	handler := NewSubmitStudentHandler(newTestRepos().Students, nil)

	tests := []struct {
		name string
		cmd  SubmitStudentCommand
		kind error
	}{
		{
			name: "empty name",
			cmd:  SubmitStudentCommand{Name: "", Age: 20, Email: "a@b.com", StudentID: "S-001"},
			kind: shared.ErrMissingField,
		},
		{
			name: "negative age",
			cmd:  SubmitStudentCommand{Name: "Alice", Age: -1, Email: "a@b.com", StudentID: "S-001"},
			kind: shared.ErrNegativeValue,
		},
		{
			name: "bad email",
			cmd:  SubmitStudentCommand{Name: "Alice", Age: 20, Email: "not-an-email", StudentID: "S-001"},
			kind: shared.ErrInvalidFormat,
		},
		{
			name: "empty student id",
			cmd:  SubmitStudentCommand{Name: "Alice", Age: 20, Email: "a@b.com", StudentID: ""},
			kind: shared.ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, tt.kind)
			assert.True(t, shared.IsValidation(err))
		})
	}
}

func TestSubmitStudent_Duplicate(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	handler := NewSubmitStudentHandler(repos.Students, nil)

	submitStudent(t, repos, "Alice", "S-001", "alice@example.com")

	// Same natural id.
	_, err := handler.Handle(ctx, SubmitStudentCommand{
		Name: "Bob", Age: 21, Email: "bob@example.com", StudentID: "S-001",
	})
	assert.ErrorIs(t, err, shared.ErrStudentExists)

	// Same email under a different id.
	_, err = handler.Handle(ctx, SubmitStudentCommand{
		Name: "Bob", Age: 21, Email: "alice@example.com", StudentID: "S-002",
	})
	assert.ErrorIs(t, err, shared.ErrStudentExists)
}

func TestSubmitStudent_CacheInvalidation(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	cache := &cacheRecorder{}
	handler := NewSubmitStudentHandler(repos.Students, cache)

	_, err := handler.Handle(ctx, SubmitStudentCommand{
		Name: "Alice", Age: 20, Email: "alice@example.com", StudentID: "S-001",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.students)

	// A duplicate is rejected before the write, so nothing to drop.
	_, err = handler.Handle(ctx, SubmitStudentCommand{
		Name: "Bob", Age: 21, Email: "bob@example.com", StudentID: "S-001",
	})
	require.Error(t, err)
	assert.Equal(t, 1, cache.students)

	// Same for a validation failure.
	_, err = handler.Handle(ctx, SubmitStudentCommand{
		Name: "", Age: 21, Email: "bob@example.com", StudentID: "S-002",
	})
	require.Error(t, err)
	assert.Equal(t, 1, cache.students)
}

func TestSubmitCourse_CacheInvalidation(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	cache := &cacheRecorder{}
	handler := NewSubmitCourseHandler(repos.Courses, repos.Instructors, cache)

	_, err := handler.Handle(ctx, SubmitCourseCommand{CourseID: "CS-201", CourseName: "Algorithms"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.courses)
	assert.Equal(t, 1, cache.instructors)

	_, err = handler.Handle(ctx, SubmitCourseCommand{CourseID: "CS-201", CourseName: "Algorithms"})
	require.Error(t, err)
	assert.Equal(t, 1, cache.courses)
}

func TestSubmitCourse_InstructorOptional(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	handler := NewSubmitCourseHandler(repos.Courses, repos.Instructors, nil)

	res, err := handler.Handle(ctx, SubmitCourseCommand{
		CourseID:   "CS-201",
		CourseName: "Algorithms",
	})
	require.NoError(t, err)
	assert.False(t, res.Course.HasInstructor())
}

func TestSubmitCourse_UnknownInstructor(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	handler := NewSubmitCourseHandler(repos.Courses, repos.Instructors, nil)

	_, err := handler.Handle(ctx, SubmitCourseCommand{
		CourseID:     "CS-201",
		CourseName:   "Algorithms",
		InstructorID: "I-404",
	})
	assert.ErrorIs(t, err, shared.ErrInstructorNotFound)

	// Nothing was written.
	_, err = repos.Courses.GetByCourseID(ctx, "CS-201")
	assert.ErrorIs(t, err, shared.ErrCourseNotFound)
}

func TestSubmitCourse_DuplicateNamePermitted(t *testing.T) {
	repos := newTestRepos()
	handler := NewSubmitCourseHandler(repos.Courses, repos.Instructors, nil)

	submitCourse(t, repos, "Algorithms", "CS-201", "")

	_, err := handler.Handle(context.Background(), SubmitCourseCommand{
		CourseID:   "CS-201",
		CourseName: "Other Name",
	})
	assert.ErrorIs(t, err, shared.ErrCourseExists)

	// Same name under a new id is fine.
	_, err = handler.Handle(context.Background(), SubmitCourseCommand{
		CourseID:   "CS-202",
		CourseName: "Algorithms",
	})
	assert.NoError(t, err)
}

func TestRegisterStudent(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	handler := NewRegisterStudentHandler(repos.Students, repos.Courses, repos.Enrollments, nil)

	submitStudent(t, repos, "Alice", "S-001", "alice@example.com")
	submitCourse(t, repos, "Algorithms", "CS-201", "")

	res, err := handler.Handle(ctx, RegisterStudentCommand{StudentRef: "S-001", CourseRef: "CS-201"})
	require.NoError(t, err)
	assert.False(t, res.AlreadyRegistered)
	assert.Equal(t, []string{"CS-201"}, res.Student.RegisteredCourses)
	assert.Equal(t, []string{"S-001"}, res.Course.EnrolledStudents)

	enrollments, err := repos.Enrollments.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
}

func TestRegisterStudent_ByName(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	handler := NewRegisterStudentHandler(repos.Students, repos.Courses, repos.Enrollments, nil)

	submitStudent(t, repos, "Alice Johnson", "S-001", "alice@example.com")
	submitCourse(t, repos, "Algorithms", "CS-201", "")

	res, err := handler.Handle(ctx, RegisterStudentCommand{
		StudentRef: "Alice Johnson",
		CourseRef:  "Algorithms",
	})
	require.NoError(t, err)
	assert.Equal(t, "S-001", res.Student.StudentID)
	assert.Equal(t, "CS-201", res.Course.CourseID)
}

func TestRegisterStudent_DuplicateIsInformational(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	handler := NewRegisterStudentHandler(repos.Students, repos.Courses, repos.Enrollments, nil)

	submitStudent(t, repos, "Alice", "S-001", "alice@example.com")
	submitCourse(t, repos, "Algorithms", "CS-201", "")

	_, err := handler.Handle(ctx, RegisterStudentCommand{StudentRef: "S-001", CourseRef: "CS-201"})
	require.NoError(t, err)

	// The repeat is a no-op, not an error.
	res, err := handler.Handle(ctx, RegisterStudentCommand{StudentRef: "S-001", CourseRef: "CS-201"})
	require.NoError(t, err)
	assert.True(t, res.AlreadyRegistered)

	enrollments, err := repos.Enrollments.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, enrollments, 1)
}

func TestRegisterStudent_CacheInvalidation(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	cache := &cacheRecorder{}
	handler := NewRegisterStudentHandler(repos.Students, repos.Courses, repos.Enrollments, cache)

	submitStudent(t, repos, "Alice", "S-001", "alice@example.com")
	submitCourse(t, repos, "Algorithms", "CS-201", "")

	_, err := handler.Handle(ctx, RegisterStudentCommand{StudentRef: "S-001", CourseRef: "CS-201"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.students)
	assert.Equal(t, 1, cache.courses)

	// The informational repeat writes nothing, so the cache stays put.
	res, err := handler.Handle(ctx, RegisterStudentCommand{StudentRef: "S-001", CourseRef: "CS-201"})
	require.NoError(t, err)
	assert.True(t, res.AlreadyRegistered)
	assert.Equal(t, 1, cache.students)
	assert.Equal(t, 1, cache.courses)
}

func TestRegisterStudent_UnknownRefs(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	handler := NewRegisterStudentHandler(repos.Students, repos.Courses, repos.Enrollments, nil)

	submitStudent(t, repos, "Alice", "S-001", "alice@example.com")

	_, err := handler.Handle(ctx, RegisterStudentCommand{StudentRef: "S-404", CourseRef: "CS-201"})
	assert.ErrorIs(t, err, shared.ErrStudentNotFound)

	_, err = handler.Handle(ctx, RegisterStudentCommand{StudentRef: "S-001", CourseRef: "CS-404"})
	assert.ErrorIs(t, err, shared.ErrCourseNotFound)
}

func TestAssignInstructor(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	handler := NewAssignInstructorHandler(repos.Courses, repos.Instructors, nil)

	submitInstructor(t, repos, "Grace Hopper", "I-001", "grace@navy.mil")
	submitCourse(t, repos, "Compilers", "CS-301", "")

	res, err := handler.Handle(ctx, AssignInstructorCommand{CourseRef: "CS-301", InstructorRef: "I-001"})
	require.NoError(t, err)
	assert.False(t, res.Replaced)
	assert.Equal(t, "I-001", res.Course.InstructorID)

	got, err := repos.Courses.GetByCourseID(ctx, "CS-301")
	require.NoError(t, err)
	assert.Equal(t, "I-001", got.InstructorID)
}

func TestAssignInstructor_ReassignmentOverwrites(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	handler := NewAssignInstructorHandler(repos.Courses, repos.Instructors, nil)

	submitInstructor(t, repos, "Grace Hopper", "I-001", "grace@navy.mil")
	submitInstructor(t, repos, "Alan Kay", "I-002", "alan@parc.org")
	submitCourse(t, repos, "Compilers", "CS-301", "I-001")

	res, err := handler.Handle(ctx, AssignInstructorCommand{CourseRef: "CS-301", InstructorRef: "I-002"})
	require.NoError(t, err)
	assert.True(t, res.Replaced)
	assert.Equal(t, "I-002", res.Course.InstructorID)
}

func TestAssignInstructor_Unknown(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	handler := NewAssignInstructorHandler(repos.Courses, repos.Instructors, nil)

	submitCourse(t, repos, "Compilers", "CS-301", "")

	_, err := handler.Handle(ctx, AssignInstructorCommand{CourseRef: "CS-301", InstructorRef: "I-404"})
	assert.ErrorIs(t, err, shared.ErrInstructorNotFound)

	_, err = handler.Handle(ctx, AssignInstructorCommand{CourseRef: "CS-404", InstructorRef: "I-001"})
	assert.ErrorIs(t, err, shared.ErrCourseNotFound)
}

func TestUpdateStudent(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	handler := NewUpdateRecordHandler(repos, nil)

	submitStudent(t, repos, "Alice", "S-001", "alice@example.com")

	updated, err := handler.HandleStudent(ctx, UpdateStudentCommand{
		StudentID: "S-001",
		Name:      "Alice Johnson",
		Age:       21,
		Email:     "alice.j@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", updated.Name)

	got, err := repos.Students.GetByStudentID(ctx, "S-001")
	require.NoError(t, err)
	assert.Equal(t, 21, got.Age)
	assert.Equal(t, "alice.j@example.com", got.Email)
}

func TestUpdateStudent_InvalidEmail(t *testing.T) {
	repos := newTestRepos()
	handler := NewUpdateRecordHandler(repos, nil)

	submitStudent(t, repos, "Alice", "S-001", "alice@example.com")

	_, err := handler.HandleStudent(context.Background(), UpdateStudentCommand{
		StudentID: "S-001",
		Name:      "Alice",
		Age:       21,
		Email:     "broken",
	})
	assert.ErrorIs(t, err, shared.ErrInvalidFormat)
}

func TestRemoveStudent(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	handler := NewRemoveRecordHandler(repos, nil)

	submitStudent(t, repos, "Alice", "S-001", "alice@example.com")

	require.NoError(t, handler.RemoveStudent(ctx, "S-001"))

	_, err := repos.Students.GetByStudentID(ctx, "S-001")
	assert.ErrorIs(t, err, shared.ErrStudentNotFound)

	err = handler.RemoveStudent(ctx, "S-001")
	assert.ErrorIs(t, err, shared.ErrStudentNotFound)
}
