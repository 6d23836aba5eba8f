package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-hub/campus-registry/internal/application/command"
	"github.com/campus-hub/campus-registry/internal/domain/roster"
	"github.com/campus-hub/campus-registry/internal/domain/shared"
	"github.com/campus-hub/campus-registry/internal/infrastructure/persistence/jsonfile"
)

// entityCache is an in-memory RosterEntityCache keyed by natural id.
type entityCache struct {
	students    map[string]*roster.Student
	instructors map[string]*roster.Instructor
	courses     map[string]*roster.Course
}

func newEntityCache() *entityCache {
	return &entityCache{
		students:    make(map[string]*roster.Student),
		instructors: make(map[string]*roster.Instructor),
		courses:     make(map[string]*roster.Course),
	}
}

var errMiss = errors.New("miss")

func (c *entityCache) GetStudent(ctx context.Context, id string) (*roster.Student, error) {
	if s, ok := c.students[id]; ok {
		return s, nil
	}
	return nil, errMiss
}

func (c *entityCache) SetStudent(ctx context.Context, s *roster.Student) error {
	c.students[s.StudentID] = s
	return nil
}

func (c *entityCache) GetInstructor(ctx context.Context, id string) (*roster.Instructor, error) {
	if i, ok := c.instructors[id]; ok {
		return i, nil
	}
	return nil, errMiss
}

func (c *entityCache) SetInstructor(ctx context.Context, i *roster.Instructor) error {
	c.instructors[i.InstructorID] = i
	return nil
}

func (c *entityCache) GetCourse(ctx context.Context, id string) (*roster.Course, error) {
	if course, ok := c.courses[id]; ok {
		return course, nil
	}
	return nil, errMiss
}

func (c *entityCache) SetCourse(ctx context.Context, course *roster.Course) error {
	c.courses[course.CourseID] = course
	return nil
}

// seedRegistry builds a small registry through the write side so the
// queries see realistic state.
func seedRegistry(t *testing.T) roster.Repositories {
	t.Helper()
	ctx := context.Background()
	repos := jsonfile.New("").Repositories()

	_, err := command.NewSubmitInstructorHandler(repos.Instructors, nil).Handle(ctx, command.SubmitInstructorCommand{
		Name: "Grace Hopper", Age: 45, Email: "grace@navy.mil", InstructorID: "I-001",
	})
	require.NoError(t, err)

	_, err = command.NewSubmitCourseHandler(repos.Courses, repos.Instructors, nil).Handle(ctx, command.SubmitCourseCommand{
		CourseID: "CS-301", CourseName: "Compilers", InstructorID: "I-001",
	})
	require.NoError(t, err)

	students := []command.SubmitStudentCommand{
		{Name: "Alice Johnson", Age: 20, Email: "alice@example.com", StudentID: "S-001"},
		{Name: "Bob Smith", Age: 22, Email: "bob@example.com", StudentID: "S-002"},
	}
	for _, cmd := range students {
		_, err = command.NewSubmitStudentHandler(repos.Students, nil).Handle(ctx, cmd)
		require.NoError(t, err)
	}

	_, err = command.NewRegisterStudentHandler(repos.Students, repos.Courses, repos.Enrollments, nil).Handle(ctx, command.RegisterStudentCommand{
		StudentRef: "S-001", CourseRef: "CS-301",
	})
	require.NoError(t, err)

	return repos
}

func TestSearch(t *testing.T) {
	repos := seedRegistry(t)
	handler := NewSearchHandler(repos)

	tests := []struct {
		name            string
		term            string
		wantStudents    int
		wantInstructors int
		wantCourses     int
	}{
		{"student name substring", "Johns", 1, 0, 0},
		{"student natural id", "S-002", 1, 0, 0},
		{"instructor name", "Grace", 0, 1, 0},
		{"course name", "Compil", 0, 0, 1},
		{"case sensitive miss", "johns", 0, 0, 0},
		{"no match", "Nothing", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := handler.Handle(context.Background(), SearchQuery{Term: tt.term})
			require.NoError(t, err)
			assert.Len(t, res.Students, tt.wantStudents)
			assert.Len(t, res.Instructors, tt.wantInstructors)
			assert.Len(t, res.Courses, tt.wantCourses)
		})
	}
}

func TestSearch_EmptyTerm(t *testing.T) {
	handler := NewSearchHandler(seedRegistry(t))

	_, err := handler.Handle(context.Background(), SearchQuery{})
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	handler := NewListHandler(seedRegistry(t), nil)

	students, err := handler.Students(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 2)

	instructors, err := handler.Instructors(ctx)
	require.NoError(t, err)
	assert.Len(t, instructors, 1)

	courses, err := handler.Courses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "I-001", courses[0].InstructorID)

	enrollments, err := handler.Enrollments(ctx)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, "S-001", enrollments[0].StudentID)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	handler := NewGetHandler(seedRegistry(t), nil)

	s, err := handler.Student(ctx, "S-001")
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", s.Name)

	i, err := handler.Instructor(ctx, "I-001")
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", i.Name)

	c, err := handler.Course(ctx, "CS-301")
	require.NoError(t, err)
	assert.Equal(t, []string{"S-001"}, c.EnrolledStudents)

	_, err = handler.Student(ctx, "S-404")
	assert.ErrorIs(t, err, shared.ErrStudentNotFound)
}

func TestGet_PopulatesAndPrefersCache(t *testing.T) {
	ctx := context.Background()
	cache := newEntityCache()
	handler := NewGetHandler(seedRegistry(t), cache)

	// A miss falls through to the repository and fills the cache.
	s, err := handler.Student(ctx, "S-001")
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", s.Name)
	require.Contains(t, cache.students, "S-001")

	// Once cached, the repository is no longer consulted.
	cache.students["S-001"].Name = "Cached Alice"
	s, err = handler.Student(ctx, "S-001")
	require.NoError(t, err)
	assert.Equal(t, "Cached Alice", s.Name)

	_, err = handler.Instructor(ctx, "I-001")
	require.NoError(t, err)
	assert.Contains(t, cache.instructors, "I-001")

	_, err = handler.Course(ctx, "CS-301")
	require.NoError(t, err)
	assert.Contains(t, cache.courses, "CS-301")
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	handler := NewExportHandler(NewListHandler(seedRegistry(t), nil))

	students, err := handler.Handle(ctx, ExportStudents)
	require.NoError(t, err)
	require.Len(t, students, 3)
	assert.Equal(t, []string{"student_id", "name", "age", "email", "registered_courses"}, students[0])
	assert.Equal(t, []string{"S-001", "Alice Johnson", "20", "alice@example.com", "CS-301"}, students[1])

	courses, err := handler.Handle(ctx, ExportCourses)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, []string{"CS-301", "Compilers", "I-001", "S-001"}, courses[1])

	enrollments, err := handler.Handle(ctx, ExportEnrollments)
	require.NoError(t, err)
	require.Len(t, enrollments, 2)
	assert.Equal(t, []string{"S-001", "Alice Johnson", "CS-301", "Compilers"}, enrollments[1])

	_, err = handler.Handle(ctx, "bogus")
	assert.Error(t, err)
}
