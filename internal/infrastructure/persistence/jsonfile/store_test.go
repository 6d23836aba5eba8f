package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
	"github.com/campus-hub/campus-registry/internal/domain/shared"
)

func newTestStudent(t *testing.T, name, studentID, email string) *roster.Student {
	t.Helper()
	s, err := roster.NewStudent(roster.NewStudentParams{
		Name:      name,
		Age:       20,
		Email:     email,
		StudentID: studentID,
	})
	require.NoError(t, err)
	return s
}

func newTestInstructor(t *testing.T, name, instructorID, email string) *roster.Instructor {
	t.Helper()
	i, err := roster.NewInstructor(roster.NewInstructorParams{
		Name:         name,
		Age:          45,
		Email:        email,
		InstructorID: instructorID,
	})
	require.NoError(t, err)
	return i
}

func newTestCourse(t *testing.T, name, courseID, instructorID string) *roster.Course {
	t.Helper()
	c, err := roster.NewCourse(roster.NewCourseParams{
		CourseID:     courseID,
		CourseName:   name,
		InstructorID: instructorID,
	})
	require.NoError(t, err)
	return c
}

func TestOpen_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")

	store, err := Open(path)
	require.NoError(t, err)

	students, err := store.Repositories().Students.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestLoad_MissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "registry.json"))

	err := store.Load()
	assert.ErrorIs(t, err, ErrStateMissing)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrStateCorrupt)
}

func TestLoad_MalformedRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	// Valid JSON but the student is missing required keys.
	state := `{"students": [{"name": "Alice"}], "instructors": [], "courses": []}`
	require.NoError(t, os.WriteFile(path, []byte(state), 0o644))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrStateCorrupt)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "registry.json")

	store := New(path)
	repos := store.Repositories()

	instructor := newTestInstructor(t, "Grace Hopper", "I-001", "grace@navy.mil")
	require.NoError(t, repos.Instructors.Create(ctx, instructor))

	course := newTestCourse(t, "Compilers", "CS-301", "I-001")
	require.NoError(t, repos.Courses.Create(ctx, course))

	student := newTestStudent(t, "Alice", "S-001", "alice@example.com")
	require.NoError(t, repos.Students.Create(ctx, student))
	require.NoError(t, repos.Enrollments.Enroll(ctx, student.ID, course.ID))

	reloaded, err := Open(path)
	require.NoError(t, err)
	rr := reloaded.Repositories()

	gotStudent, err := rr.Students.GetByStudentID(ctx, "S-001")
	require.NoError(t, err)
	assert.Equal(t, "Alice", gotStudent.Name)
	assert.Equal(t, []string{"CS-301"}, gotStudent.RegisteredCourses)

	gotCourse, err := rr.Courses.GetByCourseID(ctx, "CS-301")
	require.NoError(t, err)
	assert.Equal(t, "I-001", gotCourse.InstructorID)
	assert.Equal(t, []string{"S-001"}, gotCourse.EnrolledStudents)

	// The join state is rebuilt from the student view on load.
	enrolled, err := rr.Enrollments.IsEnrolled(ctx, gotStudent.ID, gotCourse.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestStudentStore_DuplicateKeyOrEmail(t *testing.T) {
	ctx := context.Background()
	repos := New("").Repositories()

	require.NoError(t, repos.Students.Create(ctx, newTestStudent(t, "Alice", "S-001", "alice@example.com")))

	tests := []struct {
		name      string
		studentID string
		email     string
	}{
		{"same natural id", "S-001", "other@example.com"},
		{"same email", "S-002", "alice@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repos.Students.Create(ctx, newTestStudent(t, "Bob", tt.studentID, tt.email))
			assert.ErrorIs(t, err, shared.ErrStudentExists)
			assert.True(t, shared.IsDuplicateKey(err))
		})
	}
}

func TestCourseStore_DuplicateByCourseIDOnly(t *testing.T) {
	ctx := context.Background()
	repos := New("").Repositories()

	require.NoError(t, repos.Courses.Create(ctx, newTestCourse(t, "Algorithms", "CS-201", "")))

	// Same natural id is rejected even under a different name.
	err := repos.Courses.Create(ctx, newTestCourse(t, "Algorithms II", "CS-201", ""))
	assert.ErrorIs(t, err, shared.ErrCourseExists)

	// Same name under a different id is fine.
	require.NoError(t, repos.Courses.Create(ctx, newTestCourse(t, "Algorithms", "CS-202", "")))
}

func TestStudentStore_Search(t *testing.T) {
	ctx := context.Background()
	repos := New("").Repositories()

	require.NoError(t, repos.Students.Create(ctx, newTestStudent(t, "Alice Johnson", "S-001", "alice@example.com")))
	require.NoError(t, repos.Students.Create(ctx, newTestStudent(t, "Bob Smith", "S-002", "bob@example.com")))

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"name substring", "Johns", []string{"S-001"}},
		{"exact natural id", "S-002", []string{"S-002"}},
		{"case sensitive", "johns", nil},
		{"no match", "Carol", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repos.Students.Search(ctx, tt.term)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.StudentID)
			}
			if tt.want == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.want, ids)
			}
		})
	}
}

func TestEnrollmentStore_DuplicatePair(t *testing.T) {
	ctx := context.Background()
	repos := New("").Repositories()

	student := newTestStudent(t, "Alice", "S-001", "alice@example.com")
	require.NoError(t, repos.Students.Create(ctx, student))
	course := newTestCourse(t, "Algorithms", "CS-201", "")
	require.NoError(t, repos.Courses.Create(ctx, course))

	require.NoError(t, repos.Enrollments.Enroll(ctx, student.ID, course.ID))

	err := repos.Enrollments.Enroll(ctx, student.ID, course.ID)
	assert.ErrorIs(t, err, shared.ErrEnrollmentDuplicate)

	// The views reflect the single join row.
	got, err := repos.Students.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"CS-201"}, got.RegisteredCourses)
}

func TestEnrollmentStore_ListAll(t *testing.T) {
	ctx := context.Background()
	repos := New("").Repositories()

	student := newTestStudent(t, "Alice", "S-001", "alice@example.com")
	require.NoError(t, repos.Students.Create(ctx, student))
	course := newTestCourse(t, "Algorithms", "CS-201", "")
	require.NoError(t, repos.Courses.Create(ctx, course))
	require.NoError(t, repos.Enrollments.Enroll(ctx, student.ID, course.ID))

	enrollments, err := repos.Enrollments.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, roster.Enrollment{
		StudentName: "Alice",
		StudentID:   "S-001",
		CourseName:  "Algorithms",
		CourseID:    "CS-201",
	}, enrollments[0])
}

func TestCourseStore_AssignInstructor(t *testing.T) {
	ctx := context.Background()
	repos := New("").Repositories()

	first := newTestInstructor(t, "Grace Hopper", "I-001", "grace@navy.mil")
	require.NoError(t, repos.Instructors.Create(ctx, first))
	second := newTestInstructor(t, "Alan Kay", "I-002", "alan@parc.org")
	require.NoError(t, repos.Instructors.Create(ctx, second))

	course := newTestCourse(t, "Compilers", "CS-301", "")
	require.NoError(t, repos.Courses.Create(ctx, course))

	require.NoError(t, repos.Courses.AssignInstructor(ctx, course.ID, first.ID))

	got, err := repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "I-001", got.InstructorID)

	// Reassignment overwrites and the previous holder loses the course.
	require.NoError(t, repos.Courses.AssignInstructor(ctx, course.ID, second.ID))

	got, err = repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "I-002", got.InstructorID)

	prev, err := repos.Instructors.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, prev.AssignedCourses)
}

func TestCourseStore_AssignInstructor_NotFound(t *testing.T) {
	ctx := context.Background()
	repos := New("").Repositories()

	course := newTestCourse(t, "Compilers", "CS-301", "")
	require.NoError(t, repos.Courses.Create(ctx, course))

	err := repos.Courses.AssignInstructor(ctx, course.ID, "missing")
	assert.ErrorIs(t, err, shared.ErrInstructorNotFound)

	err = repos.Courses.AssignInstructor(ctx, "missing", course.ID)
	assert.ErrorIs(t, err, shared.ErrCourseNotFound)
}

func TestStudentStore_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	repos := New("").Repositories()

	student := newTestStudent(t, "Alice", "S-001", "alice@example.com")
	require.NoError(t, repos.Students.Create(ctx, student))
	course := newTestCourse(t, "Algorithms", "CS-201", "")
	require.NoError(t, repos.Courses.Create(ctx, course))
	require.NoError(t, repos.Enrollments.Enroll(ctx, student.ID, course.ID))

	require.NoError(t, repos.Students.Delete(ctx, student.ID))

	_, err := repos.Students.GetByID(ctx, student.ID)
	assert.ErrorIs(t, err, shared.ErrStudentNotFound)

	got, err := repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, got.EnrolledStudents)

	enrollments, err := repos.Enrollments.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, enrollments)
}

func TestInstructorStore_DeleteClearsCourses(t *testing.T) {
	ctx := context.Background()
	repos := New("").Repositories()

	instructor := newTestInstructor(t, "Grace Hopper", "I-001", "grace@navy.mil")
	require.NoError(t, repos.Instructors.Create(ctx, instructor))
	course := newTestCourse(t, "Compilers", "CS-301", "I-001")
	require.NoError(t, repos.Courses.Create(ctx, course))

	require.NoError(t, repos.Instructors.Delete(ctx, instructor.ID))

	got, err := repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.False(t, got.HasInstructor())
}

func TestStoreReads_ReturnClones(t *testing.T) {
	ctx := context.Background()
	repos := New("").Repositories()

	student := newTestStudent(t, "Alice", "S-001", "alice@example.com")
	require.NoError(t, repos.Students.Create(ctx, student))

	got, err := repos.Students.GetByID(ctx, student.ID)
	require.NoError(t, err)
	got.Name = "mutated"
	got.RegisterCourse("CS-999")

	again, err := repos.Students.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name)
	assert.Empty(t, again.RegisteredCourses)
}
