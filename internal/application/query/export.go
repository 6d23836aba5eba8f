package query

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// ══════════════════════════════════════════════════════════════════════════════
// EXPORT QUERY
// Tabular snapshots of the registry, one table per entity kind. The
// caller decides the output encoding (CSV in the CLI).
// ══════════════════════════════════════════════════════════════════════════════

// Export kinds accepted by ExportHandler.Handle.
const (
	ExportStudents    = "students"
	ExportInstructors = "instructors"
	ExportCourses     = "courses"
	ExportEnrollments = "enrollments"
)

// ExportHandler renders registry tables. It reads through ListHandler
// so exports see the same cache behavior as listings.
type ExportHandler struct {
	lists *ListHandler
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(lists *ListHandler) *ExportHandler {
	return &ExportHandler{lists: lists}
}

// Handle returns the table for the given kind, header row first.
func (h *ExportHandler) Handle(ctx context.Context, kind string) ([][]string, error) {
	switch kind {
	case ExportStudents:
		return h.studentTable(ctx)
	case ExportInstructors:
		return h.instructorTable(ctx)
	case ExportCourses:
		return h.courseTable(ctx)
	case ExportEnrollments:
		return h.enrollmentTable(ctx)
	default:
		return nil, fmt.Errorf("export: unknown kind %q", kind)
	}
}

func (h *ExportHandler) studentTable(ctx context.Context) ([][]string, error) {
	students, err := h.lists.Students(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(students)+1)
	rows = append(rows, []string{"student_id", "name", "age", "email", "registered_courses"})
	for _, s := range students {
		rows = append(rows, []string{
			s.StudentID,
			s.Name,
			strconv.Itoa(s.Age),
			s.Email,
			strings.Join(s.RegisteredCourses, ";"),
		})
	}
	return rows, nil
}

func (h *ExportHandler) instructorTable(ctx context.Context) ([][]string, error) {
	instructors, err := h.lists.Instructors(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(instructors)+1)
	rows = append(rows, []string{"instructor_id", "name", "age", "email", "assigned_courses"})
	for _, i := range instructors {
		rows = append(rows, []string{
			i.InstructorID,
			i.Name,
			strconv.Itoa(i.Age),
			i.Email,
			strings.Join(i.AssignedCourses, ";"),
		})
	}
	return rows, nil
}

func (h *ExportHandler) courseTable(ctx context.Context) ([][]string, error) {
	courses, err := h.lists.Courses(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(courses)+1)
	rows = append(rows, []string{"course_id", "course_name", "instructor_id", "enrolled_students"})
	for _, c := range courses {
		rows = append(rows, []string{
			c.CourseID,
			c.CourseName,
			c.InstructorID,
			strings.Join(c.EnrolledStudents, ";"),
		})
	}
	return rows, nil
}

func (h *ExportHandler) enrollmentTable(ctx context.Context) ([][]string, error) {
	enrollments, err := h.lists.Enrollments(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(enrollments)+1)
	rows = append(rows, []string{"student_id", "student_name", "course_id", "course_name"})
	for _, e := range enrollments {
		rows = append(rows, []string{e.StudentID, e.StudentName, e.CourseID, e.CourseName})
	}
	return rows, nil
}
