package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
	"github.com/campus-hub/campus-registry/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER STUDENT COMMAND
// Enrolls a student in a course. Both sides are referenced loosely:
// by natural id first, by exact name as a fallback.
// ══════════════════════════════════════════════════════════════════════════════

// RegisterStudentCommand contains the references for an enrollment.
type RegisterStudentCommand struct {
	// StudentRef is a student id or an exact student name.
	StudentRef string

	// CourseRef is a course id or an exact course name.
	CourseRef string
}

// Validate validates the command.
func (c RegisterStudentCommand) Validate() error {
	if c.StudentRef == "" {
		return errors.New("register_student: student reference must be provided")
	}
	if c.CourseRef == "" {
		return errors.New("register_student: course reference must be provided")
	}
	return nil
}

// RegisterStudentResult contains the result of the registration.
type RegisterStudentResult struct {
	// Student is the resolved student.
	Student *roster.Student

	// Course is the resolved course.
	Course *roster.Course

	// AlreadyRegistered is true when the pair already existed. The
	// registration is then a no-op, reported informationally rather
	// than as an error.
	AlreadyRegistered bool
}

// RegisterStudentHandler handles the RegisterStudentCommand.
type RegisterStudentHandler struct {
	students    roster.StudentRepository
	courses     roster.CourseRepository
	enrollments roster.EnrollmentRepository
	cache       CacheInvalidator
}

// NewRegisterStudentHandler creates a new RegisterStudentHandler.
func NewRegisterStudentHandler(
	students roster.StudentRepository,
	courses roster.CourseRepository,
	enrollments roster.EnrollmentRepository,
	cache CacheInvalidator,
) *RegisterStudentHandler {
	return &RegisterStudentHandler{
		students:    students,
		courses:     courses,
		enrollments: enrollments,
		cache:       cache,
	}
}

// Handle executes the register student command.
func (h *RegisterStudentHandler) Handle(ctx context.Context, cmd RegisterStudentCommand) (*RegisterStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	student, err := h.resolveStudent(ctx, cmd.StudentRef)
	if err != nil {
		return nil, err
	}

	course, err := h.resolveCourse(ctx, cmd.CourseRef)
	if err != nil {
		return nil, err
	}

	err = h.enrollments.Enroll(ctx, student.ID, course.ID)
	if errors.Is(err, shared.ErrAlreadyEnrolled) {
		return &RegisterStudentResult{
			Student:           student,
			Course:            course,
			AlreadyRegistered: true,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("register_student: failed to enroll: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.InvalidateStudents(ctx)
		_ = h.cache.InvalidateCourses(ctx)
	}

	student.RegisterCourse(course.CourseID)
	course.AddStudent(student.StudentID)

	return &RegisterStudentResult{
		Student: student,
		Course:  course,
	}, nil
}

// resolveStudent tries the natural id first, then the exact name.
func (h *RegisterStudentHandler) resolveStudent(ctx context.Context, ref string) (*roster.Student, error) {
	student, err := h.students.GetByStudentID(ctx, ref)
	if err == nil {
		return student, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("register_student: student lookup failed: %w", err)
	}

	student, err = h.students.GetByName(ctx, ref)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrStudentNotFound
		}
		return nil, fmt.Errorf("register_student: student lookup failed: %w", err)
	}
	return student, nil
}

// resolveCourse tries the natural id first, then the exact name.
func (h *RegisterStudentHandler) resolveCourse(ctx context.Context, ref string) (*roster.Course, error) {
	course, err := h.courses.GetByCourseID(ctx, ref)
	if err == nil {
		return course, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("register_student: course lookup failed: %w", err)
	}

	course, err = h.courses.GetByName(ctx, ref)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrCourseNotFound
		}
		return nil, fmt.Errorf("register_student: course lookup failed: %w", err)
	}
	return course, nil
}
