package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
	"github.com/campus-hub/campus-registry/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ASSIGN INSTRUCTOR COMMAND
// Sets or replaces the instructor of an existing course.
// ══════════════════════════════════════════════════════════════════════════════

// AssignInstructorCommand contains the references for an assignment.
type AssignInstructorCommand struct {
	// CourseRef is a course id or an exact course name.
	CourseRef string

	// InstructorRef is an instructor id or an exact instructor name.
	InstructorRef string
}

// Validate validates the command.
func (c AssignInstructorCommand) Validate() error {
	if c.CourseRef == "" {
		return errors.New("assign_instructor: course reference must be provided")
	}
	if c.InstructorRef == "" {
		return errors.New("assign_instructor: instructor reference must be provided")
	}
	return nil
}

// AssignInstructorResult contains the result of the assignment.
type AssignInstructorResult struct {
	// Course is the course after the assignment.
	Course *roster.Course

	// Instructor is the assigned instructor.
	Instructor *roster.Instructor

	// Replaced is true when the course previously had a different
	// instructor. Reassignment overwrites.
	Replaced bool
}

// AssignInstructorHandler handles the AssignInstructorCommand.
type AssignInstructorHandler struct {
	courses     roster.CourseRepository
	instructors roster.InstructorRepository
	cache       CacheInvalidator
}

// NewAssignInstructorHandler creates a new AssignInstructorHandler.
func NewAssignInstructorHandler(
	courses roster.CourseRepository,
	instructors roster.InstructorRepository,
	cache CacheInvalidator,
) *AssignInstructorHandler {
	return &AssignInstructorHandler{
		courses:     courses,
		instructors: instructors,
		cache:       cache,
	}
}

// Handle executes the assign instructor command.
func (h *AssignInstructorHandler) Handle(ctx context.Context, cmd AssignInstructorCommand) (*AssignInstructorResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	course, err := h.resolveCourse(ctx, cmd.CourseRef)
	if err != nil {
		return nil, err
	}

	instructor, err := h.resolveInstructor(ctx, cmd.InstructorRef)
	if err != nil {
		return nil, err
	}

	replaced := course.HasInstructor() && course.InstructorID != instructor.InstructorID

	if err := h.courses.AssignInstructor(ctx, course.ID, instructor.ID); err != nil {
		return nil, fmt.Errorf("assign_instructor: failed to assign: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.InvalidateCourses(ctx)
		_ = h.cache.InvalidateInstructors(ctx)
	}

	course.SetInstructor(instructor.InstructorID)
	instructor.AssignCourse(course.CourseID)

	return &AssignInstructorResult{
		Course:     course,
		Instructor: instructor,
		Replaced:   replaced,
	}, nil
}

// resolveCourse tries the natural id first, then the exact name.
func (h *AssignInstructorHandler) resolveCourse(ctx context.Context, ref string) (*roster.Course, error) {
	course, err := h.courses.GetByCourseID(ctx, ref)
	if err == nil {
		return course, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("assign_instructor: course lookup failed: %w", err)
	}

	course, err = h.courses.GetByName(ctx, ref)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrCourseNotFound
		}
		return nil, fmt.Errorf("assign_instructor: course lookup failed: %w", err)
	}
	return course, nil
}

// resolveInstructor tries the natural id first, then the exact name.
func (h *AssignInstructorHandler) resolveInstructor(ctx context.Context, ref string) (*roster.Instructor, error) {
	instructor, err := h.instructors.GetByInstructorID(ctx, ref)
	if err == nil {
		return instructor, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("assign_instructor: instructor lookup failed: %w", err)
	}

	instructor, err = h.instructors.GetByName(ctx, ref)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("assign_instructor: instructor lookup failed: %w", err)
	}
	return instructor, nil
}
