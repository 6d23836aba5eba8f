package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
	"github.com/campus-hub/campus-registry/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBMIT COURSE COMMAND
// Validates and persists a new course record. The instructor reference
// is optional but must resolve when present.
// ══════════════════════════════════════════════════════════════════════════════

// SubmitCourseCommand contains the data needed to create a course.
type SubmitCourseCommand struct {
	// CourseID is the caller-supplied natural key.
	CourseID string

	// CourseName is the display name. Names are not unique.
	CourseName string

	// InstructorID optionally references an existing instructor by
	// natural id. Empty means the course starts without one.
	InstructorID string
}

// SubmitCourseResult contains the result of the submission.
type SubmitCourseResult struct {
	// Course is the persisted record, internal id assigned.
	Course *roster.Course
}

// SubmitCourseHandler handles the SubmitCourseCommand.
type SubmitCourseHandler struct {
	courses     roster.CourseRepository
	instructors roster.InstructorRepository
	cache       CacheInvalidator
}

// NewSubmitCourseHandler creates a new SubmitCourseHandler.
func NewSubmitCourseHandler(
	courses roster.CourseRepository,
	instructors roster.InstructorRepository,
	cache CacheInvalidator,
) *SubmitCourseHandler {
	return &SubmitCourseHandler{
		courses:     courses,
		instructors: instructors,
		cache:       cache,
	}
}

// Handle executes the submit course command. An instructor reference
// that does not resolve rejects the whole submission; nothing is
// written in that case.
func (h *SubmitCourseHandler) Handle(ctx context.Context, cmd SubmitCourseCommand) (*SubmitCourseResult, error) {
	course, err := roster.NewCourse(roster.NewCourseParams{
		CourseID:     cmd.CourseID,
		CourseName:   cmd.CourseName,
		InstructorID: cmd.InstructorID,
	})
	if err != nil {
		return nil, fmt.Errorf("submit_course: validation failed: %w", err)
	}

	if course.HasInstructor() {
		if _, err := h.instructors.GetByInstructorID(ctx, course.InstructorID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.ErrInstructorNotFound
			}
			return nil, fmt.Errorf("submit_course: instructor lookup failed: %w", err)
		}
	}

	exists, err := h.courses.ExistsByCourseID(ctx, course.CourseID)
	if err != nil {
		return nil, fmt.Errorf("submit_course: duplicate check failed: %w", err)
	}
	if exists {
		return nil, shared.ErrCourseExists
	}

	course.ID = uuid.NewString()
	if err := h.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("submit_course: failed to persist: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.InvalidateCourses(ctx)
		_ = h.cache.InvalidateInstructors(ctx)
	}

	return &SubmitCourseResult{Course: course}, nil
}
