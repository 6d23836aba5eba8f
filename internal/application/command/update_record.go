package command

import (
	"context"
	"fmt"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
	"github.com/campus-hub/campus-registry/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE RECORD COMMANDS
// Edits to existing records. Natural keys are immutable; only the
// descriptive fields can change.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateStudentCommand replaces a student's descriptive fields.
type UpdateStudentCommand struct {
	// StudentID is the natural key of the record to update.
	StudentID string

	// Name, Age, Email are the new field values. All are validated
	// with the same rules as on submission.
	Name  string
	Age   int
	Email string
}

// UpdateInstructorCommand replaces an instructor's descriptive fields.
type UpdateInstructorCommand struct {
	// InstructorID is the natural key of the record to update.
	InstructorID string

	Name  string
	Age   int
	Email string
}

// UpdateCourseCommand replaces a course's display name.
type UpdateCourseCommand struct {
	// CourseID is the natural key of the record to update.
	CourseID string

	CourseName string
}

// UpdateRecordHandler handles all three update commands.
type UpdateRecordHandler struct {
	repos roster.Repositories
	cache CacheInvalidator
}

// NewUpdateRecordHandler creates a new UpdateRecordHandler.
func NewUpdateRecordHandler(repos roster.Repositories, cache CacheInvalidator) *UpdateRecordHandler {
	return &UpdateRecordHandler{
		repos: repos,
		cache: cache,
	}
}

// HandleStudent updates a student record.
func (h *UpdateRecordHandler) HandleStudent(ctx context.Context, cmd UpdateStudentCommand) (*roster.Student, error) {
	existing, err := h.repos.Students.GetByStudentID(ctx, cmd.StudentID)
	if err != nil {
		return nil, err
	}

	updated, err := roster.NewStudent(roster.NewStudentParams{
		Name:      cmd.Name,
		Age:       cmd.Age,
		Email:     cmd.Email,
		StudentID: existing.StudentID,
	})
	if err != nil {
		return nil, fmt.Errorf("update_student: validation failed: %w", err)
	}

	updated.ID = existing.ID
	updated.RegisteredCourses = existing.RegisteredCourses

	if err := h.repos.Students.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("update_student: failed to persist: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.InvalidateStudents(ctx)
	}
	return updated, nil
}

// HandleInstructor updates an instructor record.
func (h *UpdateRecordHandler) HandleInstructor(ctx context.Context, cmd UpdateInstructorCommand) (*roster.Instructor, error) {
	existing, err := h.repos.Instructors.GetByInstructorID(ctx, cmd.InstructorID)
	if err != nil {
		return nil, err
	}

	updated, err := roster.NewInstructor(roster.NewInstructorParams{
		Name:         cmd.Name,
		Age:          cmd.Age,
		Email:        cmd.Email,
		InstructorID: existing.InstructorID,
	})
	if err != nil {
		return nil, fmt.Errorf("update_instructor: validation failed: %w", err)
	}

	updated.ID = existing.ID
	updated.AssignedCourses = existing.AssignedCourses

	if err := h.repos.Instructors.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("update_instructor: failed to persist: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.InvalidateInstructors(ctx)
	}
	return updated, nil
}

// HandleCourse updates a course record.
func (h *UpdateRecordHandler) HandleCourse(ctx context.Context, cmd UpdateCourseCommand) (*roster.Course, error) {
	existing, err := h.repos.Courses.GetByCourseID(ctx, cmd.CourseID)
	if err != nil {
		return nil, err
	}

	name, err := shared.ValidateRequired(cmd.CourseName, "course_name")
	if err != nil {
		return nil, fmt.Errorf("update_course: validation failed: %w", err)
	}

	existing.CourseName = name
	if err := h.repos.Courses.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update_course: failed to persist: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.InvalidateCourses(ctx)
	}
	return existing, nil
}
