package command

import (
	"context"
	"fmt"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
)

// ══════════════════════════════════════════════════════════════════════════════
// REMOVE RECORD COMMANDS
// Deletions by natural key. Removing a student drops its enrollments,
// removing a course drops its roster, removing an instructor leaves
// its courses without one.
// ══════════════════════════════════════════════════════════════════════════════

// RemoveRecordHandler handles record removal for all entity kinds.
type RemoveRecordHandler struct {
	repos roster.Repositories
	cache CacheInvalidator
}

// NewRemoveRecordHandler creates a new RemoveRecordHandler.
func NewRemoveRecordHandler(repos roster.Repositories, cache CacheInvalidator) *RemoveRecordHandler {
	return &RemoveRecordHandler{
		repos: repos,
		cache: cache,
	}
}

// RemoveStudent deletes a student by natural key.
func (h *RemoveRecordHandler) RemoveStudent(ctx context.Context, studentID string) error {
	student, err := h.repos.Students.GetByStudentID(ctx, studentID)
	if err != nil {
		return err
	}

	if err := h.repos.Students.Delete(ctx, student.ID); err != nil {
		return fmt.Errorf("remove_student: failed to delete: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.InvalidateStudents(ctx)
		_ = h.cache.InvalidateCourses(ctx)
	}
	return nil
}

// RemoveInstructor deletes an instructor by natural key.
func (h *RemoveRecordHandler) RemoveInstructor(ctx context.Context, instructorID string) error {
	instructor, err := h.repos.Instructors.GetByInstructorID(ctx, instructorID)
	if err != nil {
		return err
	}

	if err := h.repos.Instructors.Delete(ctx, instructor.ID); err != nil {
		return fmt.Errorf("remove_instructor: failed to delete: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.InvalidateInstructors(ctx)
	}
	return nil
}

// RemoveCourse deletes a course by natural key.
func (h *RemoveRecordHandler) RemoveCourse(ctx context.Context, courseID string) error {
	course, err := h.repos.Courses.GetByCourseID(ctx, courseID)
	if err != nil {
		return err
	}

	if err := h.repos.Courses.Delete(ctx, course.ID); err != nil {
		return fmt.Errorf("remove_course: failed to delete: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.InvalidateCourses(ctx)
		_ = h.cache.InvalidateStudents(ctx)
		_ = h.cache.InvalidateInstructors(ctx)
	}
	return nil
}
