// Package command contains write operations (CQRS - Commands).
// Commands validate their input, enforce the duplicate contracts
// against the repositories, and invalidate the affected cache keys
// after a successful write.
package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
	"github.com/campus-hub/campus-registry/internal/domain/shared"
)

// CacheInvalidator is the slice of the roster cache the write side
// needs: dropping stale keys after a commit. A nil implementation is
// permitted for cache-less deployments.
type CacheInvalidator interface {
	InvalidateStudents(ctx context.Context) error
	InvalidateInstructors(ctx context.Context) error
	InvalidateCourses(ctx context.Context) error
}

// ══════════════════════════════════════════════════════════════════════════════
// SUBMIT STUDENT COMMAND
// Validates and persists a new student record.
// ══════════════════════════════════════════════════════════════════════════════

// SubmitStudentCommand contains the data needed to create a student.
type SubmitStudentCommand struct {
	// Name is the student's display name.
	Name string

	// Age is the student's age in years. Zero is valid.
	Age int

	// Email is the student's email address.
	Email string

	// StudentID is the caller-supplied natural key.
	StudentID string
}

// SubmitStudentResult contains the result of the submission.
type SubmitStudentResult struct {
	// Student is the persisted record, internal id assigned.
	Student *roster.Student
}

// SubmitStudentHandler handles the SubmitStudentCommand.
type SubmitStudentHandler struct {
	students roster.StudentRepository
	cache    CacheInvalidator
}

// NewSubmitStudentHandler creates a new SubmitStudentHandler.
func NewSubmitStudentHandler(students roster.StudentRepository, cache CacheInvalidator) *SubmitStudentHandler {
	return &SubmitStudentHandler{
		students: students,
		cache:    cache,
	}
}

// Handle executes the submit student command. Validation failures and
// the duplicate check both reject the record before any write happens.
func (h *SubmitStudentHandler) Handle(ctx context.Context, cmd SubmitStudentCommand) (*SubmitStudentResult, error) {
	student, err := roster.NewStudent(roster.NewStudentParams{
		Name:      cmd.Name,
		Age:       cmd.Age,
		Email:     cmd.Email,
		StudentID: cmd.StudentID,
	})
	if err != nil {
		return nil, fmt.Errorf("submit_student: validation failed: %w", err)
	}

	exists, err := h.students.ExistsByKeyOrEmail(ctx, student.StudentID, student.Email)
	if err != nil {
		return nil, fmt.Errorf("submit_student: duplicate check failed: %w", err)
	}
	if exists {
		return nil, shared.ErrStudentExists
	}

	student.ID = uuid.NewString()
	if err := h.students.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("submit_student: failed to persist: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.InvalidateStudents(ctx)
	}

	return &SubmitStudentResult{Student: student}, nil
}
