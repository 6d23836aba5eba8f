package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
	"github.com/campus-hub/campus-registry/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBMIT INSTRUCTOR COMMAND
// Validates and persists a new instructor record.
// ══════════════════════════════════════════════════════════════════════════════

// SubmitInstructorCommand contains the data needed to create an instructor.
type SubmitInstructorCommand struct {
	// Name is the instructor's display name.
	Name string

	// Age is the instructor's age in years.
	Age int

	// Email is the instructor's email address.
	Email string

	// InstructorID is the caller-supplied natural key.
	InstructorID string
}

// SubmitInstructorResult contains the result of the submission.
type SubmitInstructorResult struct {
	// Instructor is the persisted record, internal id assigned.
	Instructor *roster.Instructor
}

// SubmitInstructorHandler handles the SubmitInstructorCommand.
type SubmitInstructorHandler struct {
	instructors roster.InstructorRepository
	cache       CacheInvalidator
}

// NewSubmitInstructorHandler creates a new SubmitInstructorHandler.
func NewSubmitInstructorHandler(instructors roster.InstructorRepository, cache CacheInvalidator) *SubmitInstructorHandler {
	return &SubmitInstructorHandler{
		instructors: instructors,
		cache:       cache,
	}
}

// Handle executes the submit instructor command.
func (h *SubmitInstructorHandler) Handle(ctx context.Context, cmd SubmitInstructorCommand) (*SubmitInstructorResult, error) {
	instructor, err := roster.NewInstructor(roster.NewInstructorParams{
		Name:         cmd.Name,
		Age:          cmd.Age,
		Email:        cmd.Email,
		InstructorID: cmd.InstructorID,
	})
	if err != nil {
		return nil, fmt.Errorf("submit_instructor: validation failed: %w", err)
	}

	exists, err := h.instructors.ExistsByKeyOrEmail(ctx, instructor.InstructorID, instructor.Email)
	if err != nil {
		return nil, fmt.Errorf("submit_instructor: duplicate check failed: %w", err)
	}
	if exists {
		return nil, shared.ErrInstructorExists
	}

	instructor.ID = uuid.NewString()
	if err := h.instructors.Create(ctx, instructor); err != nil {
		return nil, fmt.Errorf("submit_instructor: failed to persist: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.InvalidateInstructors(ctx)
	}

	return &SubmitInstructorResult{Instructor: instructor}, nil
}
