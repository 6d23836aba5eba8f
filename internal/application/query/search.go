// Package query contains read operations (CQRS - Queries). Queries
// never mutate state; list reads go through the roster cache when one
// is configured and fall back to the repositories on a miss.
package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
)

// ══════════════════════════════════════════════════════════════════════════════
// SEARCH QUERY
// Matches records by name substring or exact natural id. Matching is
// case-sensitive.
// ══════════════════════════════════════════════════════════════════════════════

// SearchQuery contains the search term.
type SearchQuery struct {
	// Term is matched as a name substring OR an exact natural id.
	Term string
}

// Validate validates the query.
func (q SearchQuery) Validate() error {
	if q.Term == "" {
		return errors.New("search: term must be provided")
	}
	return nil
}

// SearchResult contains the matches across all entity kinds.
type SearchResult struct {
	Students    []*roster.Student
	Instructors []*roster.Instructor
	Courses     []*roster.Course
}

// Total returns the number of matched records.
func (r *SearchResult) Total() int {
	return len(r.Students) + len(r.Instructors) + len(r.Courses)
}

// SearchHandler handles the SearchQuery.
type SearchHandler struct {
	repos roster.Repositories
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(repos roster.Repositories) *SearchHandler {
	return &SearchHandler{repos: repos}
}

// Handle executes the search across students, instructors, and courses.
func (h *SearchHandler) Handle(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	students, err := h.repos.Students.Search(ctx, q.Term)
	if err != nil {
		return nil, fmt.Errorf("search: students failed: %w", err)
	}

	instructors, err := h.repos.Instructors.Search(ctx, q.Term)
	if err != nil {
		return nil, fmt.Errorf("search: instructors failed: %w", err)
	}

	courses, err := h.repos.Courses.Search(ctx, q.Term)
	if err != nil {
		return nil, fmt.Errorf("search: courses failed: %w", err)
	}

	return &SearchResult{
		Students:    students,
		Instructors: instructors,
		Courses:     courses,
	}, nil
}
