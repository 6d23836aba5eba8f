package query

import (
	"context"
	"fmt"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST QUERIES
// Full entity listings, cache-accelerated.
// ══════════════════════════════════════════════════════════════════════════════

// RosterListCache is the slice of the roster cache the read side
// needs. A nil implementation misses on every read.
type RosterListCache interface {
	GetStudentList(ctx context.Context) ([]*roster.Student, error)
	SetStudentList(ctx context.Context, list []*roster.Student) error
	GetInstructorList(ctx context.Context) ([]*roster.Instructor, error)
	SetInstructorList(ctx context.Context, list []*roster.Instructor) error
	GetCourseList(ctx context.Context) ([]*roster.Course, error)
	SetCourseList(ctx context.Context, list []*roster.Course) error
	GetEnrollmentList(ctx context.Context) ([]roster.Enrollment, error)
	SetEnrollmentList(ctx context.Context, list []roster.Enrollment) error
}

// ListHandler serves the full entity listings. Reads prefer the cache
// and repopulate it on a miss; any cache error degrades to a plain
// repository read.
type ListHandler struct {
	repos roster.Repositories
	cache RosterListCache
}

// NewListHandler creates a new ListHandler. The cache may be nil.
func NewListHandler(repos roster.Repositories, cache RosterListCache) *ListHandler {
	return &ListHandler{
		repos: repos,
		cache: cache,
	}
}

// Students returns every student record.
func (h *ListHandler) Students(ctx context.Context) ([]*roster.Student, error) {
	if h.cache != nil {
		if list, err := h.cache.GetStudentList(ctx); err == nil {
			return list, nil
		}
	}

	list, err := h.repos.Students.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list: students failed: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.SetStudentList(ctx, list)
	}
	return list, nil
}

// Instructors returns every instructor record.
func (h *ListHandler) Instructors(ctx context.Context) ([]*roster.Instructor, error) {
	if h.cache != nil {
		if list, err := h.cache.GetInstructorList(ctx); err == nil {
			return list, nil
		}
	}

	list, err := h.repos.Instructors.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list: instructors failed: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.SetInstructorList(ctx, list)
	}
	return list, nil
}

// Courses returns every course record.
func (h *ListHandler) Courses(ctx context.Context) ([]*roster.Course, error) {
	if h.cache != nil {
		if list, err := h.cache.GetCourseList(ctx); err == nil {
			return list, nil
		}
	}

	list, err := h.repos.Courses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list: courses failed: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.SetCourseList(ctx, list)
	}
	return list, nil
}

// Enrollments returns the joined enrollment view.
func (h *ListHandler) Enrollments(ctx context.Context) ([]roster.Enrollment, error) {
	if h.cache != nil {
		if list, err := h.cache.GetEnrollmentList(ctx); err == nil {
			return list, nil
		}
	}

	list, err := h.repos.Enrollments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list: enrollments failed: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.SetEnrollmentList(ctx, list)
	}
	return list, nil
}
