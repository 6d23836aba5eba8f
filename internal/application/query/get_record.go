package query

import (
	"context"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET QUERIES
// Single-record lookups by natural id, cache-accelerated.
// ══════════════════════════════════════════════════════════════════════════════

// RosterEntityCache is the slice of the roster cache serving single
// records. A nil implementation misses on every read.
type RosterEntityCache interface {
	GetStudent(ctx context.Context, studentID string) (*roster.Student, error)
	SetStudent(ctx context.Context, s *roster.Student) error
	GetInstructor(ctx context.Context, instructorID string) (*roster.Instructor, error)
	SetInstructor(ctx context.Context, i *roster.Instructor) error
	GetCourse(ctx context.Context, courseID string) (*roster.Course, error)
	SetCourse(ctx context.Context, c *roster.Course) error
}

// GetHandler serves single-record lookups by natural id. Reads prefer
// the cache and repopulate it on a miss; any cache error degrades to a
// plain repository read.
type GetHandler struct {
	repos roster.Repositories
	cache RosterEntityCache
}

// NewGetHandler creates a new GetHandler. The cache may be nil.
func NewGetHandler(repos roster.Repositories, cache RosterEntityCache) *GetHandler {
	return &GetHandler{
		repos: repos,
		cache: cache,
	}
}

// Student returns one student by natural id.
func (h *GetHandler) Student(ctx context.Context, studentID string) (*roster.Student, error) {
	if h.cache != nil {
		if s, err := h.cache.GetStudent(ctx, studentID); err == nil {
			return s, nil
		}
	}

	s, err := h.repos.Students.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		_ = h.cache.SetStudent(ctx, s)
	}
	return s, nil
}

// Instructor returns one instructor by natural id.
func (h *GetHandler) Instructor(ctx context.Context, instructorID string) (*roster.Instructor, error) {
	if h.cache != nil {
		if i, err := h.cache.GetInstructor(ctx, instructorID); err == nil {
			return i, nil
		}
	}

	i, err := h.repos.Instructors.GetByInstructorID(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		_ = h.cache.SetInstructor(ctx, i)
	}
	return i, nil
}

// Course returns one course by natural id.
func (h *GetHandler) Course(ctx context.Context, courseID string) (*roster.Course, error) {
	if h.cache != nil {
		if c, err := h.cache.GetCourse(ctx, courseID); err == nil {
			return c, nil
		}
	}

	c, err := h.repos.Courses.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		_ = h.cache.SetCourse(ctx, c)
	}
	return c, nil
}
