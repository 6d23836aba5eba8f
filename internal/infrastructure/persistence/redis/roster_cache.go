package redis

import (
	"context"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER CACHE
// ══════════════════════════════════════════════════════════════════════════════

// List kinds accepted by the list operations.
const (
	ListStudents    = "students"
	ListInstructors = "instructors"
	ListCourses     = "courses"
	ListEnrollments = "enrollments"
)

// RosterCache caches registry entities and entity lists. It is a pure
// read accelerator: callers fall back to the repository on any miss or
// cache error, and every successful write invalidates the stale keys.
//
// A nil RosterCache is valid and turns every operation into a no-op
// miss, so cache-less deployments need no branching at the call sites.
type RosterCache struct {
	cache *Cache
}

// NewRosterCache creates a RosterCache over the generic cache client.
func NewRosterCache(cache *Cache) *RosterCache {
	return &RosterCache{cache: cache}
}

// ──────────────────────────────────────────────────────────────────────────────
// Single entities
// ──────────────────────────────────────────────────────────────────────────────

// GetStudent returns a cached student by natural id.
func (r *RosterCache) GetStudent(ctx context.Context, studentID string) (*roster.Student, error) {
	if r == nil {
		return nil, ErrCacheMiss
	}

	var s roster.Student
	if err := r.cache.Get(ctx, StudentKey(studentID), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SetStudent caches a student under its natural id.
func (r *RosterCache) SetStudent(ctx context.Context, s *roster.Student) error {
	if r == nil || s == nil {
		return nil
	}
	return r.cache.Set(ctx, StudentKey(s.StudentID), s, TTLEntity)
}

// GetInstructor returns a cached instructor by natural id.
func (r *RosterCache) GetInstructor(ctx context.Context, instructorID string) (*roster.Instructor, error) {
	if r == nil {
		return nil, ErrCacheMiss
	}

	var i roster.Instructor
	if err := r.cache.Get(ctx, InstructorKey(instructorID), &i); err != nil {
		return nil, err
	}
	return &i, nil
}

// SetInstructor caches an instructor under its natural id.
func (r *RosterCache) SetInstructor(ctx context.Context, i *roster.Instructor) error {
	if r == nil || i == nil {
		return nil
	}
	return r.cache.Set(ctx, InstructorKey(i.InstructorID), i, TTLEntity)
}

// GetCourse returns a cached course by natural id.
func (r *RosterCache) GetCourse(ctx context.Context, courseID string) (*roster.Course, error) {
	if r == nil {
		return nil, ErrCacheMiss
	}

	var c roster.Course
	if err := r.cache.Get(ctx, CourseKey(courseID), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// SetCourse caches a course under its natural id.
func (r *RosterCache) SetCourse(ctx context.Context, c *roster.Course) error {
	if r == nil || c == nil {
		return nil
	}
	return r.cache.Set(ctx, CourseKey(c.CourseID), c, TTLEntity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entity lists
// ──────────────────────────────────────────────────────────────────────────────

// GetStudentList returns the cached full student list.
func (r *RosterCache) GetStudentList(ctx context.Context) ([]*roster.Student, error) {
	if r == nil {
		return nil, ErrCacheMiss
	}

	var list []*roster.Student
	if err := r.cache.Get(ctx, RosterListKey(ListStudents), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetStudentList caches the full student list.
func (r *RosterCache) SetStudentList(ctx context.Context, list []*roster.Student) error {
	if r == nil {
		return nil
	}
	return r.cache.Set(ctx, RosterListKey(ListStudents), list, TTLList)
}

// GetInstructorList returns the cached full instructor list.
func (r *RosterCache) GetInstructorList(ctx context.Context) ([]*roster.Instructor, error) {
	if r == nil {
		return nil, ErrCacheMiss
	}

	var list []*roster.Instructor
	if err := r.cache.Get(ctx, RosterListKey(ListInstructors), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetInstructorList caches the full instructor list.
func (r *RosterCache) SetInstructorList(ctx context.Context, list []*roster.Instructor) error {
	if r == nil {
		return nil
	}
	return r.cache.Set(ctx, RosterListKey(ListInstructors), list, TTLList)
}

// GetCourseList returns the cached full course list.
func (r *RosterCache) GetCourseList(ctx context.Context) ([]*roster.Course, error) {
	if r == nil {
		return nil, ErrCacheMiss
	}

	var list []*roster.Course
	if err := r.cache.Get(ctx, RosterListKey(ListCourses), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetCourseList caches the full course list.
func (r *RosterCache) SetCourseList(ctx context.Context, list []*roster.Course) error {
	if r == nil {
		return nil
	}
	return r.cache.Set(ctx, RosterListKey(ListCourses), list, TTLList)
}

// GetEnrollmentList returns the cached enrollment view.
func (r *RosterCache) GetEnrollmentList(ctx context.Context) ([]roster.Enrollment, error) {
	if r == nil {
		return nil, ErrCacheMiss
	}

	var list []roster.Enrollment
	if err := r.cache.Get(ctx, RosterListKey(ListEnrollments), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetEnrollmentList caches the enrollment view.
func (r *RosterCache) SetEnrollmentList(ctx context.Context, list []roster.Enrollment) error {
	if r == nil {
		return nil
	}
	return r.cache.Set(ctx, RosterListKey(ListEnrollments), list, TTLList)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invalidation
// ──────────────────────────────────────────────────────────────────────────────

// InvalidateStudents drops every student key and the student list.
func (r *RosterCache) InvalidateStudents(ctx context.Context) error {
	if r == nil {
		return nil
	}
	if err := r.cache.DeleteByPattern(ctx, PrefixStudent+"*"); err != nil {
		return err
	}
	return r.cache.Delete(ctx, RosterListKey(ListStudents), RosterListKey(ListEnrollments))
}

// InvalidateInstructors drops every instructor key and the instructor
// list. Courses are dropped too since they embed the instructor id.
func (r *RosterCache) InvalidateInstructors(ctx context.Context) error {
	if r == nil {
		return nil
	}
	if err := r.cache.DeleteByPattern(ctx, PrefixInstructor+"*"); err != nil {
		return err
	}
	if err := r.cache.DeleteByPattern(ctx, PrefixCourse+"*"); err != nil {
		return err
	}
	return r.cache.Delete(ctx, RosterListKey(ListInstructors), RosterListKey(ListCourses))
}

// InvalidateCourses drops every course key and the course list.
func (r *RosterCache) InvalidateCourses(ctx context.Context) error {
	if r == nil {
		return nil
	}
	if err := r.cache.DeleteByPattern(ctx, PrefixCourse+"*"); err != nil {
		return err
	}
	return r.cache.Delete(ctx, RosterListKey(ListCourses), RosterListKey(ListEnrollments))
}

// InvalidateAll drops the whole roster keyspace.
func (r *RosterCache) InvalidateAll(ctx context.Context) error {
	if r == nil {
		return nil
	}
	for _, prefix := range []string{PrefixStudent, PrefixInstructor, PrefixCourse, PrefixRoster} {
		if err := r.cache.DeleteByPattern(ctx, prefix+"*"); err != nil {
			return err
		}
	}
	return nil
}

// Refresh drops the roster keyspace and repopulates the entity lists
// from the repositories. The explicit refresh replaces any notion of
// implicit cache coherence: after Refresh the cache reflects the store.
func (r *RosterCache) Refresh(ctx context.Context, repos roster.Repositories) error {
	if r == nil {
		return nil
	}

	if err := r.InvalidateAll(ctx); err != nil {
		return err
	}

	students, err := repos.Students.GetAll(ctx)
	if err != nil {
		return err
	}
	if err := r.SetStudentList(ctx, students); err != nil {
		return err
	}

	instructors, err := repos.Instructors.GetAll(ctx)
	if err != nil {
		return err
	}
	if err := r.SetInstructorList(ctx, instructors); err != nil {
		return err
	}

	courses, err := repos.Courses.GetAll(ctx)
	if err != nil {
		return err
	}
	if err := r.SetCourseList(ctx, courses); err != nil {
		return err
	}

	enrollments, err := repos.Enrollments.ListAll(ctx)
	if err != nil {
		return err
	}
	return r.SetEnrollmentList(ctx, enrollments)
}
