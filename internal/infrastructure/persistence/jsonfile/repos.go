package jsonfile

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
	"github.com/campus-hub/campus-registry/internal/domain/shared"
)

func newID() string {
	return uuid.NewString()
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT STORE
// ══════════════════════════════════════════════════════════════════════════════

// StudentStore implements roster.StudentRepository over the snapshot.
type StudentStore struct {
	store *Store
}

// Create persists a new student and mirrors the state file.
func (r *StudentStore) Create(ctx context.Context, s *roster.Student) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.students {
		if existing.StudentID == s.StudentID || existing.Email == s.Email {
			return shared.ErrStudentExists
		}
	}

	if s.ID == "" {
		s.ID = newID()
	}
	r.store.students = append(r.store.students, s.Clone())
	return r.store.persistLocked()
}

// GetAll returns all students in insertion order.
func (r *StudentStore) GetAll(ctx context.Context) ([]*roster.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*roster.Student, 0, len(r.store.students))
	for _, s := range r.store.students {
		result = append(result, s.Clone())
	}
	return result, nil
}

// GetByID returns a student by internal ID.
func (r *StudentStore) GetByID(ctx context.Context, id string) (*roster.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if s := r.store.findStudentLocked(func(s *roster.Student) bool { return s.ID == id }); s != nil {
		return s.Clone(), nil
	}
	return nil, shared.ErrStudentNotFound
}

// GetByStudentID returns a student by natural key.
func (r *StudentStore) GetByStudentID(ctx context.Context, studentID string) (*roster.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if s := r.store.findStudentLocked(func(s *roster.Student) bool { return s.StudentID == studentID }); s != nil {
		return s.Clone(), nil
	}
	return nil, shared.ErrStudentNotFound
}

// GetByName returns the first student with the exact name.
func (r *StudentStore) GetByName(ctx context.Context, name string) (*roster.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if s := r.store.findStudentLocked(func(s *roster.Student) bool { return s.Name == name }); s != nil {
		return s.Clone(), nil
	}
	return nil, shared.ErrStudentNotFound
}

// Update overwrites the student's mutable fields.
func (r *StudentStore) Update(ctx context.Context, s *roster.Student) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, existing := range r.store.students {
		if existing.ID != s.ID {
			continue
		}
		for _, other := range r.store.students {
			if other.ID != s.ID && other.Email == s.Email {
				return shared.ErrStudentExists
			}
		}
		clone := s.Clone()
		clone.StudentID = existing.StudentID // natural key is immutable
		r.store.students[i] = clone
		return r.store.persistLocked()
	}
	return shared.ErrStudentNotFound
}

// Delete removes the student and every enrollment referencing it.
func (r *StudentStore) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := -1
	for i, s := range r.store.students {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.ErrStudentNotFound
	}

	removed := r.store.students[idx]
	r.store.students = append(r.store.students[:idx], r.store.students[idx+1:]...)

	kept := r.store.enrollments[:0]
	for _, pair := range r.store.enrollments {
		if pair.studentID != id {
			kept = append(kept, pair)
		}
	}
	r.store.enrollments = kept

	for _, c := range r.store.courses {
		c.EnrolledStudents = removeValue(c.EnrolledStudents, removed.StudentID)
	}

	return r.store.persistLocked()
}

// Search matches name substring OR student id exact, case-sensitive.
func (r *StudentStore) Search(ctx context.Context, term string) ([]*roster.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*roster.Student, 0)
	for _, s := range r.store.students {
		if strings.Contains(s.Name, term) || s.StudentID == term {
			result = append(result, s.Clone())
		}
	}
	return result, nil
}

// ExistsByKeyOrEmail checks the duplicate contract: natural id OR email.
func (r *StudentStore) ExistsByKeyOrEmail(ctx context.Context, studentID, email string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, s := range r.store.students {
		if s.StudentID == studentID || s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) findStudentLocked(match func(*roster.Student) bool) *roster.Student {
	for _, st := range s.students {
		if match(st) {
			return st
		}
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// INSTRUCTOR STORE
// ══════════════════════════════════════════════════════════════════════════════

// InstructorStore implements roster.InstructorRepository over the snapshot.
type InstructorStore struct {
	store *Store
}

// Create persists a new instructor and mirrors the state file.
func (r *InstructorStore) Create(ctx context.Context, i *roster.Instructor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.instructors {
		if existing.InstructorID == i.InstructorID || existing.Email == i.Email {
			return shared.ErrInstructorExists
		}
	}

	if i.ID == "" {
		i.ID = newID()
	}
	r.store.instructors = append(r.store.instructors, i.Clone())
	return r.store.persistLocked()
}

// GetAll returns all instructors in insertion order.
func (r *InstructorStore) GetAll(ctx context.Context) ([]*roster.Instructor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*roster.Instructor, 0, len(r.store.instructors))
	for _, i := range r.store.instructors {
		result = append(result, i.Clone())
	}
	return result, nil
}

// GetByID returns an instructor by internal ID.
func (r *InstructorStore) GetByID(ctx context.Context, id string) (*roster.Instructor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if i := r.store.findInstructorLocked(func(i *roster.Instructor) bool { return i.ID == id }); i != nil {
		return i.Clone(), nil
	}
	return nil, shared.ErrInstructorNotFound
}

// GetByInstructorID returns an instructor by natural key.
func (r *InstructorStore) GetByInstructorID(ctx context.Context, instructorID string) (*roster.Instructor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if i := r.store.findInstructorLocked(func(i *roster.Instructor) bool { return i.InstructorID == instructorID }); i != nil {
		return i.Clone(), nil
	}
	return nil, shared.ErrInstructorNotFound
}

// GetByName returns the first instructor with the exact name.
func (r *InstructorStore) GetByName(ctx context.Context, name string) (*roster.Instructor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if i := r.store.findInstructorLocked(func(i *roster.Instructor) bool { return i.Name == name }); i != nil {
		return i.Clone(), nil
	}
	return nil, shared.ErrInstructorNotFound
}

// Update overwrites the instructor's mutable fields.
func (r *InstructorStore) Update(ctx context.Context, i *roster.Instructor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for idx, existing := range r.store.instructors {
		if existing.ID != i.ID {
			continue
		}
		for _, other := range r.store.instructors {
			if other.ID != i.ID && other.Email == i.Email {
				return shared.ErrInstructorExists
			}
		}
		clone := i.Clone()
		clone.InstructorID = existing.InstructorID // natural key is immutable
		r.store.instructors[idx] = clone
		return r.store.persistLocked()
	}
	return shared.ErrInstructorNotFound
}

// Delete removes the instructor; its courses keep no instructor.
func (r *InstructorStore) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := -1
	for i, in := range r.store.instructors {
		if in.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.ErrInstructorNotFound
	}

	removed := r.store.instructors[idx]
	r.store.instructors = append(r.store.instructors[:idx], r.store.instructors[idx+1:]...)

	for _, c := range r.store.courses {
		if c.InstructorID == removed.InstructorID {
			c.InstructorID = ""
		}
	}

	return r.store.persistLocked()
}

// Search matches name substring OR instructor id exact, case-sensitive.
func (r *InstructorStore) Search(ctx context.Context, term string) ([]*roster.Instructor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*roster.Instructor, 0)
	for _, i := range r.store.instructors {
		if strings.Contains(i.Name, term) || i.InstructorID == term {
			result = append(result, i.Clone())
		}
	}
	return result, nil
}

// ExistsByKeyOrEmail checks the duplicate contract: natural id OR email.
func (r *InstructorStore) ExistsByKeyOrEmail(ctx context.Context, instructorID, email string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, i := range r.store.instructors {
		if i.InstructorID == instructorID || i.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) findInstructorLocked(match func(*roster.Instructor) bool) *roster.Instructor {
	for _, in := range s.instructors {
		if match(in) {
			return in
		}
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// COURSE STORE
// ══════════════════════════════════════════════════════════════════════════════

// CourseStore implements roster.CourseRepository over the snapshot.
type CourseStore struct {
	store *Store
}

// Create persists a new course. An unresolvable instructor reference is
// stored as "no instructor" - resolution is the caller's job.
func (r *CourseStore) Create(ctx context.Context, c *roster.Course) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.courses {
		if existing.CourseID == c.CourseID {
			return shared.ErrCourseExists
		}
	}

	if c.ID == "" {
		c.ID = newID()
	}

	clone := c.Clone()
	if clone.HasInstructor() {
		in := r.store.findInstructorLocked(func(i *roster.Instructor) bool {
			return i.InstructorID == clone.InstructorID
		})
		if in == nil {
			clone.InstructorID = ""
		} else {
			in.AssignCourse(clone.CourseID)
		}
	}

	r.store.courses = append(r.store.courses, clone)
	return r.store.persistLocked()
}

// GetAll returns all courses in insertion order.
func (r *CourseStore) GetAll(ctx context.Context) ([]*roster.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*roster.Course, 0, len(r.store.courses))
	for _, c := range r.store.courses {
		result = append(result, c.Clone())
	}
	return result, nil
}

// GetByID returns a course by internal ID.
func (r *CourseStore) GetByID(ctx context.Context, id string) (*roster.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if c := r.store.findCourseLocked(func(c *roster.Course) bool { return c.ID == id }); c != nil {
		return c.Clone(), nil
	}
	return nil, shared.ErrCourseNotFound
}

// GetByCourseID returns a course by natural key.
func (r *CourseStore) GetByCourseID(ctx context.Context, courseID string) (*roster.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if c := r.store.findCourseLocked(func(c *roster.Course) bool { return c.CourseID == courseID }); c != nil {
		return c.Clone(), nil
	}
	return nil, shared.ErrCourseNotFound
}

// GetByName returns the first course with the exact name.
func (r *CourseStore) GetByName(ctx context.Context, name string) (*roster.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if c := r.store.findCourseLocked(func(c *roster.Course) bool { return c.CourseName == name }); c != nil {
		return c.Clone(), nil
	}
	return nil, shared.ErrCourseNotFound
}

// Update overwrites the course's mutable fields.
func (r *CourseStore) Update(ctx context.Context, c *roster.Course) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, existing := range r.store.courses {
		if existing.ID != c.ID {
			continue
		}
		clone := c.Clone()
		clone.CourseID = existing.CourseID // natural key is immutable
		r.store.courses[i] = clone
		return r.store.persistLocked()
	}
	return shared.ErrCourseNotFound
}

// Delete removes the course and every enrollment referencing it.
func (r *CourseStore) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := -1
	for i, c := range r.store.courses {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.ErrCourseNotFound
	}

	removed := r.store.courses[idx]
	r.store.courses = append(r.store.courses[:idx], r.store.courses[idx+1:]...)

	kept := r.store.enrollments[:0]
	for _, pair := range r.store.enrollments {
		if pair.courseID != id {
			kept = append(kept, pair)
		}
	}
	r.store.enrollments = kept

	for _, s := range r.store.students {
		s.RegisteredCourses = removeValue(s.RegisteredCourses, removed.CourseID)
	}
	for _, in := range r.store.instructors {
		in.AssignedCourses = removeValue(in.AssignedCourses, removed.CourseID)
	}

	return r.store.persistLocked()
}

// Search matches course name substring OR course id exact, case-sensitive.
func (r *CourseStore) Search(ctx context.Context, term string) ([]*roster.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*roster.Course, 0)
	for _, c := range r.store.courses {
		if strings.Contains(c.CourseName, term) || c.CourseID == term {
			result = append(result, c.Clone())
		}
	}
	return result, nil
}

// ExistsByCourseID checks the duplicate contract for courses.
func (r *CourseStore) ExistsByCourseID(ctx context.Context, courseID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, c := range r.store.courses {
		if c.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

// AssignInstructor sets or replaces the course's instructor reference.
func (r *CourseStore) AssignInstructor(ctx context.Context, courseID, instructorID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	course := r.store.findCourseLocked(func(c *roster.Course) bool { return c.ID == courseID })
	if course == nil {
		return shared.ErrCourseNotFound
	}

	instructor := r.store.findInstructorLocked(func(i *roster.Instructor) bool { return i.ID == instructorID })
	if instructor == nil {
		return shared.ErrInstructorNotFound
	}

	// Overwrite: the previous holder loses the assignment.
	if course.InstructorID != "" && course.InstructorID != instructor.InstructorID {
		if prev := r.store.findInstructorLocked(func(i *roster.Instructor) bool {
			return i.InstructorID == course.InstructorID
		}); prev != nil {
			prev.AssignedCourses = removeValue(prev.AssignedCourses, course.CourseID)
		}
	}

	course.SetInstructor(instructor.InstructorID)
	if !containsValue(instructor.AssignedCourses, course.CourseID) {
		instructor.AssignCourse(course.CourseID)
	}

	return r.store.persistLocked()
}

func (s *Store) findCourseLocked(match func(*roster.Course) bool) *roster.Course {
	for _, c := range s.courses {
		if match(c) {
			return c
		}
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ENROLLMENT STORE
// ══════════════════════════════════════════════════════════════════════════════

// EnrollmentStore implements roster.EnrollmentRepository over the snapshot.
type EnrollmentStore struct {
	store *Store
}

// Enroll inserts a join row and mirrors the registered/enrolled views
// on both entities. Returns ErrEnrollmentDuplicate for a known pair.
func (r *EnrollmentStore) Enroll(ctx context.Context, studentID, courseID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	student := r.store.findStudentLocked(func(s *roster.Student) bool { return s.ID == studentID })
	if student == nil {
		return shared.ErrStudentNotFound
	}
	course := r.store.findCourseLocked(func(c *roster.Course) bool { return c.ID == courseID })
	if course == nil {
		return shared.ErrCourseNotFound
	}

	pair := enrollmentPair{studentID: studentID, courseID: courseID}
	for _, existing := range r.store.enrollments {
		if existing == pair {
			return shared.ErrEnrollmentDuplicate
		}
	}

	r.store.enrollments = append(r.store.enrollments, pair)
	student.RegisterCourse(course.CourseID)
	course.AddStudent(student.StudentID)

	return r.store.persistLocked()
}

// IsEnrolled reports whether the (student, course) pair has a join row.
func (r *EnrollmentStore) IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	pair := enrollmentPair{studentID: studentID, courseID: courseID}
	for _, existing := range r.store.enrollments {
		if existing == pair {
			return true, nil
		}
	}
	return false, nil
}

// ListAll returns the joined enrollment view in insertion order.
func (r *EnrollmentStore) ListAll(ctx context.Context) ([]roster.Enrollment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	enrollments := make([]roster.Enrollment, 0, len(r.store.enrollments))
	for _, pair := range r.store.enrollments {
		student := r.store.findStudentLocked(func(s *roster.Student) bool { return s.ID == pair.studentID })
		course := r.store.findCourseLocked(func(c *roster.Course) bool { return c.ID == pair.courseID })
		if student == nil || course == nil {
			continue
		}
		enrollments = append(enrollments, roster.Enrollment{
			StudentName: student.Name,
			StudentID:   student.StudentID,
			CourseName:  course.CourseName,
			CourseID:    course.CourseID,
		})
	}
	return enrollments, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

func removeValue(values []string, value string) []string {
	result := values[:0]
	for _, v := range values {
		if v != value {
			result = append(result, v)
		}
	}
	return result
}

func containsValue(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
