// Package jsonfile implements the flat-file persistence variant of the
// campus registry: a single JSON document {students, instructors,
// courses} holding every entity in its canonical serialized form. The
// package doubles as the in-memory backing store used by tests.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/campus-hub/campus-registry/internal/domain/roster"
)

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrStateMissing is returned by Load when the state file does not
	// exist. Distinguishable from corruption: starting empty on a
	// missing file is the caller's decision, never silent.
	ErrStateMissing = errors.New("jsonfile: state file does not exist")

	// ErrStateCorrupt is returned by Load when the state file exists
	// but its content cannot be decoded.
	ErrStateCorrupt = errors.New("jsonfile: state file is corrupt")
)

// ══════════════════════════════════════════════════════════════════════════════
// STORE
// ══════════════════════════════════════════════════════════════════════════════

// enrollmentPair is one join row, by internal row ids.
type enrollmentPair struct {
	studentID string
	courseID  string
}

// Store holds the registry state in memory and mirrors every write to
// the state file when a path is configured. Entity slices keep
// insertion order; lookups go through the id indexes.
type Store struct {
	path string

	mu          sync.RWMutex
	students    []*roster.Student
	instructors []*roster.Instructor
	courses     []*roster.Course
	enrollments []enrollmentPair
}

// New creates an empty store persisting to path. An empty path keeps
// the store purely in memory (the test configuration).
func New(path string) *Store {
	return &Store{path: path}
}

// Open creates a store bound to path and loads existing state. A
// missing file yields an empty store; corrupt content is an error.
func Open(path string) (*Store, error) {
	s := New(path)
	err := s.Load()
	if errors.Is(err, ErrStateMissing) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Repositories returns the repository bundle backed by this store.
func (s *Store) Repositories() roster.Repositories {
	return roster.Repositories{
		Students:    &StudentStore{s},
		Instructors: &InstructorStore{s},
		Courses:     &CourseStore{s},
		Enrollments: &EnrollmentStore{s},
	}
}

// document is the on-disk shape of the registry state.
type document struct {
	Students    []json.RawMessage `json:"students"`
	Instructors []json.RawMessage `json:"instructors"`
	Courses     []json.RawMessage `json:"courses"`
}

// Load replaces the in-memory state with the contents of the state
// file. Returns ErrStateMissing when the file is absent and
// ErrStateCorrupt when it cannot be decoded.
func (s *Store) Load() error {
	if s.path == "" {
		return ErrStateMissing
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrStateMissing, s.path)
		}
		return fmt.Errorf("jsonfile: failed to read state file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrStateCorrupt, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceLocked(doc)
}

// replaceLocked decodes the document and rebuilds the join state from
// the students' registered course lists.
func (s *Store) replaceLocked(doc document) error {
	students := make([]*roster.Student, 0, len(doc.Students))
	instructors := make([]*roster.Instructor, 0, len(doc.Instructors))
	courses := make([]*roster.Course, 0, len(doc.Courses))
	enrollments := make([]enrollmentPair, 0)

	for _, raw := range doc.Students {
		student, err := roster.DecodeStudent(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStateCorrupt, err)
		}
		student.ID = newID()
		students = append(students, student)
	}

	for _, raw := range doc.Instructors {
		instructor, err := roster.DecodeInstructor(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStateCorrupt, err)
		}
		instructor.ID = newID()
		instructors = append(instructors, instructor)
	}

	for _, raw := range doc.Courses {
		course, err := roster.DecodeCourse(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStateCorrupt, err)
		}
		course.ID = newID()
		courses = append(courses, course)
	}

	// Rebuild the join rows from the student view, de-duplicating
	// pairs: the join holds each (student, course) at most once.
	courseByNatural := make(map[string]*roster.Course, len(courses))
	for _, c := range courses {
		courseByNatural[c.CourseID] = c
	}

	seen := make(map[enrollmentPair]bool)
	for _, st := range students {
		for _, courseNatural := range st.RegisteredCourses {
			c, ok := courseByNatural[courseNatural]
			if !ok {
				continue
			}
			pair := enrollmentPair{studentID: st.ID, courseID: c.ID}
			if seen[pair] {
				continue
			}
			seen[pair] = true
			enrollments = append(enrollments, pair)
		}
	}

	s.students = students
	s.instructors = instructors
	s.courses = courses
	s.enrollments = enrollments
	return nil
}

// Save writes the current state to the state file.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	if s.path == "" {
		return nil
	}

	doc := document{
		Students:    make([]json.RawMessage, 0, len(s.students)),
		Instructors: make([]json.RawMessage, 0, len(s.instructors)),
		Courses:     make([]json.RawMessage, 0, len(s.courses)),
	}

	for _, st := range s.students {
		raw, err := st.Serialize()
		if err != nil {
			return fmt.Errorf("jsonfile: failed to serialize student: %w", err)
		}
		doc.Students = append(doc.Students, raw)
	}
	for _, in := range s.instructors {
		raw, err := in.Serialize()
		if err != nil {
			return fmt.Errorf("jsonfile: failed to serialize instructor: %w", err)
		}
		doc.Instructors = append(doc.Instructors, raw)
	}
	for _, c := range s.courses {
		raw, err := c.Serialize()
		if err != nil {
			return fmt.Errorf("jsonfile: failed to serialize course: %w", err)
		}
		doc.Courses = append(doc.Courses, raw)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: failed to encode state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("jsonfile: failed to write state file: %w", err)
	}
	return nil
}

// persistLocked mirrors a completed write to disk. Writes commit
// immediately; there is no batching.
func (s *Store) persistLocked() error {
	return s.saveLocked()
}
