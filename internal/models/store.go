package models

import (
	"encoding/json"
	"fmt"
)

type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

type Class struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Section   string `json:"section"`
	TeacherID string `json:"teacherId"`
}

type Enrollment struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId"`
	ClassID   string `json:"classId"`
}

type Category struct {
	ID      string  `json:"id"`
	ClassID string  `json:"classId"`
	Name    string  `json:"name"`
	Weight  float64 `json:"weight"`
}

type Assignment struct {
	ID         string  `json:"id"`
	ClassID    string  `json:"classId"`
	CategoryID string  `json:"categoryId"`
	Title      string  `json:"title"`
	Points     float64 `json:"points"`
	DueDate    string  `json:"dueDate"`
}

// Grade holds a recorded score for one student on one assignment.
// A nil Score is the explicit "ungraded" marker and is never treated as zero.
type Grade struct {
	ID           string   `json:"id"`
	AssignmentID string   `json:"assignmentId"`
	StudentID    string   `json:"studentId"`
	Score        *float64 `json:"score"`
}

type Attendance struct {
	ID        string           `json:"id"`
	ClassID   string           `json:"classId"`
	StudentID string           `json:"studentId"`
	Date      string           `json:"date"`
	Status    AttendanceStatus `json:"status"`
}

type StudyMaterial struct {
	ID          string `json:"id"`
	ClassID     string `json:"classId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	UploadDate  string `json:"uploadDate"`
}

// Store is the whole gradebook dataset. It is a plain serializable aggregate
// with no derived or cached fields: averages are always recomputed from it.
// Slice order is insertion order and is the only ordering guarantee callers get.
type Store struct {
	Profiles       []Profile       `json:"profiles"`
	Classes        []Class         `json:"classes"`
	Enrollments    []Enrollment    `json:"enrollments"`
	Categories     []Category      `json:"categories"`
	Assignments    []Assignment    `json:"assignments"`
	Grades         []Grade         `json:"grades"`
	Attendance     []Attendance    `json:"attendance"`
	StudyMaterials []StudyMaterial `json:"studyMaterials"`
}

// NewStore returns an empty store with non-nil collections so the
// serialized blob always carries every section.
func NewStore() *Store {
	return &Store{
		Profiles:       []Profile{},
		Classes:        []Class{},
		Enrollments:    []Enrollment{},
		Categories:     []Category{},
		Assignments:    []Assignment{},
		Grades:         []Grade{},
		Attendance:     []Attendance{},
		StudyMaterials: []StudyMaterial{},
	}
}

// Normalize replaces nil collections with empty ones. Snapshots imported from
// outside (replace-store, hand-edited blobs) may omit sections entirely.
func (s *Store) Normalize() {
	if s.Profiles == nil {
		s.Profiles = []Profile{}
	}
	if s.Classes == nil {
		s.Classes = []Class{}
	}
	if s.Enrollments == nil {
		s.Enrollments = []Enrollment{}
	}
	if s.Categories == nil {
		s.Categories = []Category{}
	}
	if s.Assignments == nil {
		s.Assignments = []Assignment{}
	}
	if s.Grades == nil {
		s.Grades = []Grade{}
	}
	if s.Attendance == nil {
		s.Attendance = []Attendance{}
	}
	if s.StudyMaterials == nil {
		s.StudyMaterials = []StudyMaterial{}
	}
}

// MarshalCopy returns a deep copy made through the JSON codec, the same
// representation the snapshot blob uses.
func (s *Store) MarshalCopy() (*Store, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to copy store: %w", err)
	}
	var out Store
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to copy store: %w", err)
	}
	out.Normalize()
	return &out, nil
}

func (s *Store) ProfileByID(id string) *Profile {
	for i := range s.Profiles {
		if s.Profiles[i].ID == id {
			return &s.Profiles[i]
		}
	}
	return nil
}

func (s *Store) ProfileByEmail(email string) *Profile {
	for i := range s.Profiles {
		if s.Profiles[i].Email == email {
			return &s.Profiles[i]
		}
	}
	return nil
}

func (s *Store) ClassByID(id string) *Class {
	for i := range s.Classes {
		if s.Classes[i].ID == id {
			return &s.Classes[i]
		}
	}
	return nil
}

func (s *Store) EnrollmentByID(id string) *Enrollment {
	for i := range s.Enrollments {
		if s.Enrollments[i].ID == id {
			return &s.Enrollments[i]
		}
	}
	return nil
}

func (s *Store) CategoryByID(id string) *Category {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i]
		}
	}
	return nil
}

func (s *Store) AssignmentByID(id string) *Assignment {
	for i := range s.Assignments {
		if s.Assignments[i].ID == id {
			return &s.Assignments[i]
		}
	}
	return nil
}

func (s *Store) MaterialByID(id string) *StudyMaterial {
	for i := range s.StudyMaterials {
		if s.StudyMaterials[i].ID == id {
			return &s.StudyMaterials[i]
		}
	}
	return nil
}

// GradeFor returns the recorded grade for the (assignment, student) pair, or
// nil when no grade row exists. Absence of a row and a row with a nil score
// are both "ungraded" to the grading engine.
func (s *Store) GradeFor(assignmentID, studentID string) *Grade {
	for i := range s.Grades {
		if s.Grades[i].AssignmentID == assignmentID && s.Grades[i].StudentID == studentID {
			return &s.Grades[i]
		}
	}
	return nil
}

func (s *Store) IsEnrolled(studentID, classID string) bool {
	for i := range s.Enrollments {
		if s.Enrollments[i].StudentID == studentID && s.Enrollments[i].ClassID == classID {
			return true
		}
	}
	return false
}
