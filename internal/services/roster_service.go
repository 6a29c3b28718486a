package services

import (
	"context"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/gradebook-service/internal/events"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/validator"
)

// WeightWarningTolerance is how far a class's category weight sum may deviate
// from 1.0 before the advisory warning is raised.
const WeightWarningTolerance = 0.01

// ===== PURE PROJECTIONS =====
//
// These are side-effect-free reads over the store, shared by the roster and
// grading services. Order is the insertion order of the underlying slices.

// studentsInClass resolves enrollments to profiles in enrollment insertion
// order. Enrollments pointing at a missing profile are silently skipped.
func studentsInClass(store *models.Store, classID string) []models.Profile {
	var students []models.Profile
	for _, enrollment := range store.Enrollments {
		if enrollment.ClassID != classID {
			continue
		}
		if profile := store.ProfileByID(enrollment.StudentID); profile != nil {
			students = append(students, *profile)
		}
	}
	return students
}

func assignmentsInClass(store *models.Store, classID string) []models.Assignment {
	var assignments []models.Assignment
	for _, assignment := range store.Assignments {
		if assignment.ClassID == classID {
			assignments = append(assignments, assignment)
		}
	}
	return assignments
}

func categoriesInClass(store *models.Store, classID string) []models.Category {
	var categories []models.Category
	for _, category := range store.Categories {
		if category.ClassID == classID {
			categories = append(categories, category)
		}
	}
	return categories
}

func weightSummary(store *models.Store, classID string) WeightSummary {
	var sum float64
	for _, category := range categoriesInClass(store, classID) {
		sum += category.Weight
	}
	return WeightSummary{
		ClassID: classID,
		Sum:     sum,
		Warning: math.Abs(sum-1.0) > WeightWarningTolerance,
	}
}

// ===== ROSTER SERVICE =====

type rosterService struct {
	session   *Session
	logger    *slog.Logger
	validator *validator.Validator
}

func NewRosterService(session *Session, logger *slog.Logger, v *validator.Validator) RosterService {
	return &rosterService{
		session:   session,
		logger:    logger,
		validator: v,
	}
}

func (s *rosterService) StudentsInClass(classID string) ([]models.Profile, error) {
	var students []models.Profile
	err := s.session.View(func(store *models.Store) error {
		students = studentsInClass(store, classID)
		return nil
	})
	return students, err
}

func (s *rosterService) AssignmentsInClass(classID string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := s.session.View(func(store *models.Store) error {
		assignments = assignmentsInClass(store, classID)
		return nil
	})
	return assignments, err
}

func (s *rosterService) CategoriesInClass(classID string) ([]models.Category, error) {
	var categories []models.Category
	err := s.session.View(func(store *models.Store) error {
		categories = categoriesInClass(store, classID)
		return nil
	})
	return categories, err
}

func (s *rosterService) AttendanceInClass(classID string) ([]models.Attendance, error) {
	var records []models.Attendance
	err := s.session.View(func(store *models.Store) error {
		for _, record := range store.Attendance {
			if record.ClassID == classID {
				records = append(records, record)
			}
		}
		return nil
	})
	return records, err
}

func (s *rosterService) MaterialsInClass(classID string) ([]models.StudyMaterial, error) {
	var materials []models.StudyMaterial
	err := s.session.View(func(store *models.Store) error {
		for _, material := range store.StudyMaterials {
			if material.ClassID == classID {
				materials = append(materials, material)
			}
		}
		return nil
	})
	return materials, err
}

func (s *rosterService) WeightSummary(classID string) (*WeightSummary, error) {
	var summary WeightSummary
	err := s.session.View(func(store *models.Store) error {
		if store.ClassByID(classID) == nil {
			return NewNotFoundError("class", classID)
		}
		summary = weightSummary(store, classID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Enroll adds the student with the given email to a class. Rejected when the
// email does not resolve to a student profile or the student is already
// enrolled; rejections leave the store unchanged.
func (s *rosterService) Enroll(ctx context.Context, classID string, req *models.EnrollStudentRequest) (*models.Enrollment, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var enrollment models.Enrollment
	err := s.session.Update(ctx, events.TypeEnrollmentCreated, func(store *models.Store) (interface{}, error) {
		if store.ClassByID(classID) == nil {
			return nil, NewNotFoundError("class", classID)
		}

		profile := store.ProfileByEmail(req.Email)
		if profile == nil || profile.Role != models.RoleStudent {
			return nil, NewNotFoundError("student", req.Email)
		}
		if store.IsEnrolled(profile.ID, classID) {
			return nil, NewConflictError("enrollment", "already enrolled")
		}

		enrollment = models.Enrollment{
			ID:        uuid.NewString(),
			StudentID: profile.ID,
			ClassID:   classID,
		}
		store.Enrollments = append(store.Enrollments, enrollment)
		return enrollment, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Student enrolled", "enrollment_id", enrollment.ID, "class_id", classID)
	return &enrollment, nil
}

func (s *rosterService) Unenroll(ctx context.Context, enrollmentID string) error {
	err := s.session.Update(ctx, events.TypeEnrollmentDeleted, func(store *models.Store) (interface{}, error) {
		for i := range store.Enrollments {
			if store.Enrollments[i].ID == enrollmentID {
				removed := store.Enrollments[i]
				store.Enrollments = append(store.Enrollments[:i], store.Enrollments[i+1:]...)
				return removed, nil
			}
		}
		return nil, NewNotFoundError("enrollment", enrollmentID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Student unenrolled", "enrollment_id", enrollmentID)
	return nil
}
