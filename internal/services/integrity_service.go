package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/gradebook-service/internal/events"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/validator"
)

// integrityService owns every structural mutation. Each method validates
// first and mutates last, so a rejection leaves the store untouched, and each
// successful mutation is persisted exactly once by the session.
type integrityService struct {
	session   *Session
	logger    *slog.Logger
	validator *validator.Validator
}

func NewIntegrityService(session *Session, logger *slog.Logger, v *validator.Validator) IntegrityService {
	return &integrityService{
		session:   session,
		logger:    logger,
		validator: v,
	}
}

func todayDate() string {
	return time.Now().Format("2006-01-02")
}

// ===== PROFILES =====

func (s *integrityService) CreateProfile(ctx context.Context, req *models.CreateProfileRequest) (*models.Profile, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var profile models.Profile
	err := s.session.Update(ctx, events.TypeProfileCreated, func(store *models.Store) (interface{}, error) {
		if store.ProfileByEmail(req.Email) != nil {
			return nil, NewConflictError("profile", "email already in use")
		}

		profile = models.Profile{
			ID:    uuid.NewString(),
			Email: req.Email,
			Name:  req.Name,
			Role:  req.Role,
		}
		store.Profiles = append(store.Profiles, profile)
		return profile, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Profile created", "profile_id", profile.ID, "role", profile.Role)
	return &profile, nil
}

func (s *integrityService) UpdateProfile(ctx context.Context, id string, req *models.UpdateProfileRequest) (*models.Profile, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var updated models.Profile
	err := s.session.Update(ctx, events.TypeProfileUpdated, func(store *models.Store) (interface{}, error) {
		profile := store.ProfileByID(id)
		if profile == nil {
			return nil, NewNotFoundError("profile", id)
		}
		if req.Email != nil && *req.Email != profile.Email {
			if store.ProfileByEmail(*req.Email) != nil {
				return nil, NewConflictError("profile", "email already in use")
			}
			profile.Email = *req.Email
		}
		if req.Name != nil {
			profile.Name = *req.Name
		}
		updated = *profile
		return updated, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ===== CLASSES =====

func (s *integrityService) CreateClass(ctx context.Context, req *models.CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var class models.Class
	err := s.session.Update(ctx, events.TypeClassCreated, func(store *models.Store) (interface{}, error) {
		teacher := store.ProfileByID(req.TeacherID)
		if teacher == nil || teacher.Role != models.RoleTeacher {
			return nil, NewNotFoundError("teacher", req.TeacherID)
		}

		class = models.Class{
			ID:        uuid.NewString(),
			Name:      req.Name,
			Section:   req.Section,
			TeacherID: req.TeacherID,
		}
		store.Classes = append(store.Classes, class)
		return class, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Class created", "class_id", class.ID, "teacher_id", class.TeacherID)
	return &class, nil
}

func (s *integrityService) UpdateClass(ctx context.Context, id string, req *models.UpdateClassRequest) (*models.Class, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var updated models.Class
	err := s.session.Update(ctx, events.TypeClassUpdated, func(store *models.Store) (interface{}, error) {
		class := store.ClassByID(id)
		if class == nil {
			return nil, NewNotFoundError("class", id)
		}
		if req.Name != nil {
			class.Name = *req.Name
		}
		if req.Section != nil {
			class.Section = *req.Section
		}
		updated = *class
		return updated, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteClass removes the class and everything that exists only in reference
// to it: enrollments, categories, assignments and (transitively) their
// grades, attendance records and study materials. The end state has zero
// dangling references to the deleted class.
func (s *integrityService) DeleteClass(ctx context.Context, id string) error {
	err := s.session.Update(ctx, events.TypeClassDeleted, func(store *models.Store) (interface{}, error) {
		class := store.ClassByID(id)
		if class == nil {
			return nil, NewNotFoundError("class", id)
		}

		removedAssignments := make(map[string]bool)
		for _, assignment := range store.Assignments {
			if assignment.ClassID == id {
				removedAssignments[assignment.ID] = true
			}
		}

		classes := store.Classes[:0]
		for _, c := range store.Classes {
			if c.ID != id {
				classes = append(classes, c)
			}
		}
		store.Classes = classes

		enrollments := store.Enrollments[:0]
		for _, e := range store.Enrollments {
			if e.ClassID != id {
				enrollments = append(enrollments, e)
			}
		}
		store.Enrollments = enrollments

		categories := store.Categories[:0]
		for _, c := range store.Categories {
			if c.ClassID != id {
				categories = append(categories, c)
			}
		}
		store.Categories = categories

		assignments := store.Assignments[:0]
		for _, a := range store.Assignments {
			if a.ClassID != id {
				assignments = append(assignments, a)
			}
		}
		store.Assignments = assignments

		grades := store.Grades[:0]
		for _, g := range store.Grades {
			if !removedAssignments[g.AssignmentID] {
				grades = append(grades, g)
			}
		}
		store.Grades = grades

		attendance := store.Attendance[:0]
		for _, a := range store.Attendance {
			if a.ClassID != id {
				attendance = append(attendance, a)
			}
		}
		store.Attendance = attendance

		materials := store.StudyMaterials[:0]
		for _, m := range store.StudyMaterials {
			if m.ClassID != id {
				materials = append(materials, m)
			}
		}
		store.StudyMaterials = materials

		return map[string]interface{}{"class_id": id, "assignments_removed": len(removedAssignments)}, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Class deleted with cascade", "class_id", id)
	return nil
}

// ===== CATEGORIES =====

func (s *integrityService) CreateCategory(ctx context.Context, classID string, req *models.CreateCategoryRequest) (*models.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var category models.Category
	err := s.session.Update(ctx, events.TypeCategoryCreated, func(store *models.Store) (interface{}, error) {
		if store.ClassByID(classID) == nil {
			return nil, NewNotFoundError("class", classID)
		}

		category = models.Category{
			ID:      uuid.NewString(),
			ClassID: classID,
			Name:    req.Name,
			Weight:  req.Weight,
		}
		store.Categories = append(store.Categories, category)
		return category, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Category created", "category_id", category.ID, "class_id", classID)
	return &category, nil
}

func (s *integrityService) UpdateCategory(ctx context.Context, id string, req *models.UpdateCategoryRequest) (*models.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var updated models.Category
	err := s.session.Update(ctx, events.TypeCategoryUpdated, func(store *models.Store) (interface{}, error) {
		category := store.CategoryByID(id)
		if category == nil {
			return nil, NewNotFoundError("category", id)
		}
		if req.Name != nil {
			category.Name = *req.Name
		}
		if req.Weight != nil {
			// Weights are not clamped or normalized; a sum far from 1.0 only
			// raises the advisory warning.
			category.Weight = *req.Weight
		}
		updated = *category
		return updated, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCategory is rejected while any assignment still references the
// category; the caller must reassign or delete those assignments first.
func (s *integrityService) DeleteCategory(ctx context.Context, id string) error {
	err := s.session.Update(ctx, events.TypeCategoryDeleted, func(store *models.Store) (interface{}, error) {
		category := store.CategoryByID(id)
		if category == nil {
			return nil, NewNotFoundError("category", id)
		}

		dependents := 0
		for _, assignment := range store.Assignments {
			if assignment.CategoryID == id {
				dependents++
			}
		}
		if dependents > 0 {
			return nil, NewDependencyError("category", id, dependents)
		}

		categories := store.Categories[:0]
		for _, c := range store.Categories {
			if c.ID != id {
				categories = append(categories, c)
			}
		}
		store.Categories = categories
		return map[string]string{"category_id": id}, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Category deleted", "category_id", id)
	return nil
}

// ===== ASSIGNMENTS =====

func (s *integrityService) CreateAssignment(ctx context.Context, classID string, req *models.CreateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var assignment models.Assignment
	err := s.session.Update(ctx, events.TypeAssignmentCreated, func(store *models.Store) (interface{}, error) {
		if store.ClassByID(classID) == nil {
			return nil, NewNotFoundError("class", classID)
		}
		category := store.CategoryByID(req.CategoryID)
		if category == nil {
			return nil, NewNotFoundError("category", req.CategoryID)
		}
		if category.ClassID != classID {
			return nil, NewConflictError("assignment", "category belongs to a different class")
		}

		assignment = models.Assignment{
			ID:         uuid.NewString(),
			ClassID:    classID,
			CategoryID: req.CategoryID,
			Title:      req.Title,
			Points:     req.Points,
			DueDate:    req.DueDate,
		}
		store.Assignments = append(store.Assignments, assignment)
		return assignment, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Assignment created", "assignment_id", assignment.ID, "class_id", classID)
	return &assignment, nil
}

func (s *integrityService) UpdateAssignment(ctx context.Context, id string, req *models.UpdateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var updated models.Assignment
	err := s.session.Update(ctx, events.TypeAssignmentUpdated, func(store *models.Store) (interface{}, error) {
		assignment := store.AssignmentByID(id)
		if assignment == nil {
			return nil, NewNotFoundError("assignment", id)
		}
		if req.CategoryID != nil {
			category := store.CategoryByID(*req.CategoryID)
			if category == nil {
				return nil, NewNotFoundError("category", *req.CategoryID)
			}
			if category.ClassID != assignment.ClassID {
				return nil, NewConflictError("assignment", "category belongs to a different class")
			}
			assignment.CategoryID = *req.CategoryID
		}
		if req.Title != nil {
			assignment.Title = *req.Title
		}
		if req.Points != nil {
			assignment.Points = *req.Points
		}
		if req.DueDate != nil {
			assignment.DueDate = *req.DueDate
		}
		updated = *assignment
		return updated, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAssignment removes the assignment and every grade referencing it.
func (s *integrityService) DeleteAssignment(ctx context.Context, id string) error {
	err := s.session.Update(ctx, events.TypeAssignmentDeleted, func(store *models.Store) (interface{}, error) {
		if store.AssignmentByID(id) == nil {
			return nil, NewNotFoundError("assignment", id)
		}

		assignments := store.Assignments[:0]
		for _, a := range store.Assignments {
			if a.ID != id {
				assignments = append(assignments, a)
			}
		}
		store.Assignments = assignments

		grades := store.Grades[:0]
		for _, g := range store.Grades {
			if g.AssignmentID != id {
				grades = append(grades, g)
			}
		}
		store.Grades = grades

		return map[string]string{"assignment_id": id}, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Assignment deleted with grades", "assignment_id", id)
	return nil
}

// ===== GRADES =====

// RecordGrade upserts the single grade row for the (assignment, student)
// pair. A nil score records the explicit ungraded marker, which the grading
// engine treats exactly like a missing row.
func (s *integrityService) RecordGrade(ctx context.Context, req *models.RecordGradeRequest) (*models.Grade, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var grade models.Grade
	err := s.session.Update(ctx, events.TypeGradeRecorded, func(store *models.Store) (interface{}, error) {
		assignment := store.AssignmentByID(req.AssignmentID)
		if assignment == nil {
			return nil, NewNotFoundError("assignment", req.AssignmentID)
		}
		student := store.ProfileByID(req.StudentID)
		if student == nil || student.Role != models.RoleStudent {
			return nil, NewNotFoundError("student", req.StudentID)
		}
		if !store.IsEnrolled(req.StudentID, assignment.ClassID) {
			return nil, NewConflictError("grade", "student not enrolled in class")
		}

		if existing := store.GradeFor(req.AssignmentID, req.StudentID); existing != nil {
			existing.Score = req.Score
			grade = *existing
			return grade, nil
		}

		grade = models.Grade{
			ID:           uuid.NewString(),
			AssignmentID: req.AssignmentID,
			StudentID:    req.StudentID,
			Score:        req.Score,
		}
		store.Grades = append(store.Grades, grade)
		return grade, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Grade recorded",
		"assignment_id", req.AssignmentID,
		"student_id", req.StudentID,
		"ungraded", req.Score == nil)
	return &grade, nil
}

// ===== ATTENDANCE =====

// MarkAttendance upserts the record for the (class, student, date) triple;
// marking the same day again overwrites the status.
func (s *integrityService) MarkAttendance(ctx context.Context, classID string, req *models.RecordAttendanceRequest) (*models.Attendance, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var record models.Attendance
	err := s.session.Update(ctx, events.TypeAttendanceMarked, func(store *models.Store) (interface{}, error) {
		if store.ClassByID(classID) == nil {
			return nil, NewNotFoundError("class", classID)
		}
		if store.ProfileByID(req.StudentID) == nil {
			return nil, NewNotFoundError("student", req.StudentID)
		}

		for i := range store.Attendance {
			a := &store.Attendance[i]
			if a.ClassID == classID && a.StudentID == req.StudentID && a.Date == req.Date {
				a.Status = req.Status
				record = *a
				return record, nil
			}
		}

		record = models.Attendance{
			ID:        uuid.NewString(),
			ClassID:   classID,
			StudentID: req.StudentID,
			Date:      req.Date,
			Status:    req.Status,
		}
		store.Attendance = append(store.Attendance, record)
		return record, nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ===== STUDY MATERIALS =====

func (s *integrityService) CreateMaterial(ctx context.Context, classID string, req *models.CreateMaterialRequest) (*models.StudyMaterial, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var material models.StudyMaterial
	err := s.session.Update(ctx, events.TypeMaterialCreated, func(store *models.Store) (interface{}, error) {
		if store.ClassByID(classID) == nil {
			return nil, NewNotFoundError("class", classID)
		}

		material = models.StudyMaterial{
			ID:          uuid.NewString(),
			ClassID:     classID,
			Title:       req.Title,
			Description: req.Description,
			URL:         req.URL,
			UploadDate:  todayDate(),
		}
		store.StudyMaterials = append(store.StudyMaterials, material)
		return material, nil
	})
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (s *integrityService) UpdateMaterial(ctx context.Context, id string, req *models.UpdateMaterialRequest) (*models.StudyMaterial, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var updated models.StudyMaterial
	err := s.session.Update(ctx, events.TypeMaterialUpdated, func(store *models.Store) (interface{}, error) {
		material := store.MaterialByID(id)
		if material == nil {
			return nil, NewNotFoundError("material", id)
		}
		if req.Title != nil {
			material.Title = *req.Title
		}
		if req.Description != nil {
			material.Description = *req.Description
		}
		if req.URL != nil {
			material.URL = *req.URL
		}
		updated = *material
		return updated, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *integrityService) DeleteMaterial(ctx context.Context, id string) error {
	return s.session.Update(ctx, events.TypeMaterialDeleted, func(store *models.Store) (interface{}, error) {
		for i := range store.StudyMaterials {
			if store.StudyMaterials[i].ID == id {
				removed := store.StudyMaterials[i]
				store.StudyMaterials = append(store.StudyMaterials[:i], store.StudyMaterials[i+1:]...)
				return removed, nil
			}
		}
		return nil, NewNotFoundError("material", id)
	})
}

// ===== STORE REPLACEMENT =====

// ReplaceStore swaps the whole dataset wholesale, as the import/restore
// surface requires. The incoming snapshot may contain entities that never
// went through our mutation paths; it is accepted as-is.
func (s *integrityService) ReplaceStore(ctx context.Context, store *models.Store) error {
	if err := s.session.Replace(ctx, store); err != nil {
		return err
	}
	s.logger.Info("Store replaced wholesale")
	return nil
}
