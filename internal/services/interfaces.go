package services

import (
	"context"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
)

// ===== RESPONSE DTOs =====

// WeightSummary reports the sum of a class's category weights. Warning is
// advisory: it flags deviation from 1.0 beyond the tolerance but never blocks
// any mutation.
type WeightSummary struct {
	ClassID string  `json:"class_id"`
	Sum     float64 `json:"sum"`
	Warning bool    `json:"warning"`
}

// AverageResponse carries a computed weighted average. A nil percentage is
// the "undefined" sentinel (no graded work yet); Letter is then the dash
// placeholder.
type AverageResponse struct {
	StudentID  string   `json:"student_id"`
	ClassID    string   `json:"class_id"`
	Percentage *float64 `json:"percentage"`
	Letter     string   `json:"letter"`
	Estimated  bool     `json:"estimated,omitempty"`
}

type ClassAverageResponse struct {
	ClassID    string   `json:"class_id"`
	Percentage *float64 `json:"percentage"`
	Letter     string   `json:"letter"`
}

// GradebookRow is one student line of the class gradebook: raw scores keyed
// by assignment id (nil = ungraded) plus the computed aggregate.
type GradebookRow struct {
	Student    models.Profile      `json:"student"`
	Scores     map[string]*float64 `json:"scores"`
	Percentage *float64            `json:"percentage"`
	Letter     string              `json:"letter"`
}

type GradebookResponse struct {
	Class       models.Class        `json:"class"`
	Categories  []models.Category   `json:"categories"`
	Assignments []models.Assignment `json:"assignments"`
	Rows        []GradebookRow      `json:"rows"`
	Weights     WeightSummary       `json:"weights"`
	Average     *float64            `json:"average"`
}

// StudentClassSummary is one dashboard line for a student: the class and the
// current aggregate in it.
type StudentClassSummary struct {
	Class      models.Class `json:"class"`
	Percentage *float64     `json:"percentage"`
	Letter     string       `json:"letter"`
}

// ===== SERVICE INTERFACES =====

// RosterService is the read-only query layer over the store plus the
// enrollment boundary.
type RosterService interface {
	StudentsInClass(classID string) ([]models.Profile, error)
	AssignmentsInClass(classID string) ([]models.Assignment, error)
	CategoriesInClass(classID string) ([]models.Category, error)
	AttendanceInClass(classID string) ([]models.Attendance, error)
	MaterialsInClass(classID string) ([]models.StudyMaterial, error)
	WeightSummary(classID string) (*WeightSummary, error)

	Enroll(ctx context.Context, classID string, req *models.EnrollStudentRequest) (*models.Enrollment, error)
	Unenroll(ctx context.Context, enrollmentID string) error
}

// GradingService computes weighted aggregates. It never mutates the store and
// never fails on missing or partial data: absent scores degrade to the
// undefined sentinel.
type GradingService interface {
	WeightedAverage(studentID, classID string) (*AverageResponse, error)
	ClassAverage(classID string) (*ClassAverageResponse, error)
	Estimate(studentID, classID string, req *models.EstimateRequest) (*AverageResponse, error)
	Gradebook(classID string) (*GradebookResponse, error)
	StudentSummary(studentID string) ([]StudentClassSummary, error)
}

// IntegrityService owns every structural mutation: entity CRUD, referential
// validation at the boundary, and the cascade rules for deletes.
type IntegrityService interface {
	CreateProfile(ctx context.Context, req *models.CreateProfileRequest) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id string, req *models.UpdateProfileRequest) (*models.Profile, error)

	CreateClass(ctx context.Context, req *models.CreateClassRequest) (*models.Class, error)
	UpdateClass(ctx context.Context, id string, req *models.UpdateClassRequest) (*models.Class, error)
	DeleteClass(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, classID string, req *models.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateAssignment(ctx context.Context, classID string, req *models.CreateAssignmentRequest) (*models.Assignment, error)
	UpdateAssignment(ctx context.Context, id string, req *models.UpdateAssignmentRequest) (*models.Assignment, error)
	DeleteAssignment(ctx context.Context, id string) error

	RecordGrade(ctx context.Context, req *models.RecordGradeRequest) (*models.Grade, error)
	MarkAttendance(ctx context.Context, classID string, req *models.RecordAttendanceRequest) (*models.Attendance, error)

	CreateMaterial(ctx context.Context, classID string, req *models.CreateMaterialRequest) (*models.StudyMaterial, error)
	UpdateMaterial(ctx context.Context, id string, req *models.UpdateMaterialRequest) (*models.StudyMaterial, error)
	DeleteMaterial(ctx context.Context, id string) error

	ReplaceStore(ctx context.Context, store *models.Store) error
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Roster() RosterService
	Grading() GradingService
	Integrity() IntegrityService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
