package models

// Request payloads accepted by the CRUD surface. Validation tags are enforced
// by internal/validator before any mutation touches the store.

type CreateProfileRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Role  Role   `json:"role" validate:"required,oneof=teacher student"`
}

type UpdateProfileRequest struct {
	Email *string `json:"email" validate:"omitempty,email,max=255"`
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
}

type CreateClassRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Section   string `json:"section" validate:"max=100"`
	TeacherID string `json:"teacher_id" validate:"required"`
}

type UpdateClassRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Section *string `json:"section" validate:"omitempty,max=100"`
}

type EnrollStudentRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CreateCategoryRequest struct {
	Name   string  `json:"name" validate:"required,min=1,max=100"`
	Weight float64 `json:"weight"`
}

type UpdateCategoryRequest struct {
	Name   *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Weight *float64 `json:"weight"`
}

type CreateAssignmentRequest struct {
	CategoryID string  `json:"category_id" validate:"required"`
	Title      string  `json:"title" validate:"required,min=1,max=200"`
	Points     float64 `json:"points" validate:"required,gt=0"`
	DueDate    string  `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateAssignmentRequest struct {
	CategoryID *string  `json:"category_id"`
	Title      *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Points     *float64 `json:"points" validate:"omitempty,gt=0"`
	DueDate    *string  `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// RecordGradeRequest upserts the grade for one (assignment, student) pair.
// A nil score records the explicit ungraded marker.
type RecordGradeRequest struct {
	AssignmentID string   `json:"assignment_id" validate:"required"`
	StudentID    string   `json:"student_id" validate:"required"`
	Score        *float64 `json:"score"`
}

type RecordAttendanceRequest struct {
	StudentID string           `json:"student_id" validate:"required"`
	Date      string           `json:"date" validate:"required,datetime=2006-01-02"`
	Status    AttendanceStatus `json:"status" validate:"required,oneof=present absent late excused"`
}

type CreateMaterialRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	URL         string `json:"url" validate:"required,url"`
}

type UpdateMaterialRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	URL         *string `json:"url" validate:"omitempty,url"`
}

// EstimateRequest carries hypothetical scores keyed by assignment id. They
// live only for the duration of the computation and are never persisted.
type EstimateRequest struct {
	Overrides map[string]float64 `json:"overrides" validate:"required"`
}
