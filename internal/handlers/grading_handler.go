package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/services"
	"github.com/SAP-F-2025/gradebook-service/internal/utils"
)

// GradingHandler exposes grade recording and every computed aggregate built
// on top of the recorded scores.
type GradingHandler struct {
	BaseHandler
	grading   services.GradingService
	integrity services.IntegrityService
}

func NewGradingHandler(grading services.GradingService, integrity services.IntegrityService, logger utils.Logger) *GradingHandler {
	return &GradingHandler{
		BaseHandler: NewBaseHandler(logger),
		grading:     grading,
		integrity:   integrity,
	}
}

// RecordGrade upserts the score for one (assignment, student) pair. A null
// score marks the work as ungraded without deleting the row.
func (h *GradingHandler) RecordGrade(c *gin.Context) {
	var req models.RecordGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Recording grade", "assignment_id", req.AssignmentID, "student_id", req.StudentID)

	grade, err := h.integrity.RecordGrade(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, grade)
}

func (h *GradingHandler) GetGradebook(c *gin.Context) {
	gradebook, err := h.grading.Gradebook(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gradebook)
}

func (h *GradingHandler) GetClassAverage(c *gin.Context) {
	average, err := h.grading.ClassAverage(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, average)
}

func (h *GradingHandler) GetStudentAverage(c *gin.Context) {
	average, err := h.grading.WeightedAverage(c.Param("student_id"), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, average)
}

// EstimateGrade computes a hypothetical average with the submitted scores
// layered over the recorded ones. Nothing is persisted.
func (h *GradingHandler) EstimateGrade(c *gin.Context) {
	classID := c.Param("id")
	studentID := c.Param("student_id")

	var req models.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Estimating grade", "class_id", classID, "student_id", studentID)

	average, err := h.grading.Estimate(studentID, classID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, average)
}

func (h *GradingHandler) GetStudentSummary(c *gin.Context) {
	summary, err := h.grading.StudentSummary(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
