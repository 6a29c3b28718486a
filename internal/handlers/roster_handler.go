package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/services"
	"github.com/SAP-F-2025/gradebook-service/internal/utils"
)

// RosterHandler covers the people-facing surface of a class: enrollments,
// attendance and study materials.
type RosterHandler struct {
	BaseHandler
	roster    services.RosterService
	integrity services.IntegrityService
}

func NewRosterHandler(roster services.RosterService, integrity services.IntegrityService, logger utils.Logger) *RosterHandler {
	return &RosterHandler{
		BaseHandler: NewBaseHandler(logger),
		roster:      roster,
		integrity:   integrity,
	}
}

// ===== ENROLLMENTS =====

func (h *RosterHandler) ListStudents(c *gin.Context) {
	students, err := h.roster.StudentsInClass(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

func (h *RosterHandler) EnrollStudent(c *gin.Context) {
	classID := c.Param("id")

	var req models.EnrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Enrolling student", "class_id", classID, "email", req.Email)

	enrollment, err := h.roster.Enroll(c.Request.Context(), classID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

func (h *RosterHandler) UnenrollStudent(c *gin.Context) {
	id := c.Param("id")

	h.LogRequest(c, "Unenrolling student", "enrollment_id", id)

	if err := h.roster.Unenroll(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ===== ATTENDANCE =====

func (h *RosterHandler) ListAttendance(c *gin.Context) {
	records, err := h.roster.AttendanceInClass(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *RosterHandler) MarkAttendance(c *gin.Context) {
	classID := c.Param("id")

	var req models.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Marking attendance", "class_id", classID, "student_id", req.StudentID)

	record, err := h.integrity.MarkAttendance(c.Request.Context(), classID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// ===== STUDY MATERIALS =====

func (h *RosterHandler) ListMaterials(c *gin.Context) {
	materials, err := h.roster.MaterialsInClass(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

func (h *RosterHandler) CreateMaterial(c *gin.Context) {
	classID := c.Param("id")

	var req models.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Creating study material", "class_id", classID, "title", req.Title)

	material, err := h.integrity.CreateMaterial(c.Request.Context(), classID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, material)
}

func (h *RosterHandler) UpdateMaterial(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Updating study material", "material_id", id)

	material, err := h.integrity.UpdateMaterial(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, material)
}

func (h *RosterHandler) DeleteMaterial(c *gin.Context) {
	id := c.Param("id")

	h.LogRequest(c, "Deleting study material", "material_id", id)

	if err := h.integrity.DeleteMaterial(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
