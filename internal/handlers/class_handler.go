package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/services"
	"github.com/SAP-F-2025/gradebook-service/internal/utils"
)

// ClassHandler covers the structural surface of a class: the class itself,
// its grading categories and its assignments.
type ClassHandler struct {
	BaseHandler
	integrity services.IntegrityService
	roster    services.RosterService
}

func NewClassHandler(integrity services.IntegrityService, roster services.RosterService, logger utils.Logger) *ClassHandler {
	return &ClassHandler{
		BaseHandler: NewBaseHandler(logger),
		integrity:   integrity,
		roster:      roster,
	}
}

// ===== CLASSES =====

func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req models.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Creating class", "name", req.Name)

	class, err := h.integrity.CreateClass(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, class)
}

func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Updating class", "class_id", id)

	class, err := h.integrity.UpdateClass(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id := c.Param("id")

	h.LogRequest(c, "Deleting class", "class_id", id)

	if err := h.integrity.DeleteClass(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ===== CATEGORIES =====

func (h *ClassHandler) ListCategories(c *gin.Context) {
	categories, err := h.roster.CategoriesInClass(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *ClassHandler) CreateCategory(c *gin.Context) {
	classID := c.Param("id")

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Creating category", "class_id", classID, "name", req.Name)

	category, err := h.integrity.CreateCategory(c.Request.Context(), classID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *ClassHandler) UpdateCategory(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Updating category", "category_id", id)

	category, err := h.integrity.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *ClassHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	h.LogRequest(c, "Deleting category", "category_id", id)

	if err := h.integrity.DeleteCategory(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetWeightSummary surfaces the advisory weight-sum check for a class.
func (h *ClassHandler) GetWeightSummary(c *gin.Context) {
	summary, err := h.roster.WeightSummary(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ===== ASSIGNMENTS =====

func (h *ClassHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.roster.AssignmentsInClass(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

func (h *ClassHandler) CreateAssignment(c *gin.Context) {
	classID := c.Param("id")

	var req models.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Creating assignment", "class_id", classID, "title", req.Title)

	assignment, err := h.integrity.CreateAssignment(c.Request.Context(), classID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

func (h *ClassHandler) UpdateAssignment(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Updating assignment", "assignment_id", id)

	assignment, err := h.integrity.UpdateAssignment(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

func (h *ClassHandler) DeleteAssignment(c *gin.Context) {
	id := c.Param("id")

	h.LogRequest(c, "Deleting assignment", "assignment_id", id)

	if err := h.integrity.DeleteAssignment(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
