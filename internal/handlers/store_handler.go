package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/services"
	"github.com/SAP-F-2025/gradebook-service/internal/utils"
)

// StoreHandler is the portable-document surface: the whole store can be
// exported as one JSON document and replaced wholesale by one.
type StoreHandler struct {
	BaseHandler
	session   *services.Session
	integrity services.IntegrityService
	manager   services.ServiceManager
}

func NewStoreHandler(session *services.Session, integrity services.IntegrityService, manager services.ServiceManager, logger utils.Logger) *StoreHandler {
	return &StoreHandler{
		BaseHandler: NewBaseHandler(logger),
		session:     session,
		integrity:   integrity,
		manager:     manager,
	}
}

func (h *StoreHandler) ExportStore(c *gin.Context) {
	h.LogRequest(c, "Exporting store")

	store, err := h.session.Export()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, store)
}

// ReplaceStore swaps the entire dataset for the submitted one, as an import
// or restore would. The new store is persisted before the call returns.
func (h *StoreHandler) ReplaceStore(c *gin.Context) {
	var store models.Store
	if err := c.ShouldBindJSON(&store); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Replacing store", "profiles", len(store.Profiles), "classes", len(store.Classes))

	if err := h.integrity.ReplaceStore(c.Request.Context(), &store); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *StoreHandler) HealthCheck(c *gin.Context) {
	if err := h.manager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
