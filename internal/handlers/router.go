package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/gradebook-service/internal/services"
	"github.com/SAP-F-2025/gradebook-service/internal/utils"
)

// HandlerManager owns every HTTP handler and knows how to mount them.
type HandlerManager struct {
	profileHandler *ProfileHandler
	classHandler   *ClassHandler
	rosterHandler  *RosterHandler
	gradingHandler *GradingHandler
	storeHandler   *StoreHandler
}

func NewHandlerManager(manager services.ServiceManager, session *services.Session, logger utils.Logger) *HandlerManager {
	integrity := manager.Integrity()
	roster := manager.Roster()
	grading := manager.Grading()

	return &HandlerManager{
		profileHandler: NewProfileHandler(integrity, logger),
		classHandler:   NewClassHandler(integrity, roster, logger),
		rosterHandler:  NewRosterHandler(roster, integrity, logger),
		gradingHandler: NewGradingHandler(grading, integrity, logger),
		storeHandler:   NewStoreHandler(session, integrity, manager, logger),
	}
}

// SetupRoutes mounts all routes under /api/v1. Health sits outside the
// versioned group so probes are stable across versions.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.storeHandler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		profiles := v1.Group("/profiles")
		{
			profiles.POST("", hm.profileHandler.CreateProfile)
			profiles.PUT("/:id", hm.profileHandler.UpdateProfile)
		}

		classes := v1.Group("/classes")
		{
			classes.POST("", hm.classHandler.CreateClass)
			classes.PUT("/:id", hm.classHandler.UpdateClass)
			classes.DELETE("/:id", hm.classHandler.DeleteClass)

			classes.GET("/:id/students", hm.rosterHandler.ListStudents)
			classes.POST("/:id/enrollments", hm.rosterHandler.EnrollStudent)

			classes.GET("/:id/categories", hm.classHandler.ListCategories)
			classes.POST("/:id/categories", hm.classHandler.CreateCategory)
			classes.GET("/:id/weights", hm.classHandler.GetWeightSummary)

			classes.GET("/:id/assignments", hm.classHandler.ListAssignments)
			classes.POST("/:id/assignments", hm.classHandler.CreateAssignment)

			classes.GET("/:id/gradebook", hm.gradingHandler.GetGradebook)
			classes.GET("/:id/average", hm.gradingHandler.GetClassAverage)
			classes.GET("/:id/students/:student_id/average", hm.gradingHandler.GetStudentAverage)
			classes.POST("/:id/students/:student_id/estimate", hm.gradingHandler.EstimateGrade)

			classes.GET("/:id/attendance", hm.rosterHandler.ListAttendance)
			classes.POST("/:id/attendance", hm.rosterHandler.MarkAttendance)

			classes.GET("/:id/materials", hm.rosterHandler.ListMaterials)
			classes.POST("/:id/materials", hm.rosterHandler.CreateMaterial)
		}

		v1.DELETE("/enrollments/:id", hm.rosterHandler.UnenrollStudent)

		categories := v1.Group("/categories")
		{
			categories.PUT("/:id", hm.classHandler.UpdateCategory)
			categories.DELETE("/:id", hm.classHandler.DeleteCategory)
		}

		assignments := v1.Group("/assignments")
		{
			assignments.PUT("/:id", hm.classHandler.UpdateAssignment)
			assignments.DELETE("/:id", hm.classHandler.DeleteAssignment)
		}

		materials := v1.Group("/materials")
		{
			materials.PUT("/:id", hm.rosterHandler.UpdateMaterial)
			materials.DELETE("/:id", hm.rosterHandler.DeleteMaterial)
		}

		v1.PUT("/grades", hm.gradingHandler.RecordGrade)

		students := v1.Group("/students")
		{
			students.GET("/:id/summary", hm.gradingHandler.GetStudentSummary)
		}

		store := v1.Group("/store")
		{
			store.GET("/export", hm.storeHandler.ExportStore)
			store.PUT("", hm.storeHandler.ReplaceStore)
		}
	}
}
