package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/healthrec/healthcare-api/internal/handler"
	"github.com/healthrec/healthcare-api/internal/middleware"
)

func SetupRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	mappingHandler *handler.MappingHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.Use(middleware.RequestID())
	r.Use(cors.Default())

	// Public routes
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (Public)
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/token/refresh", authHandler.RefreshToken)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Protected API routes
	api := r.Group("/api")
	api.Use(authMiddleware.RequireAuth())
	{
		api.GET("/patients", patientHandler.List)
		api.POST("/patients", patientHandler.Create)
		api.GET("/patients/:id", patientHandler.Get)
		api.PUT("/patients/:id", patientHandler.Update)
		api.PATCH("/patients/:id", patientHandler.Update)
		api.DELETE("/patients/:id", patientHandler.Delete)

		api.GET("/doctors", doctorHandler.List)
		api.POST("/doctors", doctorHandler.Create)
		api.GET("/doctors/:id", doctorHandler.Get)
		api.PUT("/doctors/:id", doctorHandler.Update)
		api.PATCH("/doctors/:id", doctorHandler.Update)
		api.DELETE("/doctors/:id", doctorHandler.Delete)

		api.GET("/mappings", mappingHandler.List)
		api.POST("/mappings", mappingHandler.Create)
		// GET takes a patient ID, DELETE takes a mapping ID; the original
		// API shape shares the path segment between the two.
		api.GET("/mappings/:id", mappingHandler.DoctorsForPatient)
		api.DELETE("/mappings/:id", mappingHandler.Delete)
	}

	return r
}
