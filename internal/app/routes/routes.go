package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/coursecatalog/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	healthController *controllers.HealthController,
) {
	// Both "/courses" and "/courses/" are served directly, without a redirect
	courses := router.Group("/courses")
	{
		courses.POST("/", courseController.CreateCourse)
		courses.GET("/", courseController.GetAllCourses)
		courses.POST("", courseController.CreateCourse)
		courses.GET("", courseController.GetAllCourses)
	}

	router.GET("/health", healthController.Health)
}
