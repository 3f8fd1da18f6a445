package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursecatalog/internal/app/models/dto"
	"github.com/yigit/coursecatalog/internal/app/services"
	"github.com/yigit/coursecatalog/internal/middleware"
)

// Client-facing messages for storage failures
const (
	msgCreateFailed = "Failed to create course"
	msgListFailed   = "Failed to retrieve courses"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// CreateCourse handles course creation
// @Summary Create a new course
// @Description Creates a software course and returns it with its generated ID
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.CourseResponse "Course created successfully"
// @Failure 422 {object} dto.ValidationErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Failed to create course"
// @Router /courses/ [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusUnprocessableEntity, middleware.BindingErrorResponse(err))
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, msgCreateFailed)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewCourseResponse(course))
}

// GetAllCourses retrieves all courses
// @Summary Get all courses
// @Description Retrieves every stored course ordered by ID
// @Tags courses
// @Produce json
// @Success 200 {array} dto.CourseResponse "Courses retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve courses"
// @Router /courses/ [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err, msgListFailed)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewCourseListResponse(courses))
}
