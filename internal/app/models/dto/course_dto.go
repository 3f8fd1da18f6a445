package dto

import "github.com/yigit/coursecatalog/internal/app/models"

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Name        string `json:"name" binding:"required" example:"Intro to Python"`
	Description string `json:"description" binding:"required" example:"Basics"`
	Duration    string `json:"duration" binding:"required" example:"4 weeks"`
}

// ToModel converts the request into an unsaved course
func (r CreateCourseRequest) ToModel() *models.Course {
	return &models.Course{
		Name:        r.Name,
		Description: r.Description,
		Duration:    r.Duration,
	}
}

// CourseResponse represents a persisted course
type CourseResponse struct {
	ID          int64  `json:"id" example:"1"`
	Name        string `json:"name" example:"Intro to Python"`
	Description string `json:"description" example:"Basics"`
	Duration    string `json:"duration" example:"4 weeks"`
}

// NewCourseResponse maps a course model to its response shape
func NewCourseResponse(course *models.Course) CourseResponse {
	return CourseResponse{
		ID:          course.ID,
		Name:        course.Name,
		Description: course.Description,
		Duration:    course.Duration,
	}
}

// NewCourseListResponse maps courses to a non-nil response slice
func NewCourseListResponse(courses []*models.Course) []CourseResponse {
	resp := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		resp = append(resp, NewCourseResponse(course))
	}
	return resp
}
