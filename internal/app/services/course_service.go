package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/coursecatalog/internal/app/models"
	"github.com/yigit/coursecatalog/internal/app/models/dto"
	"github.com/yigit/coursecatalog/internal/app/repositories"
	"github.com/yigit/coursecatalog/internal/db"
	"github.com/yigit/coursecatalog/internal/pkg/apperrors"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
}

// SessionProvider hands out scoped storage sessions
type SessionProvider interface {
	WithSession(ctx context.Context, fn db.SessionFn) error
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	sessions   SessionProvider
	courseRepo repositories.CourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(sessions SessionProvider, courseRepo repositories.CourseRepository, lgr zerolog.Logger) CourseService {
	return &courseServiceImpl{
		sessions:   sessions,
		courseRepo: courseRepo,
		logger:     lgr,
	}
}

// validateCourse repeats the binding checks so the service is safe to call directly
func validateCourse(req dto.CreateCourseRequest) error {
	fields := map[string]string{
		"name":        req.Name,
		"description": req.Description,
		"duration":    req.Duration,
	}
	for _, field := range []string{"name", "description", "duration"} {
		if fields[field] == "" {
			return apperrors.E(apperrors.KindValidation, "courses.create",
				fmt.Errorf("%w: %s cannot be empty", apperrors.ErrValidationFailed, field))
		}
	}
	return nil
}

// CreateCourse persists a new course in its own session and transaction
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	if err := validateCourse(req); err != nil {
		return nil, err
	}

	course := req.ToModel()
	err := s.sessions.WithSession(ctx, func(ctx context.Context, sess *db.Session) error {
		return sess.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
			return s.courseRepo.Create(ctx, tx, course)
		})
	})
	if err != nil {
		// Session, begin and commit failures have no kind of their own yet
		if apperrors.KindOf(err) == apperrors.KindInternal {
			err = apperrors.E(apperrors.KindStorageWrite, "courses.create", err)
		}
		s.logger.Error().Err(err).Str("kind", apperrors.KindOf(err).String()).Msg("Failed to create course")
		return nil, err
	}

	s.logger.Info().Int64("courseID", course.ID).Msg("Course created")
	return course, nil
}

// ListCourses retrieves every course in its own session
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course
	err := s.sessions.WithSession(ctx, func(ctx context.Context, sess *db.Session) error {
		var err error
		courses, err = s.courseRepo.List(ctx, sess.Querier())
		return err
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindInternal {
			err = apperrors.E(apperrors.KindStorageRead, "courses.list", err)
		}
		s.logger.Error().Err(err).Str("kind", apperrors.KindOf(err).String()).Msg("Failed to retrieve courses")
		return nil, err
	}

	return courses, nil
}
