package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/coursecatalog/internal/app/models"
	"github.com/yigit/coursecatalog/internal/db"
	"github.com/yigit/coursecatalog/internal/pkg/apperrors"
	"github.com/yigit/coursecatalog/internal/pkg/dberrors"
	"github.com/yigit/coursecatalog/internal/pkg/logger"
)

const coursesTable = "courses"

// CourseRepository defines data access for courses. Every method runs on the
// Querier it is given, so callers decide the session and transaction scope.
type CourseRepository interface {
	Create(ctx context.Context, q db.Querier, course *models.Course) error
	List(ctx context.Context, q db.Querier) ([]*models.Course, error)
}

// SQLCourseRepository handles course database operations
type SQLCourseRepository struct {
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new SQLCourseRepository for the dialect
func NewCourseRepository(dialect db.Dialect) *SQLCourseRepository {
	return &SQLCourseRepository{
		sb: squirrel.StatementBuilder.PlaceholderFormat(dialect.Placeholder()),
	}
}

// Create inserts the course and sets its generated ID
func (r *SQLCourseRepository) Create(ctx context.Context, q db.Querier, course *models.Course) error {
	const op = "courses.create"
	if course == nil {
		return apperrors.E(apperrors.KindValidation, op, apperrors.ErrNilCourse)
	}

	sql, args, err := r.sb.Insert(coursesTable).
		Columns("name", "description", "duration").
		Values(course.Name, course.Description, course.Duration).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return apperrors.E(apperrors.KindInternal, op, fmt.Errorf("failed to build create course query: %w", err))
	}

	var id int64
	if err := q.QueryRowContext(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).
			Bool("constraintViolation", dberrors.IsConstraintViolation(err)).
			Bool("busy", dberrors.IsBusy(err)).
			Msg("Error executing create course query")
		return apperrors.E(apperrors.KindStorageWrite, op, fmt.Errorf("error creating course: %w", err))
	}

	course.ID = id
	return nil
}

// List retrieves all courses ordered by ID
func (r *SQLCourseRepository) List(ctx context.Context, q db.Querier) ([]*models.Course, error) {
	const op = "courses.list"

	sql, args, err := r.sb.Select("id", "name", "description", "duration").
		From(coursesTable).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, apperrors.E(apperrors.KindInternal, op, fmt.Errorf("failed to build list courses query: %w", err))
	}

	rows, err := q.QueryContext(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, apperrors.E(apperrors.KindStorageRead, op, fmt.Errorf("error querying courses: %w", err))
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(&course.ID, &course.Name, &course.Description, &course.Duration); err != nil {
			logger.Error().Err(err).Msg("Error scanning course row")
			return nil, apperrors.E(apperrors.KindStorageRead, op, fmt.Errorf("error scanning course row: %w", err))
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, apperrors.E(apperrors.KindStorageRead, op, fmt.Errorf("error iterating course rows: %w", err))
	}

	return courses, nil
}
