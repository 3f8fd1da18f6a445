package repositories

import (
	"github.com/yigit/coursecatalog/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository CourseRepository
}

// NewRepositories initializes all repositories for the store's dialect
func NewRepositories(store *db.Store) *Repositories {
	return &Repositories{
		CourseRepository: NewCourseRepository(store.Dialect()),
	}
}
