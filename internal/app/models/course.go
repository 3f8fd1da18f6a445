package models

// Course is a software course offered through the catalog.
type Course struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Duration    string `json:"duration" db:"duration"` // free-form, e.g. "6 weeks"
}
