package ports

import (
	"html/template"

	"statcalc/internal/lesson"
)

// CatalogReader is read-only access to the teaching material for UI/API handlers
type CatalogReader interface {
	Examples() []lesson.Example
	Example(id string) (lesson.Example, error)
	Exercises() []lesson.Exercise
	Exercise(id string) (lesson.Exercise, error)
	Check(id, rawAnswer string) (lesson.Feedback, error)
	Lesson(topic string) template.HTML
}

var _ CatalogReader = (*lesson.Catalog)(nil)
