package store

import "github.com/auradecor/studio/models"

// ProjectStore is the persistence contract for finalized projects.
// The HTTP layer depends on this interface, not on the SQLite backend.
type ProjectStore interface {
	SaveProject(payload models.ProjectPayload) (models.StoredProject, error)
	GetProject(id string) (models.StoredProject, error)
	ListProjects() ([]models.StoredProject, error)
	DeleteProject(id string) error
	ImagePath(name string) string
	Close() error
}
