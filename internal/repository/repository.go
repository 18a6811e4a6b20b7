package repository

import (
	"errors"

	"github.com/avolkova/task-manager-api/internal/models"
)

// ErrReferenced is returned by Delete when the target row is still
// referenced by at least one task. Deletion never cascades.
var ErrReferenced = errors.New("repository: entity is referenced by existing tasks")

// UserRepository defines the interface for user data access
type UserRepository interface {
	// List retrieves all users in creation order
	List() ([]models.User, error)

	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete removes a user; fails with ErrReferenced while any task
	// is assigned to them
	Delete(id uint64) error
}

// TaskStatusRepository defines the interface for task status data access
type TaskStatusRepository interface {
	// List retrieves all task statuses in creation order
	List() ([]models.TaskStatus, error)

	// Create creates a new task status
	Create(status *models.TaskStatus) error

	// FindByID finds a task status by ID
	FindByID(id uint64) (*models.TaskStatus, error)

	// FindBySlug finds a task status by its slug
	FindBySlug(slug string) (*models.TaskStatus, error)

	// Update updates a task status
	Update(status *models.TaskStatus) error

	// Delete removes a task status; fails with ErrReferenced while any
	// task references it
	Delete(id uint64) error
}

// LabelRepository defines the interface for label data access
type LabelRepository interface {
	// List retrieves all labels in creation order
	List() ([]models.Label, error)

	// Create creates a new label
	Create(label *models.Label) error

	// FindByID finds a label by ID
	FindByID(id uint64) (*models.Label, error)

	// FindByIDs finds all labels whose ID is in the given set
	FindByIDs(ids []uint64) ([]models.Label, error)

	// Update updates a label
	Update(label *models.Label) error

	// Delete removes a label; fails with ErrReferenced while any task
	// carries it
	Delete(id uint64) error
}

// TaskFilter holds the optional predicates for listing tasks. A nil
// field contributes no constraint; set fields combine with AND.
type TaskFilter struct {
	// TitleCont matches tasks whose title contains the substring,
	// case-insensitively.
	TitleCont *string

	// AssigneeID matches tasks assigned to the given user.
	AssigneeID *uint64

	// Status matches tasks whose status has the given slug.
	Status *string

	// LabelID matches tasks carrying the given label (among others).
	LabelID *uint64
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// List retrieves tasks matching the filter, in creation order
	List(filter TaskFilter) ([]models.Task, error)

	// Create creates a new task together with its label associations
	Create(task *models.Task) error

	// FindByID finds a task by ID with status, assignee and labels
	// preloaded
	FindByID(id uint64) (*models.Task, error)

	// Update updates a task's own columns
	Update(task *models.Task) error

	// ReplaceLabels replaces the task's label associations
	ReplaceLabels(task *models.Task, labels []models.Label) error

	// Delete removes a task and its label associations
	Delete(id uint64) error
}
