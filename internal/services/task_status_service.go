package services

import (
	"errors"
	"fmt"

	"github.com/avolkova/task-manager-api/internal/models"
	"github.com/avolkova/task-manager-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskStatusNotFound = errors.New("task status not found")
	ErrTaskStatusInUse    = errors.New("task status is referenced by existing tasks")
)

// TaskStatusService handles task status CRUD business logic.
type TaskStatusService struct {
	statusRepo repository.TaskStatusRepository
}

// NewTaskStatusService creates a new TaskStatusService.
func NewTaskStatusService(statusRepo repository.TaskStatusRepository) *TaskStatusService {
	return &TaskStatusService{
		statusRepo: statusRepo,
	}
}

// CreateTaskStatusInput represents the required information to create a
// task status.
type CreateTaskStatusInput struct {
	Name string
	Slug string
}

// UpdateTaskStatusInput carries a partial update; nil fields stay unchanged.
type UpdateTaskStatusInput struct {
	Name *string
	Slug *string
}

// List returns all task statuses.
func (s *TaskStatusService) List() ([]models.TaskStatus, error) {
	return s.statusRepo.List()
}

// Create stores a new task status.
func (s *TaskStatusService) Create(input CreateTaskStatusInput) (*models.TaskStatus, error) {
	status := &models.TaskStatus{
		Name: input.Name,
		Slug: input.Slug,
	}
	if err := s.statusRepo.Create(status); err != nil {
		return nil, fmt.Errorf("failed to create task status: %w", err)
	}
	return status, nil
}

// FindByID retrieves a task status by ID.
func (s *TaskStatusService) FindByID(id uint64) (*models.TaskStatus, error) {
	status, err := s.statusRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskStatusNotFound
		}
		return nil, fmt.Errorf("failed to find task status: %w", err)
	}
	return status, nil
}

// Update merges the non-nil input fields into the stored task status.
func (s *TaskStatusService) Update(id uint64, input UpdateTaskStatusInput) (*models.TaskStatus, error) {
	status, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		status.Name = *input.Name
	}
	if input.Slug != nil {
		status.Slug = *input.Slug
	}

	if err := s.statusRepo.Update(status); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return status, nil
}

// Delete removes a task status. Fails with ErrTaskStatusInUse while any
// task references it.
func (s *TaskStatusService) Delete(id uint64) error {
	if _, err := s.FindByID(id); err != nil {
		return err
	}

	if err := s.statusRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return ErrTaskStatusInUse
		}
		return fmt.Errorf("failed to delete task status: %w", err)
	}

	return nil
}
