package services

import (
	"errors"
	"fmt"

	"github.com/avolkova/task-manager-api/internal/models"
	"github.com/avolkova/task-manager-api/internal/repository"
	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskService handles task CRUD and filtering business logic. Tasks
// reference statuses by slug and assignees/labels by id, so the service
// resolves those references before touching the store.
type TaskService struct {
	taskRepo   repository.TaskRepository
	statusRepo repository.TaskStatusRepository
	userRepo   repository.UserRepository
	labelRepo  repository.LabelRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskRepo repository.TaskRepository,
	statusRepo repository.TaskStatusRepository,
	userRepo repository.UserRepository,
	labelRepo repository.LabelRepository,
) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		statusRepo: statusRepo,
		userRepo:   userRepo,
		labelRepo:  labelRepo,
	}
}

// CreateTaskInput represents the required information to create a task.
type CreateTaskInput struct {
	Title      string
	Index      *int
	Content    string
	Status     string
	AssigneeID *uint64
	LabelIDs   []uint64
}

// UpdateTaskInput carries a partial update; nil fields stay unchanged.
// A non-nil LabelIDs replaces the whole label set.
type UpdateTaskInput struct {
	Title      *string
	Index      *int
	Content    *string
	Status     *string
	AssigneeID *uint64
	LabelIDs   *[]uint64
}

// List returns tasks matching the filter.
func (s *TaskService) List(filter repository.TaskFilter) ([]models.Task, error) {
	return s.taskRepo.List(filter)
}

// Create resolves the status slug, assignee and labels, then stores the
// task. Any missing reference fails with the matching NotFound error.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	status, err := s.resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}

	if input.AssigneeID != nil {
		if err := s.checkAssignee(*input.AssigneeID); err != nil {
			return nil, err
		}
	}

	labels, err := s.resolveLabels(input.LabelIDs)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:        input.Title,
		Index:        input.Index,
		Content:      input.Content,
		TaskStatusID: status.ID,
		AssigneeID:   input.AssigneeID,
		Labels:       labels,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.FindByID(task.ID)
}

// FindByID retrieves a task by ID with its relations loaded.
func (s *TaskService) FindByID(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Update merges the non-nil input fields into the stored task,
// re-resolving any changed references.
func (s *TaskService) Update(id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Index != nil {
		task.Index = input.Index
	}
	if input.Content != nil {
		task.Content = *input.Content
	}
	if input.Status != nil {
		status, err := s.resolveStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		task.TaskStatusID = status.ID
		task.TaskStatus = *status
	}
	if input.AssigneeID != nil {
		if err := s.checkAssignee(*input.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = input.AssigneeID
	}

	// Resolve the label set before writing anything so a bad label id
	// rejects the whole update instead of leaving it half applied.
	var labels []models.Label
	if input.LabelIDs != nil {
		labels, err = s.resolveLabels(*input.LabelIDs)
		if err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if input.LabelIDs != nil {
		if err := s.taskRepo.ReplaceLabels(task, labels); err != nil {
			return nil, fmt.Errorf("failed to replace task labels: %w", err)
		}
	}

	return s.FindByID(task.ID)
}

// Delete removes a task.
func (s *TaskService) Delete(id uint64) error {
	if _, err := s.FindByID(id); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func (s *TaskService) resolveStatus(slug string) (*models.TaskStatus, error) {
	status, err := s.statusRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskStatusNotFound
		}
		return nil, fmt.Errorf("failed to find task status: %w", err)
	}
	return status, nil
}

func (s *TaskService) checkAssignee(id uint64) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find assignee: %w", err)
	}
	return nil
}

func (s *TaskService) resolveLabels(ids []uint64) ([]models.Label, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	labels, err := s.labelRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find labels: %w", err)
	}
	if len(labels) != len(ids) {
		return nil, ErrLabelNotFound
	}
	return labels, nil
}
