package services

import (
	"errors"
	"fmt"

	"github.com/avolkova/task-manager-api/internal/models"
	"github.com/avolkova/task-manager-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrLabelNotFound = errors.New("label not found")
	ErrLabelInUse    = errors.New("label is attached to existing tasks")
)

// LabelService handles label CRUD business logic.
type LabelService struct {
	labelRepo repository.LabelRepository
}

// NewLabelService creates a new LabelService.
func NewLabelService(labelRepo repository.LabelRepository) *LabelService {
	return &LabelService{
		labelRepo: labelRepo,
	}
}

// CreateLabelInput represents the required information to create a label.
type CreateLabelInput struct {
	Name string
}

// UpdateLabelInput carries a partial update; nil fields stay unchanged.
type UpdateLabelInput struct {
	Name *string
}

// List returns all labels.
func (s *LabelService) List() ([]models.Label, error) {
	return s.labelRepo.List()
}

// Create stores a new label.
func (s *LabelService) Create(input CreateLabelInput) (*models.Label, error) {
	label := &models.Label{
		Name: input.Name,
	}
	if err := s.labelRepo.Create(label); err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}
	return label, nil
}

// FindByID retrieves a label by ID.
func (s *LabelService) FindByID(id uint64) (*models.Label, error) {
	label, err := s.labelRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLabelNotFound
		}
		return nil, fmt.Errorf("failed to find label: %w", err)
	}
	return label, nil
}

// Update merges the non-nil input fields into the stored label.
func (s *LabelService) Update(id uint64, input UpdateLabelInput) (*models.Label, error) {
	label, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		label.Name = *input.Name
	}

	if err := s.labelRepo.Update(label); err != nil {
		return nil, fmt.Errorf("failed to update label: %w", err)
	}

	return label, nil
}

// Delete removes a label. Fails with ErrLabelInUse while any task
// carries it.
func (s *LabelService) Delete(id uint64) error {
	if _, err := s.FindByID(id); err != nil {
		return err
	}

	if err := s.labelRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return ErrLabelInUse
		}
		return fmt.Errorf("failed to delete label: %w", err)
	}

	return nil
}
